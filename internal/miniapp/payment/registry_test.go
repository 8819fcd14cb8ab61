package payment

import (
	"testing"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OneWorkflowPerSessionAndMethod(t *testing.T) {
	r := NewRegistry(&fakeCreator{})

	a := r.Workflow("token-a", model.PaymentMethod{ID: "card"})
	assert.Same(t, a, r.Workflow("token-a", model.PaymentMethod{ID: "card"}))
	assert.NotSame(t, a, r.Workflow("token-b", model.PaymentMethod{ID: "card"}))
	assert.NotSame(t, a, r.Workflow("token-a", model.PaymentMethod{ID: "sbp"}))
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_UpdatesMethodDefinition(t *testing.T) {
	r := NewRegistry(&fakeCreator{})

	r.Workflow("t", model.PaymentMethod{ID: "card", MinAmount: model.Some(int64(100))})
	w := r.Workflow("t", model.PaymentMethod{ID: "card", MinAmount: model.Some(int64(500))})

	assert.Equal(t, model.Some(int64(500)), w.Method().MinAmount)
}

func TestRegistry_StatusFunc(t *testing.T) {
	r := NewRegistry(&fakeCreator{})
	r.Workflow("t", model.PaymentMethod{ID: "card"})

	status := r.StatusFunc("t")

	st, ok := status("card")
	require.True(t, ok)
	assert.Equal(t, model.PaymentIdle, st.State)

	_, ok = status("sbp")
	assert.False(t, ok)
	_, ok = r.StatusFunc("other")("card")
	assert.False(t, ok)
}

func TestRegistry_SweepsIdleWorkflows(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&fakeCreator{}, WithIdleTTL(time.Minute))
	r.now = func() time.Time { return now }

	old := r.Workflow("t", model.PaymentMethod{ID: "card"})

	now = now.Add(2 * time.Minute)
	r.Workflow("t", model.PaymentMethod{ID: "sbp"})

	_, ok := r.Lookup("t", "card")
	assert.False(t, ok, "오래된 워크플로는 정리되어야 합니다")
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, old, r.Workflow("t", model.PaymentMethod{ID: "card"}))
}

func TestRegistry_KeepsSubmittingWorkflows(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&fakeCreator{}, WithIdleTTL(time.Minute))
	r.now = func() time.Time { return now }

	w := r.Workflow("t", model.PaymentMethod{ID: "card"})
	w.mu.Lock()
	w.status.State = model.PaymentSubmitting
	w.mu.Unlock()

	now = now.Add(time.Hour)
	r.Workflow("t", model.PaymentMethod{ID: "sbp"})

	got, ok := r.Lookup("t", "card")
	require.True(t, ok)
	assert.Same(t, w, got)
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&fakeCreator{}, WithIdleTTL(time.Minute))
	r.now = func() time.Time { return now }

	r.Workflow("a", model.PaymentMethod{ID: "card"})
	r.Workflow("b", model.PaymentMethod{ID: "card"})

	assert.Equal(t, 0, r.Sweep(), "유휴 시간이 지나지 않은 워크플로는 남아 있어야 합니다")

	now = now.Add(30 * time.Second)
	r.Workflow("c", model.PaymentMethod{ID: "card"})

	now = now.Add(45 * time.Second)
	assert.Equal(t, 2, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, ok := r.Lookup("c", "card")
	assert.True(t, ok)
}
