package payment

import (
	"crypto/sha256"
	"sync"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
)

// defaultIdleTTL 마지막 사용 이후 이 시간이 지난 워크플로는 정리됩니다.
const defaultIdleTTL = 30 * time.Minute

type registryKey struct {
	session  [sha256.Size]byte
	methodID string
}

type registryEntry struct {
	workflow *Workflow
	lastUsed time.Time
}

// Registry (세션 토큰, 결제 수단 ID)마다 하나의 Workflow를 관리합니다. 메모리에만 보관합니다.
//
// 세션 토큰은 해시로만 키에 사용합니다.
type Registry struct {
	creator  Creator
	observer Observer
	idleTTL  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[registryKey]*registryEntry
}

type RegistryOption func(*Registry)

func WithObserver(obs Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = obs
	}
}

// WithIdleTTL 0 이하이면 기본값(30분)을 사용합니다.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.idleTTL = ttl
		}
	}
}

func NewRegistry(creator Creator, opts ...RegistryOption) *Registry {
	r := &Registry{
		creator: creator,
		idleTTL: defaultIdleTTL,
		now:     time.Now,
		entries: make(map[registryKey]*registryEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func keyOf(token, methodID string) registryKey {
	return registryKey{session: sha256.Sum256([]byte(token)), methodID: methodID}
}

// Workflow 해당 세션과 결제 수단의 워크플로를 반환합니다. 없으면 새로 만들고, 있으면 결제 수단 정의를 갱신합니다.
func (r *Registry) Workflow(token string, method model.PaymentMethod) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	key := keyOf(token, method.ID)
	if e, ok := r.entries[key]; ok {
		e.lastUsed = now
		e.workflow.updateMethod(method)
		return e.workflow
	}

	w := NewWorkflow(r.creator, token, method)
	w.observer = r.observer
	r.entries[key] = &registryEntry{workflow: w, lastUsed: now}

	return w
}

// Lookup 이미 만들어진 워크플로를 찾습니다.
func (r *Registry) Lookup(token, methodID string) (*Workflow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[keyOf(token, methodID)]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.workflow, true
}

// StatusFunc 세션의 결제 수단별 상태를 조회하는 함수를 반환합니다. 화면을 그릴 때 사용합니다.
func (r *Registry) StatusFunc(token string) view.PaymentStatusFunc {
	return func(methodID string) (view.PaymentStatus, bool) {
		w, ok := r.Lookup(token, methodID)
		if !ok {
			return view.PaymentStatus{}, false
		}
		return w.Status(), true
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep 유휴 시간이 지난 워크플로를 정리하고 정리된 개수를 반환합니다. 주기적인 정리 작업에서 호출합니다.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

// sweepLocked 오래 사용되지 않은 워크플로를 정리합니다. 진행 중인 워크플로는 남겨둡니다.
func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range r.entries {
		if now.Sub(e.lastUsed) < r.idleTTL {
			continue
		}
		if e.workflow.Status().State == model.PaymentSubmitting {
			continue
		}
		delete(r.entries, k)
		removed++
	}
	return removed
}
