// Package payment 결제 수단별 결제 생성 상태 머신을 제공합니다.
//
// 상태 전이:
//
//	Idle -> Submitting -> Succeeded | Failed
//	Succeeded, Failed -> (다음 Submit) -> Submitting
//
// Submitting 상태에서의 Submit은 네트워크 호출 없이 ErrSubmitting을 반환합니다.
package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/darkkaiser/miniapp-server/pkg/strutil"
	"github.com/shopspring/decimal"
)

const component = "miniapp.payment"

// ErrSubmitting 같은 결제 수단의 결제 생성이 이미 진행 중입니다.
var ErrSubmitting = apperrors.New(apperrors.Conflict, "결제 생성이 이미 진행 중입니다")

// Creator 결제 생성 원격 호출입니다. *remote.Client가 이 인터페이스를 만족합니다.
type Creator interface {
	CreatePayment(ctx context.Context, req model.PaymentRequest) (model.PaymentResponse, error)
}

// Observer 결제 시도의 결과를 수집합니다. (메트릭 등)
type Observer interface {
	ObservePayment(methodID string, outcome string)
}

// Input 사용자가 입력한 값입니다. 금액은 주 화폐 단위입니다.
type Input struct {
	Amount   model.Optional[decimal.Decimal]
	OptionID model.Optional[string]
}

// Workflow 하나의 (세션, 결제 수단)에 대한 결제 상태 머신입니다. 여러 고루틴에서 동시에 사용해도 안전합니다.
type Workflow struct {
	creator  Creator
	observer Observer
	token    string

	mu     sync.Mutex
	method model.PaymentMethod
	status view.PaymentStatus
}

func NewWorkflow(creator Creator, token string, method model.PaymentMethod) *Workflow {
	return &Workflow{
		creator: creator,
		token:   token,
		method:  method,
		status:  view.PaymentStatus{State: model.PaymentIdle},
	}
}

// Status 현재 상태의 복사본을 반환합니다.
func (w *Workflow) Status() view.PaymentStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Workflow) Method() model.PaymentMethod {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.method
}

// updateMethod 새로 로드한 결제 수단 정의로 교체합니다. 진행 중인 시도에는 영향을 주지 않습니다.
func (w *Workflow) updateMethod(m model.PaymentMethod) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.method = m
}

// Submit 결제를 생성하고 열어야 할 결제 URL을 반환합니다.
//
// 입력값 검증에 실패하면 원격 호출 없이 Failed 상태가 됩니다. 원격 호출이 실패하거나
// 응답에 결제 URL이 없으면 Failed 상태가 되고 원인 에러를 반환합니다.
func (w *Workflow) Submit(ctx context.Context, in Input) (string, error) {
	w.mu.Lock()
	method := w.method
	if w.status.State == model.PaymentSubmitting {
		w.mu.Unlock()
		w.observe(method.ID, "conflict")
		return "", ErrSubmitting
	}

	req, rejected, err := buildRequest(w.token, method, in)
	if err != nil {
		w.status = rejected
		w.mu.Unlock()

		w.logger(method.ID).WithField("failure", rejected.Failure).Warn("결제 입력값 검증 실패")
		w.observe(method.ID, "rejected")
		return "", err
	}

	w.status = view.PaymentStatus{State: model.PaymentSubmitting}
	w.mu.Unlock()

	resp, err := w.creator.CreatePayment(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.status = view.PaymentStatus{
			State:   model.PaymentFailed,
			Failure: model.PaymentFailureRemote,
			Detail:  failureDetail(err),
		}
		w.logger(method.ID).WithError(err).Error("결제 생성 실패")
		w.observe(method.ID, "failed")
		return "", err
	}

	paymentURL, ok := resp.PaymentURL.Get()
	if !ok {
		w.status = view.PaymentStatus{State: model.PaymentFailed, Failure: model.PaymentFailureNoURL}
		w.logger(method.ID).Warn("결제 생성 응답에 결제 URL이 없습니다")
		w.observe(method.ID, "failed")
		return "", apperrors.New(apperrors.ExecutionFailed, "결제 생성 응답에 결제 URL이 없습니다")
	}

	w.status = view.PaymentStatus{State: model.PaymentSucceeded, PaymentURL: paymentURL}
	w.logger(method.ID).Info("결제 생성 완료")
	w.observe(method.ID, "succeeded")

	return paymentURL, nil
}

func (w *Workflow) logger(methodID string) *applog.Entry {
	return applog.WithComponentAndFields(component, applog.Fields{
		"method": methodID,
		"token":  strutil.Mask(w.token),
	})
}

func (w *Workflow) observe(methodID, outcome string) {
	if w.observer != nil {
		w.observer.ObservePayment(methodID, outcome)
	}
}

// failureDetail 원격 서비스가 돌려준 본문이 있으면 그것을, 없으면 에러 메시지를 사용합니다.
func failureDetail(err error) string {
	var d interface{ Detail() string }
	if errors.As(err, &d) {
		return d.Detail()
	}
	return apperrors.Message(err)
}
