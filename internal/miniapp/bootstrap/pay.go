package bootstrap

import (
	"context"
	"errors"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/payment"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/darkkaiser/miniapp-server/pkg/strutil"
)

// PaymentCommand 사용자가 결제 버튼을 눌렀을 때의 요청입니다.
type PaymentCommand struct {
	Init           initdata.Source
	AcceptLanguage string
	MethodID       string
	Input          payment.Input
}

// PaymentOutcome 결제 시도 결과입니다. 실패한 경우에도 Button과 Message는 채워집니다.
type PaymentOutcome struct {
	PaymentURL string             `json:"payment_url,omitempty"`
	Button     view.PaymentButton `json:"button"`
	Message    string             `json:"message,omitempty"`
}

// Pay 해당 세션과 결제 수단의 워크플로로 결제를 생성합니다.
//
// 화면을 그릴 때 만들어진 워크플로가 없으면 결제 수단 목록을 한 번 불러와 새로 만듭니다.
// 반환되는 에러는 apperrors.AppError 분류를 따릅니다: 토큰 없음(Unauthorized), 진행 중(Conflict),
// 결제 수단 없음(NotFound), 입력값 오류(InvalidInput), 원격 호출 실패(그 외).
func (c *Controller) Pay(ctx context.Context, cmd PaymentCommand) (PaymentOutcome, error) {
	sess := c.newSession(cmd.Init, "", cmd.AcceptLanguage, "")
	if !sess.Init.Present {
		return PaymentOutcome{}, apperrors.New(apperrors.Unauthorized, "초기화 토큰이 없습니다")
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"token":  strutil.Mask(sess.Init.Token),
		"method": cmd.MethodID,
	})

	wf, err := c.workflow(ctx, sess, cmd.MethodID)
	if err != nil {
		logger.WithError(err).Warn("결제 워크플로를 준비하지 못했습니다")

		failed := view.PaymentStatus{State: model.PaymentFailed, Failure: model.PaymentFailureMethodNotFound}
		if !apperrors.Is(err, apperrors.NotFound) {
			failed = view.PaymentStatus{State: model.PaymentFailed, Failure: model.PaymentFailureRemote, Detail: apperrors.Message(err)}
		}
		return PaymentOutcome{
			Button:  view.RenderPaymentButton(failed.State, sess.View),
			Message: view.PaymentMessage(failed, sess.View),
		}, err
	}

	paymentURL, err := wf.Submit(ctx, cmd.Input)
	st := wf.Status()
	if errors.Is(err, payment.ErrSubmitting) {
		st = view.PaymentStatus{State: model.PaymentSubmitting}
	}

	return PaymentOutcome{
		PaymentURL: paymentURL,
		Button:     view.RenderPaymentButton(st.State, sess.View),
		Message:    view.PaymentMessage(st, sess.View.ForMethod(wf.Method())),
	}, err
}

func (c *Controller) workflow(ctx context.Context, sess *Session, methodID string) (*payment.Workflow, error) {
	if c.payments == nil {
		return nil, apperrors.New(apperrors.Internal, "결제 레지스트리가 설정되지 않았습니다")
	}

	if wf, ok := c.payments.Lookup(sess.Init.Token, methodID); ok {
		return wf, nil
	}

	methods, err := c.loader.LoadPaymentMethods(ctx, sess.Init.Token)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.ID == methodID && m.Available {
			return c.payments.Workflow(sess.Init.Token, m), nil
		}
	}

	return nil, apperrors.Newf(apperrors.NotFound, "사용할 수 있는 결제 수단이 아닙니다: %s", methodID)
}
