package view

import (
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
)

// PaymentStatus 결제 수단 하나의 현재 워크플로 상태입니다.
type PaymentStatus struct {
	State   model.PaymentState
	Failure model.PaymentFailure
	Detail  string                // 원격 서비스가 알려준 실패 상세
	Limit   model.Optional[int64] // 금액 범위 위반 시 최소/최대 금액

	PaymentURL string
}

// PaymentStatusFunc 결제 수단 ID로 현재 상태를 조회합니다. 상태가 없으면 ok=false입니다.
type PaymentStatusFunc func(methodID string) (PaymentStatus, bool)

type PaymentButton struct {
	Label    string             `json:"label"`
	Disabled bool               `json:"disabled"`
	State    model.PaymentState `json:"state"`
}

// AmountInput 금액 입력 필드입니다. 값은 모두 주 화폐 단위 문자열입니다.
type AmountInput struct {
	Min      string `json:"min,omitempty"`
	Max      string `json:"max,omitempty"`
	Step     string `json:"step"`
	Default  string `json:"default"`
	MinLabel string `json:"min_label,omitempty"`
	MaxLabel string `json:"max_label,omitempty"`
}

type PaymentOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

type PaymentMethod struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon,omitempty"`
	Interactive bool            `json:"interactive"`
	Amount      *AmountInput    `json:"amount,omitempty"`
	Options     []PaymentOption `json:"options,omitempty"`
	Button      PaymentButton   `json:"button"`
	Message     string          `json:"message,omitempty"`
	PaymentURL  string          `json:"payment_url,omitempty"`
}

type PaymentPanel struct {
	Visible bool            `json:"visible"`
	Methods []PaymentMethod `json:"methods,omitempty"`
}

// RenderPaymentPanel 사용 가능한 결제 수단만 표시합니다. 표시할 수단이 없으면 패널을 숨깁니다.
// statuses가 nil이면 모든 수단을 대기(idle) 상태로 그립니다.
func RenderPaymentPanel(methods []model.PaymentMethod, statuses PaymentStatusFunc, c Context) PaymentPanel {
	items := make([]PaymentMethod, 0, len(methods))
	for _, m := range methods {
		if !m.Available {
			continue
		}

		status := PaymentStatus{State: model.PaymentIdle}
		if statuses != nil {
			if st, ok := statuses(m.ID); ok {
				status = st
			}
		}

		mc := c.ForMethod(m)
		item := PaymentMethod{
			ID:          m.ID,
			Name:        m.Name,
			Icon:        m.Icon,
			Interactive: m.Interactive(),
			Button:      RenderPaymentButton(status.State, c),
			Message:     PaymentMessage(status, mc),
			PaymentURL:  status.PaymentURL,
		}
		if m.RequiresAmount {
			item.Amount = amountInput(m, mc)
		}
		for i, o := range m.Options {
			item.Options = append(item.Options, PaymentOption{ID: o.ID, Title: o.Title, Selected: i == 0})
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return PaymentPanel{}
	}
	return PaymentPanel{Visible: true, Methods: items}
}

// RenderPaymentButton 상태별 결제 버튼입니다. 생성 중에는 비활성화됩니다.
func RenderPaymentButton(state model.PaymentState, c Context) PaymentButton {
	switch state {
	case model.PaymentSubmitting:
		return PaymentButton{Label: c.resolve(copySubmitting), Disabled: true, State: state}
	case model.PaymentSucceeded:
		return PaymentButton{Label: c.resolve(copyPayAgain), State: state}
	case model.PaymentFailed:
		return PaymentButton{Label: c.resolve(copyRetry), State: state}
	default:
		return PaymentButton{Label: c.resolve(copyPay), State: model.PaymentIdle}
	}
}

// PaymentMessage 실패 상태를 사용자에게 보여줄 문구로 만듭니다. 실패가 아니면 빈 문자열입니다.
func PaymentMessage(st PaymentStatus, c Context) string {
	if st.State != model.PaymentFailed {
		return ""
	}

	var label, detail string
	switch st.Failure {
	case model.PaymentFailureNoURL:
		label = c.resolve(copyNoPaymentURL)
	case model.PaymentFailureInvalidAmount:
		label = c.resolve(copyInvalidAmount)
	case model.PaymentFailureAmountTooLow:
		label, detail = c.resolve(copyAmountTooLow), FormatAmount(st.Limit, c.currency())
	case model.PaymentFailureAmountTooHigh:
		label, detail = c.resolve(copyAmountTooHigh), FormatAmount(st.Limit, c.currency())
	case model.PaymentFailureInvalidOption:
		label = c.resolve(copyInvalidOption)
	case model.PaymentFailureMethodNotFound:
		label = c.resolve(copyMethodNotFound)
	default:
		label, detail = c.resolve(copyPaymentFailed), st.Detail
	}

	if detail == "" {
		return label
	}
	return label + ": " + detail
}

func amountInput(m model.PaymentMethod, c Context) *AmountInput {
	symbol := c.currency()

	in := &AmountInput{
		Step:    MajorUnits(m.AmountStep.OrElse(1)),
		Default: MajorUnits(m.DefaultAmount()),
	}
	if v, ok := m.MinAmount.Get(); ok {
		in.Min = MajorUnits(v)
		in.MinLabel = FormatAmount(m.MinAmount, symbol)
	}
	if v, ok := m.MaxAmount.Get(); ok {
		in.Max = MajorUnits(v)
		in.MaxLabel = FormatAmount(m.MaxAmount, symbol)
	}
	return in
}
