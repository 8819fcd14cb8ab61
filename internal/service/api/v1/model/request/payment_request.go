package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/payment"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/shopspring/decimal"
)

// PaymentRequest 결제 생성 요청 본문입니다. JSON과 폼(urlencoded, multipart) 모두 받습니다.
type PaymentRequest struct {
	// Amount 주 화폐 단위 금액 (예: 150.5). 비워 두면 결제 수단의 기본 금액을 사용합니다.
	Amount Amount `json:"amount" form:"amount" swaggertype:"string" example:"150.50"`

	// Option 결제 옵션 ID. 비워 두면 첫 번째 옵션을 사용합니다.
	Option string `json:"option" form:"option" validate:"omitempty,max=64,printascii" korean:"결제 옵션" example:"m1"`
}

// Input 결제 워크플로 입력으로 변환합니다.
func (r PaymentRequest) Input() payment.Input {
	in := payment.Input{Amount: r.Amount.value}
	if option := strings.TrimSpace(r.Option); option != "" {
		in.OptionID = model.Some(option)
	}
	return in
}

// Amount 숫자와 숫자 문자열을 모두 받는 금액 필드입니다. null과 빈 문자열은 값 없음으로 취급합니다.
type Amount struct {
	value model.Optional[decimal.Decimal]
}

// NewAmount 테스트와 내부 호출용 생성자입니다.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{value: model.Some(v)}
}

func (a Amount) Value() model.Optional[decimal.Decimal] {
	return a.value
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "결제 금액 형식이 올바르지 않습니다")
		}
		return a.UnmarshalParam(s)
	}

	return a.UnmarshalParam(string(b))
}

// UnmarshalParam echo의 폼/쿼리 바인딩(echo.BindUnmarshaler)에서 호출됩니다.
// 쉼표 소수점("150,5")도 받습니다.
func (a *Amount) UnmarshalParam(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*a = Amount{}
		return nil
	}

	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "결제 금액 형식이 올바르지 않습니다: %q", s)
	}

	*a = Amount{value: model.Some(d)}
	return nil
}
