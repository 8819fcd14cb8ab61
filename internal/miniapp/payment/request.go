package payment

import (
	"math"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	maxMinorAmt = decimal.NewFromInt(math.MaxInt64)
)

// buildRequest 결제 수단 정의와 사용자 입력으로 결제 생성 요청을 만듭니다.
// 같은 입력에 대해서는 항상 같은 요청을 만듭니다.
//
// 검증에 실패하면 Failed 상태 값과 InvalidInput 에러를 반환합니다.
func buildRequest(token string, m model.PaymentMethod, in Input) (model.PaymentRequest, view.PaymentStatus, error) {
	req := model.PaymentRequest{
		Token:    token,
		MethodID: m.ID,
	}

	if m.RequiresAmount {
		minor, status, err := resolveAmount(m, in.Amount)
		if err != nil {
			return model.PaymentRequest{}, status, err
		}
		req.AmountMajorUnits = model.Some(decimal.New(minor, -2))
	}

	if len(m.Options) > 0 {
		optionID, err := resolveOption(m, in.OptionID)
		if err != nil {
			return model.PaymentRequest{}, failed(model.PaymentFailureInvalidOption, model.None[int64]()), err
		}
		req.OptionID = model.Some(optionID)
	}

	return req, view.PaymentStatus{}, nil
}

// resolveAmount 입력 금액(주 화폐 단위)을 최소 화폐 단위로 바꿔 검증합니다.
// 입력이 없으면 결제 수단의 기본 금액을 사용하고, 입력 금액은 AmountStep의 배수로 올림합니다.
func resolveAmount(m model.PaymentMethod, amount model.Optional[decimal.Decimal]) (int64, view.PaymentStatus, error) {
	minor := m.DefaultAmount()

	if v, ok := amount.Get(); ok {
		v = v.Mul(hundred).Round(0)
		if !v.IsPositive() {
			return 0, failed(model.PaymentFailureInvalidAmount, model.None[int64]()), apperrors.Newf(apperrors.InvalidInput, "결제 금액은 0보다 커야 합니다: %s", v)
		}
		if v.GreaterThan(maxMinorAmt) {
			return 0, failed(model.PaymentFailureInvalidAmount, model.None[int64]()), apperrors.Newf(apperrors.InvalidInput, "결제 금액이 처리할 수 있는 범위를 벗어났습니다: %s", v)
		}
		minor = v.IntPart()

		if step, ok := m.AmountStep.Get(); ok && step > 1 && minor%step != 0 {
			q := minor/step + 1
			if q > math.MaxInt64/step {
				return 0, failed(model.PaymentFailureInvalidAmount, model.None[int64]()), apperrors.Newf(apperrors.InvalidInput, "결제 금액이 처리할 수 있는 범위를 벗어났습니다: %d", minor)
			}
			minor = q * step
		}
	}

	if lo, ok := m.MinAmount.Get(); ok && minor < lo {
		return 0, failed(model.PaymentFailureAmountTooLow, m.MinAmount), apperrors.Newf(apperrors.InvalidInput, "결제 금액(%d)이 최소 금액(%d)보다 작습니다", minor, lo)
	}
	if hi, ok := m.MaxAmount.Get(); ok && minor > hi {
		return 0, failed(model.PaymentFailureAmountTooHigh, m.MaxAmount), apperrors.Newf(apperrors.InvalidInput, "결제 금액(%d)이 최대 금액(%d)보다 큽니다", minor, hi)
	}

	return minor, view.PaymentStatus{}, nil
}

// resolveOption 선택한 옵션이 없으면 첫 번째 옵션을 사용합니다.
func resolveOption(m model.PaymentMethod, option model.Optional[string]) (string, error) {
	id, ok := option.Get()
	if !ok || id == "" {
		return m.Options[0].ID, nil
	}

	for _, o := range m.Options {
		if o.ID == id {
			return id, nil
		}
	}
	return "", apperrors.Newf(apperrors.InvalidInput, "결제 수단(%s)에 존재하지 않는 옵션입니다: %s", m.ID, id)
}

func failed(f model.PaymentFailure, limit model.Optional[int64]) view.PaymentStatus {
	return view.PaymentStatus{State: model.PaymentFailed, Failure: f, Limit: limit}
}
