package handler

import (
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/darkkaiser/miniapp-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

// BindRequest 요청 본문을 바인딩하고 검증합니다. 실패하면 400 에러를 반환합니다.
func BindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		if apperrors.Is(err, apperrors.InvalidInput) {
			return httputil.NewBadRequestError(constants.ErrMsgBadRequestAmount)
		}
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := ValidateRequest(req); err != nil {
		return httputil.NewBadRequestError(FormatValidationError(err))
	}

	return nil
}
