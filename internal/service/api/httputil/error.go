package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/darkkaiser/miniapp-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// echo.HTTPError는 그대로, 애플리케이션 에러(apperrors.AppError)는 분류에 따른 상태 코드로 변환하여
// 표준 ErrorResponse JSON 형식으로 응답합니다. 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch msg := he.Message.(type) {
		case string:
			message = msg
		case response.ErrorResponse:
			message = msg.Message
		}
	} else if code = StatusCode(err); code == http.StatusBadGateway {
		message = constants.ErrMsgBadGateway
	}

	switch code {
	case http.StatusNotFound:
		message = constants.ErrMsgNotFound
	case http.StatusRequestEntityTooLarge:
		message = constants.ErrMsgRequestEntityTooLarge
	case http.StatusServiceUnavailable:
		message = constants.ErrMsgServiceUnavailable
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
