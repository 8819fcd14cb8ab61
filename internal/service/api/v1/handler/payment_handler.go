package handler

import (
	"net/http"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/bootstrap"
	"github.com/darkkaiser/miniapp-server/internal/service/api/auth"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/miniapp-server/internal/service/api/handler"
	"github.com/darkkaiser/miniapp-server/internal/service/api/httputil"
	"github.com/darkkaiser/miniapp-server/internal/service/api/model/response"
	"github.com/darkkaiser/miniapp-server/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// CreatePaymentHandler godoc
// @Summary 결제 생성
// @Description 선택한 결제 수단으로 원격 서비스에 결제를 생성하고, 열어야 할 결제 페이지 주소를 반환합니다.
// @Description
// @Description 실패한 경우에도 응답 본문에는 다음 버튼 상태(button)와 안내 문구(message)가 포함됩니다.
// @Description 같은 세션과 결제 수단으로 생성이 진행 중일 때 다시 요청하면 원격 호출 없이 409로 응답합니다.
// @Tags Payment
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param X-Telegram-Init-Data header string false "초기화 토큰 (권장)"
// @Param initData query string false "초기화 토큰 (헤더가 없을 때)"
// @Param method path string true "결제 수단 ID" example(card)
// @Param payment body request.PaymentRequest false "금액과 옵션"
// @Success 200 {object} response.PaymentResponse "결제 페이지 주소"
// @Failure 400 {object} response.ErrorResponse "요청 본문 형식 오류"
// @Failure 401 {object} response.ErrorResponse "초기화 토큰 없음"
// @Failure 404 {object} response.PaymentResponse "사용할 수 없는 결제 수단"
// @Failure 409 {object} response.PaymentResponse "결제 생성 진행 중"
// @Failure 422 {object} response.PaymentResponse "금액 또는 옵션 오류"
// @Failure 502 {object} response.PaymentResponse "원격 서비스 결제 생성 실패"
// @Router /api/v1/payments/{method} [post]
func (h *Handler) CreatePaymentHandler(c echo.Context) error {
	req := new(request.PaymentRequest)
	if err := apihandler.BindRequest(c, req); err != nil {
		return err
	}

	methodID := c.Param(constants.ParamMethod)
	outcome, err := h.controller.Pay(c.Request().Context(), bootstrap.PaymentCommand{
		Init:           auth.MustGetSource(c),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
		MethodID:       methodID,
		Input:          req.Input(),
	})

	resp := response.PaymentResponse{
		PaymentURL: outcome.PaymentURL,
		Button:     outcome.Button,
		Message:    outcome.Message,
	}

	if err != nil {
		status := httputil.StatusCode(err)
		if status == http.StatusUnauthorized && resp.Message == "" {
			return httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedInitData)
		}

		h.log(c).WithFields(applog.Fields{
			"method":      methodID,
			"status_code": status,
			"error":       err,
		}).Warn(constants.LogMsgPaymentDone)

		return c.JSON(status, resp)
	}

	h.log(c).WithField("method", methodID).Info(constants.LogMsgPaymentDone)

	return c.JSON(http.StatusOK, resp)
}
