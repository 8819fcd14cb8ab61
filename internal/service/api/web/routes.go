package web

import (
	"github.com/darkkaiser/miniapp-server/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 화면 라우트를 등록합니다.
// paymentLimiter는 결제 폼 전송에만 추가로 적용되며 v1 결제 API와 같은 인스턴스를 공유합니다.
//
//   - GET  /                   - 대시보드 화면
//   - POST /payments/:method   - 결제 폼 전송 (RequireInitData, RateLimit)
func RegisterRoutes(e *echo.Echo, h *Handler, paymentLimiter echo.MiddlewareFunc) {
	e.GET("/", h.PageHandler, middleware.InitData())

	e.POST("/payments/:method", h.PaymentFormHandler,
		middleware.InitData(),
		middleware.RequireInitData(),
		paymentLimiter,
	)
}
