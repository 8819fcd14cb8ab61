// Package v1 미니앱 API의 v1 버전 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - GET  /api/v1/dashboard         - 화면 뷰 모델 (JSON)
//   - POST /api/v1/payments/:method  - 결제 생성
package v1

import (
	"github.com/darkkaiser/miniapp-server/internal/service/api/middleware"
	"github.com/darkkaiser/miniapp-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
//
// 미들웨어 적용:
//   - 모든 엔드포인트: InitData (초기화 토큰 위치를 Context에 저장)
//   - 결제 생성: RequireInitData (토큰 없으면 401), paymentLimiter (결제 생성 전용 제한)
func RegisterRoutes(e *echo.Echo, h *handler.Handler, paymentLimiter echo.MiddlewareFunc) {
	v1Group := e.Group("/api/v1", middleware.InitData())

	v1Group.GET("/dashboard", h.DashboardHandler)

	v1Group.POST("/payments/:method", h.CreatePaymentHandler,
		middleware.RequireInitData(),
		paymentLimiter,
	)
}
