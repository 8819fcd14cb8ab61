// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 화면 스크립트가 호출하는 JSON 엔드포인트(대시보드 뷰 모델 조회, 결제 생성)를 처리합니다.
package handler

import (
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/miniapp-server/internal/service/api/handler"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler v1 API 요청을 부트스트랩 컨트롤러에 연결하는 핸들러입니다.
type Handler struct {
	controller apihandler.Controller

	pages apihandler.PageObserver
}

// NewHandler Handler 인스턴스를 생성합니다. pages는 nil이어도 됩니다.
func NewHandler(controller apihandler.Controller, pages apihandler.PageObserver) *Handler {
	if controller == nil {
		panic(constants.PanicMsgControllerRequired)
	}

	return &Handler{
		controller: controller,

		pages: pages,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
