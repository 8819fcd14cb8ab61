package handler

import (
	"net/http"

	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/miniapp-server/internal/service/api/handler"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// DashboardHandler godoc
// @Summary 대시보드 뷰 모델 조회
// @Description 부트스트랩을 한 번 수행하고 화면 전체의 뷰 모델을 JSON으로 반환합니다.
// @Description 실패는 상태 영역(status.indicator = failed, unauthenticated)으로 표현되므로 항상 200으로 응답합니다.
// @Tags Dashboard
// @Produce json
// @Param X-Telegram-Init-Data header string false "초기화 토큰 (권장)"
// @Param initData query string false "초기화 토큰 (헤더가 없을 때)"
// @Param X-Telegram-Color-Scheme header string false "색상 스킴 (dark, light)"
// @Param colorScheme query string false "색상 스킴 (헤더가 없을 때)"
// @Success 200 {object} view.Page "화면 뷰 모델"
// @Router /api/v1/dashboard [get]
func (h *Handler) DashboardHandler(c echo.Context) error {
	page := h.controller.Run(c.Request().Context(), apihandler.NewPageRequest(c))

	if h.pages != nil {
		h.pages.ObservePage(string(page.Status.Indicator))
	}

	h.log(c).WithFields(applog.Fields{
		"indicator":     page.Status.Indicator,
		"authenticated": page.Authenticated,
		"platform":      page.Platform,
	}).Debug(constants.LogMsgPageRendered)

	return c.JSON(http.StatusOK, page)
}
