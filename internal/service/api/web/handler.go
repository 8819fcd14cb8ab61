// Package web 미니앱 웹뷰가 여는 HTML 화면과 결제 폼 전송을 처리합니다.
//
// 스크립트가 동작하지 않는 환경에서도 결제 폼을 일반 폼 전송으로 처리할 수 있도록,
// 결제에 성공하면 결제 페이지로 303 리다이렉트하고 실패하면 결과 문구를 포함한 화면을 다시 그립니다.
package web

import (
	"net/http"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/bootstrap"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	"github.com/darkkaiser/miniapp-server/internal/service/api/auth"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/miniapp-server/internal/service/api/handler"
	"github.com/darkkaiser/miniapp-server/internal/service/api/httputil"
	"github.com/darkkaiser/miniapp-server/internal/service/api/render"
	"github.com/darkkaiser/miniapp-server/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 화면 요청 핸들러입니다. 화면 출력은 echo.Echo에 등록된 Renderer(render.Renderer)를 사용합니다.
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

// PageHandler 대시보드 화면을 그립니다. 부트스트랩 실패는 상태 영역으로 표현되므로 항상 200으로 응답합니다.
func (h *Handler) PageHandler(c echo.Context) error {
	page := h.controller.Run(c.Request().Context(), apihandler.NewPageRequest(c))

	return h.render(c, http.StatusOK, page)
}

// PaymentFormHandler 스크립트 없이 전송된 결제 폼을 처리합니다.
func (h *Handler) PaymentFormHandler(c echo.Context) error {
	req := new(request.PaymentRequest)
	if err := apihandler.BindRequest(c, req); err != nil {
		return err
	}

	methodID := c.Param(constants.ParamMethod)
	src := auth.MustGetSource(c)

	outcome, err := h.controller.Pay(c.Request().Context(), bootstrap.PaymentCommand{
		Init:           src,
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
		MethodID:       methodID,
		Input:          req.Input(),
	})
	if err == nil && outcome.PaymentURL != "" {
		return c.Redirect(http.StatusSeeOther, outcome.PaymentURL)
	}

	status := http.StatusOK
	if err != nil {
		status = httputil.StatusCode(err)

		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"endpoint":    c.Path(),
			"method":      methodID,
			"status_code": status,
			"error":       err,
		}).Warn(constants.LogMsgPaymentDone)
	}

	page := h.controller.Run(c.Request().Context(), apihandler.NewPageRequest(c))

	return h.render(c, status, overlayPayment(page, methodID, outcome))
}

func (h *Handler) render(c echo.Context, status int, page view.Page) error {
	if h.pages != nil {
		h.pages.ObservePage(string(page.Status.Indicator))
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":      c.Path(),
		"indicator":     page.Status.Indicator,
		"authenticated": page.Authenticated,
		"platform":      page.Platform,
	}).Debug(constants.LogMsgPageRendered)

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return c.Render(status, render.PageTemplate, render.PageData{
		Page:     page,
		InitData: initdata.Resolve(auth.SourceOf(c)).Token,
	})
}

// overlayPayment 결제 시도 결과를 다시 그린 화면의 해당 결제 수단에 반영합니다.
// 화면에 해당 결제 수단이 없으면 결과 문구를 상태 영역에 표시합니다.
func overlayPayment(page view.Page, methodID string, outcome bootstrap.PaymentOutcome) view.Page {
	if outcome.Message == "" {
		return page
	}

	methods := make([]view.PaymentMethod, len(page.PaymentPanel.Methods))
	copy(methods, page.PaymentPanel.Methods)

	for i := range methods {
		if methods[i].ID == methodID {
			methods[i].Button = outcome.Button
			methods[i].Message = outcome.Message
			page.PaymentPanel.Methods = methods
			return page
		}
	}

	page.Status.Visible = true
	page.Status.Message = outcome.Message

	return page
}
