// Package handler v1 API와 화면 핸들러가 공유하는 요청 해석 및 검증 기능을 제공합니다.
package handler

import (
	"context"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/bootstrap"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	"github.com/darkkaiser/miniapp-server/internal/service/api/auth"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// Controller 화면 생성과 결제 생성을 수행합니다. (bootstrap.Controller)
type Controller interface {
	Run(ctx context.Context, req bootstrap.Request) view.Page
	Pay(ctx context.Context, cmd bootstrap.PaymentCommand) (bootstrap.PaymentOutcome, error)
}

// PageObserver 만들어진 화면의 상태를 기록합니다. (metrics.Metrics)
type PageObserver interface {
	ObservePage(status string)
}

// NewPageRequest HTTP 요청으로부터 화면 생성 요청을 만듭니다.
//
// 색상 스킴은 X-Telegram-Color-Scheme 헤더를 우선하고, 없으면 colorScheme 쿼리 파라미터를 사용합니다.
func NewPageRequest(c echo.Context) bootstrap.Request {
	req := c.Request()

	colorScheme := strings.TrimSpace(req.Header.Get(constants.XTelegramColorScheme))
	if colorScheme == "" {
		colorScheme = c.QueryParam(constants.QueryColorScheme)
	}

	return bootstrap.Request{
		Init:           auth.SourceOf(c),
		UserAgent:      req.UserAgent(),
		AcceptLanguage: req.Header.Get("Accept-Language"),
		ColorScheme:    colorScheme,
	}
}
