package middleware

import (
	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/service/api/auth"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// InitData 요청 헤더와 쿼리/폼 파라미터에서 초기화 토큰 위치를 찾아 Context에 저장하는 미들웨어를 반환합니다.
//
// 토큰이 없어도 요청을 거부하지 않습니다. 화면 요청은 토큰이 없으면 미인증 화면을 그리기 때문입니다.
func InitData() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.SetSource(c, initdata.FromRequest(c.Request()))
			return next(c)
		}
	}
}

// RequireInitData 초기화 토큰이 없는 요청을 401로 거부하는 미들웨어를 반환합니다.
// InitData 미들웨어가 먼저 적용되지 않았다면 요청에서 직접 토큰을 찾습니다.
func RequireInitData() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			src := auth.SourceOf(c)
			if !initdata.Resolve(src).Present {
				applog.WithComponentAndFields(constants.ComponentMiddlewareInitData, applog.Fields{
					"method":    c.Request().Method,
					"path":      c.Path(),
					"remote_ip": c.RealIP(),
				}).Warn(constants.LogMsgInitDataMissing)

				return ErrInitDataRequired
			}

			auth.SetSource(c, src)
			return next(c)
		}
	}
}
