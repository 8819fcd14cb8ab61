package middleware

import (
	"errors"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
)

// RequestObserver 처리된 HTTP 요청을 기록하는 대상입니다. (internal/metrics.Metrics)
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// unmatchedRoute 등록되지 않은 경로를 하나의 라벨로 묶어 라벨 카디널리티가 늘어나지 않도록 합니다.
const unmatchedRoute = "unmatched"

// Metrics 라우트 패턴(c.Path()) 단위로 요청 수와 처리 시간을 기록하는 미들웨어를 반환합니다.
// observer가 nil이면 아무 것도 하지 않습니다.
func Metrics(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if observer == nil {
			return next
		}

		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				// 에러는 아직 응답으로 변환되지 않았으므로 에러가 가리키는 상태 코드를 사용합니다.
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = httputil.StatusCode(err)
				}
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			observer.ObserveHTTPRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
