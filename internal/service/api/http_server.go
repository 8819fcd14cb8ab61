package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/remote"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/darkkaiser/miniapp-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/miniapp-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// hstsMaxAge HSTS 헤더의 max-age 값 (1년)
const hstsMaxAge = 31536000

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS TLS로 서비스할 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 60초)
	RequestTimeout time.Duration

	// RateLimitPerSecond, RateLimitBurst 전역 IP별 요청 제한 (0이면 기본값 사용)
	RateLimitPerSecond int
	RateLimitBurst     int

	// Observer 요청 지표 수집 대상 (nil이면 수집하지 않음)
	Observer appmiddleware.RequestObserver

	// Renderer 화면 템플릿 렌더러
	Renderer echo.Renderer
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 패닉 복구 및 로깅
//  2. RequestID - 요청 ID 생성 (UUID, X-Request-ID 헤더). 원격 서비스 호출에도 같은 값이 전달됩니다.
//  3. ServerHeader - Server 헤더 제거
//  4. HTTPLogger - HTTP 요청/응답 로깅 (initData 등 민감 정보 마스킹)
//  5. Metrics - 라우트 단위 요청 수와 처리 시간 기록
//  6. RateLimit - IP 기반 요청 제한 (초과 시 429)
//  7. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  8. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  9. CORS - 허용된 Origin에서의 요청 처리
//  10. Secure - 보안 헤더 설정
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	if cfg.Renderer == nil {
		panic(constants.PanicMsgRendererRequired)
	}

	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Renderer = cfg.Renderer

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	rps, burst := cfg.RateLimitPerSecond, cfg.RateLimitBurst
	if rps <= 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(remote.WithRequestID(req.Context(), id)))
		},
	}))
	// 3. Server 헤더 제거
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	// 4. HTTP 로깅 (RateLimit/Timeout 이전에 위치하여 429/503 에러도 기록)
	e.Use(appmiddleware.HTTPLogger())
	// 5. 지표
	e.Use(appmiddleware.Metrics(cfg.Observer))
	// 6. Rate Limiting
	e.Use(appmiddleware.RateLimit(rps, burst))
	// 7. Body Limit
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	// 8. Timeout
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	// 9. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			"Accept-Language",
			initdata.HeaderInitData,
			constants.XTelegramColorScheme,
		},
	}))
	// 10. 보안 헤더
	// 텔레그램 웹 클라이언트는 미니앱을 iframe으로 띄우므로 X-Frame-Options는 설정하지 않습니다.
	secure := middleware.DefaultSecureConfig
	secure.XFrameOptions = ""
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = hstsMaxAge
	}
	e.Use(middleware.SecureWithConfig(secure))

	return e
}
