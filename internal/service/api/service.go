// Package api 미니앱 HTTP 서버를 구성하고 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/miniapp-server/docs"
	"github.com/darkkaiser/miniapp-server/internal/config"
	"github.com/darkkaiser/miniapp-server/internal/pkg/version"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/miniapp-server/internal/service/api/handler"
	"github.com/darkkaiser/miniapp-server/internal/service/api/handler/system"
	appmiddleware "github.com/darkkaiser/miniapp-server/internal/service/api/middleware"
	"github.com/darkkaiser/miniapp-server/internal/service/api/render"
	v1 "github.com/darkkaiser/miniapp-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/miniapp-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/miniapp-server/internal/service/api/web"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Observer HTTP 요청과 화면 상태를 기록하고 수집 엔드포인트를 제공합니다. (metrics.Metrics)
type Observer interface {
	appmiddleware.RequestObserver
	apihandler.PageObserver

	Handler() http.Handler
}

// Service 미니앱 HTTP 서버의 생명주기를 관리하는 서비스입니다.
//
// 이 서비스는 다음과 같은 역할을 수행합니다:
//   - Echo 기반 HTTP/HTTPS 서버 시작 및 종료
//   - 미들웨어 체인 설정
//   - 화면(/), JSON API(/api/v1), 시스템(/healthz, /version, /metrics), Swagger UI 라우팅
//   - Graceful Shutdown 지원
//
// Start() 메서드로 시작하고, context 취소로 종료됩니다.
type Service struct {
	appConfig *config.AppConfig

	controller apihandler.Controller
	workflows  system.WorkflowCounter
	observer   Observer

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. workflows와 observer는 nil이어도 됩니다.
func NewService(appConfig *config.AppConfig, controller apihandler.Controller, workflows system.WorkflowCounter, observer Observer, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if controller == nil {
		panic(constants.PanicMsgControllerRequired)
	}

	return &Service{
		appConfig: appConfig,

		controller: controller,
		workflows:  workflows,
		observer:   observer,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 서버 구성(템플릿 파싱 포함)에 실패하면 에러를 반환하고, 성공하면 서버를 고루틴에서 실행한 뒤 즉시 반환합니다.
// 서비스가 종료되면 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	e, err := s.setupServer()
	if err != nil {
		defer serviceStopWG.Done()
		return err
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 모든 라우트를 등록합니다.
func (s *Service) setupServer() (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	var (
		requests       appmiddleware.RequestObserver
		pages          apihandler.PageObserver
		metricsHandler http.Handler
	)
	if s.observer != nil {
		requests, pages, metricsHandler = s.observer, s.observer, s.observer.Handler()
	}

	serverCfg := s.appConfig.Server

	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		EnableHSTS:         serverCfg.TLSServer,
		AllowOrigins:       serverCfg.CORS.AllowOrigins,
		RateLimitPerSecond: serverCfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:     serverCfg.RateLimit.Burst,
		Observer:           requests,
		Renderer:           renderer,
	})

	// 결제 생성 제한은 화면 폼과 JSON API가 함께 사용합니다.
	paymentLimiter := appmiddleware.RateLimitWithConfig(appmiddleware.RateLimitConfig{
		RequestsPerSecond: constants.PaymentRateLimitPerSecond,
		Burst:             constants.PaymentRateLimitBurst,
		KeyFunc:           appmiddleware.KeyBySession,
	})

	RegisterRoutes(e, system.NewHandler(s.workflows, s.buildInfo), metricsHandler)
	v1.RegisterRoutes(e, v1handler.NewHandler(s.controller, pages), paymentLimiter)
	web.RegisterRoutes(e, web.NewHandler(s.controller, pages), paymentLimiter)

	return e, nil
}

// startHTTPServer HTTP/HTTPS 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	serverCfg := s.appConfig.Server
	address := fmt.Sprintf(":%d", serverCfg.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": serverCfg.ListenPort,
		"tls":  serverCfg.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if serverCfg.TLSServer {
		err = e.StartTLS(address, serverCfg.TLSCertFile, serverCfg.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버 종료 시의 에러를 처리합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.Server.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 먼저 종료된 경우
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
