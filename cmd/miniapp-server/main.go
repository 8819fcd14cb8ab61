package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/miniapp-server/internal/config"
	"github.com/darkkaiser/miniapp-server/internal/metrics"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/bootstrap"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/payment"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/remote"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	"github.com/darkkaiser/miniapp-server/internal/pkg/version"
	"github.com/darkkaiser/miniapp-server/internal/service"
	"github.com/darkkaiser/miniapp-server/internal/service/api"
	"github.com/darkkaiser/miniapp-server/internal/service/launcher"
	"github.com/darkkaiser/miniapp-server/internal/service/scheduler"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
)

// @title Mini App Server API
// @version 1.0.0
// @description 텔레그램 미니앱 계정 대시보드의 서버 API입니다.
// @description
// @description 미니앱 웹뷰가 전달한 initData를 그대로 원격 계정/결제 서비스에 위임하여
// @description 계정 현황 화면을 구성하고 결제 요청을 처리합니다.
// @description
// @description ## 인증 방법
// @description 모든 /api/v1 요청에는 텔레그램이 발급한 initData가 필요합니다.
// @description X-Telegram-Init-Data 헤더 또는 initData 쿼리 파라미터로 전달하세요.
// @description 서버는 값을 검증하지 않고 원격 서비스에 그대로 전달합니다.

// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser

// @license.name MIT

// @BasePath /

// @securityDefinitions.apikey InitDataAuth
// @in header
// @name X-Telegram-Init-Data
// @description 텔레그램 미니앱 initData 원문

const (
	banner = `
  __  __ _       _    _
 |  \/  (_)_ __ (_)  / \   _ __  _ __
 | |\/| | | '_ \| | / _ \ | '_ \| '_ \
 | |  | | | | | | |/ ___ \| |_) | |_) |
 |_|  |_|_|_| |_|_/_/   \_\ .__/| .__/   %s
                          |_|   |_|
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	appLogCloser, err := applog.Setup(logOptions(appConfig))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	for _, s := range newServices(appConfig, buildInfo) {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			appLogCloser.Close()
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호 수신")
	cancel()
	serviceStopWG.Wait()
}

func logOptions(appConfig *config.AppConfig) applog.Options {
	if appConfig.Debug {
		return applog.NewDevelopmentOptions(config.AppName)
	}
	return applog.NewProductionOptions(config.AppName)
}

// newServices 설정으로부터 서비스 구성 요소를 조립합니다. 네트워크 연결은 Start에서 이루어집니다.
func newServices(appConfig *config.AppConfig, buildInfo version.Info) []service.Service {
	m := metrics.New()

	client := remote.NewClient(remote.Config{
		BaseURL:            appConfig.Remote.BaseURL,
		ConfigPath:         appConfig.Remote.ConfigPath,
		AccountPath:        appConfig.Remote.AccountPath,
		PaymentMethodsPath: appConfig.Remote.PaymentMethodsPath,
		PaymentCreatePath:  appConfig.Remote.PaymentCreatePath,
		Timeout:            appConfig.Remote.Timeout,
		MaxBodySize:        appConfig.Remote.MaxBodySize,
	}, remote.WithObserver(m))

	registry := payment.NewRegistry(client,
		payment.WithObserver(m),
		payment.WithIdleTTL(appConfig.Payment.IdleTTL),
	)

	controller := bootstrap.New(client, registry, bootstrap.Defaults{
		Theme:          view.ParseTheme(appConfig.UI.DefaultTheme, view.ThemeDark),
		Language:       appConfig.UI.DefaultLanguage,
		CurrencySymbol: appConfig.UI.CurrencySymbol,
	})

	return []service.Service{
		api.NewService(appConfig, controller, registry, m, buildInfo),
		scheduler.NewService(appConfig.Payment.SweepSchedule, registry),
		launcher.NewService(appConfig),
	}
}
