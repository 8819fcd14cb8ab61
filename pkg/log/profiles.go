package log

// NewProductionOptions 운영 환경용 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/miniapp-server",
	}
}

// NewDevelopmentOptions 개발 환경용 설정을 반환합니다. 모든 로그를 하나의 파일과 콘솔로 출력합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/miniapp-server",
	}
}
