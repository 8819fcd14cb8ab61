package constants

// 내부 로깅을 위한 메시지 상수입니다.
const (
	// ------------------------------------------------------------------------------------------------
	// 서비스 생명주기
	// ------------------------------------------------------------------------------------------------

	LogMsgServiceStarting       = "미니앱 서비스 시작중..."
	LogMsgServiceStarted        = "미니앱 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "미니앱 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "미니앱 서비스 중지중..."
	LogMsgServiceStopped        = "미니앱 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "미니앱 서비스가 예기치 않게 종료되었습니다"

	LogMsgServiceHTTPServerStarting      = "미니앱 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "미니앱 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "미니앱 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "미니앱 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	// ------------------------------------------------------------------------------------------------
	// 핸들러 및 미들웨어
	// ------------------------------------------------------------------------------------------------

	LogMsgHealthCheck  = "헬스체크 요청"
	LogMsgVersionInfo  = "버전 정보 요청"
	LogMsgPageRendered = "대시보드 화면 생성 완료"
	LogMsgPaymentDone  = "결제 요청 처리 완료"

	LogMsgHTTPRequest        = "HTTP 요청"
	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
	LogMsgPanicRecovered     = "패닉 복구: 예기치 못한 오류가 발생하여 안전하게 복구했습니다"
	LogMsgRateLimitExceeded  = "요청 차단: 속도 제한(Rate Limit)을 초과하였습니다"
	LogMsgInitDataMissing    = "초기화 토큰이 없는 결제 요청을 거부했습니다"
)
