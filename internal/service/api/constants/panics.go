package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired  = "AppConfig는 필수입니다"
	PanicMsgControllerRequired = "Controller는 필수입니다"
	PanicMsgRendererRequired   = "Renderer는 필수입니다"

	// PanicMsgAuthContextSourceNotFound 패닉 메시지: Context에서 초기화 토큰 정보 가져오기 실패
	PanicMsgAuthContextSourceNotFound = "Auth: Context에서 초기화 토큰 정보를 가져올 수 없습니다. InitData 미들웨어가 적용되었는지 확인해주세요. (원인: %v)"

	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimit: requestsPerSecond는 양수여야 합니다 (현재값: %d)"
	PanicMsgRateLimitBurstInvalid             = "RateLimit: burst는 양수여야 합니다 (현재값: %d)"
)
