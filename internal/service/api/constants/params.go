package constants

// URL 쿼리 파라미터 및 경로 파라미터 키 상수입니다.
const (
	// QueryColorScheme 웹뷰 쪽 스크립트가 호스트 색상 스킴을 전달하는 쿼리 파라미터
	QueryColorScheme = "colorScheme"

	// ParamMethod 결제 수단 ID 경로 파라미터
	ParamMethod = "method"
)

// HTTP 헤더 키 상수입니다.
const (
	// XTelegramColorScheme 호스트 색상 스킴 헤더 (dark, light)
	XTelegramColorScheme = "X-Telegram-Color-Scheme"

	RetryAfter = "Retry-After"
)

// SensitiveQueryParams 로그 기록 시 마스킹해야 하는 쿼리 파라미터 목록입니다.
// 초기화 토큰은 사용자 식별 정보와 서명을 포함하므로 그대로 남기지 않습니다.
var SensitiveQueryParams = []string{
	"initData",
	"tgWebAppData",
	"token",
	"password",
	"secret",
}
