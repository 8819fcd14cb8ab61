package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	// 원격 서비스 호출은 기본적으로 제한이 없으므로, 요청 하나가 서버 자원을 무한정 점유하지 않도록 바깥에서 한 번 더 제한합니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 10

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 20

	// PaymentRateLimitPerSecond, PaymentRateLimitBurst 결제 생성 요청에만 추가로 적용하는 IP별 제한
	PaymentRateLimitPerSecond = 1
	PaymentRateLimitBurst     = 3

	// DefaultMaxBodySize 요청 본문의 최대 크기 (64KB)
	DefaultMaxBodySize = "64K"

	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 75 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)
