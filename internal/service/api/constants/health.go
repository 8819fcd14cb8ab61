package constants

// 헬스체크 상태 값입니다.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	// DependencyPaymentRegistry 외부 의존성 ID: 결제 워크플로 레지스트리
	DependencyPaymentRegistry = "payment_registry"

	MsgDepStatusHealthy        = "정상 작동 중"
	MsgDepStatusNotInitialized = "서비스가 초기화되지 않음"
)
