package remote

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
)

// Endpoint 원격 서비스의 엔드포인트 구분입니다.
type Endpoint string

const (
	EndpointConfig         Endpoint = "config"
	EndpointAccount        Endpoint = "account"
	EndpointPaymentMethods Endpoint = "payment_methods"
	EndpointPaymentCreate  Endpoint = "payment_create"
)

// LoadError 원격 호출 실패입니다. 원격 서비스가 응답한 경우 상태 코드와 본문(평문)을 그대로 담습니다.
//
// Cause는 분류된 apperrors.AppError입니다:
//   - Unavailable: 네트워크 오류 (응답 없음)
//   - Timeout: 설정된 제한 시간 초과
//   - Unauthorized: 401/403 응답
//   - ExecutionFailed: 그 외 2xx가 아닌 응답
//   - ParsingFailed: 응답 본문이 JSON이 아니거나 스키마 검증 실패
type LoadError struct {
	Endpoint   Endpoint
	URL        string
	StatusCode int    // 응답을 받지 못한 경우 0
	Body       string // 2xx가 아닌 응답의 본문
	Cause      error
}

func (e *LoadError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 로드 실패", e.Endpoint)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (HTTP %d)", e.StatusCode)
	}
	if e.URL != "" {
		fmt.Fprintf(&sb, " URL: %s", e.URL)
	}
	if e.Body != "" {
		fmt.Fprintf(&sb, ", Body: %s", e.Body)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Detail 사용자에게 보여줄 실패 상세입니다. 원격 서비스의 본문이 있으면 그것을, 없으면 원인 에러의 메시지를 사용합니다.
func (e *LoadError) Detail() string {
	if strings.TrimSpace(e.Body) != "" {
		return e.Body
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return apperrors.Message(e.Cause)
}

type bodyTooLargeError struct {
	limit int64
}

func (e *bodyTooLargeError) Error() string {
	return fmt.Sprintf("응답 본문이 허용된 크기(%d bytes)를 초과했습니다", e.limit)
}
