package errors

import "strconv"

// ErrorType 에러의 종류입니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크 등 인프라 오류
	System

	// Unauthorized 인증 정보(init 토큰)가 없거나 원격 서비스가 인증을 거부함
	Unauthorized

	Forbidden

	// InvalidInput 사용자 입력값 검증 실패 (금액 범위, 결제 옵션 등)
	InvalidInput

	// Conflict 상태 충돌 (결제 생성이 이미 진행 중 등)
	Conflict

	NotFound

	// ExecutionFailed 원격 호출이 비정상 응답으로 끝남
	ExecutionFailed

	// ParsingFailed 응답 본문의 파싱 또는 스키마 검증 실패
	ParsingFailed

	Timeout

	// Unavailable 원격 서비스에 연결할 수 없음
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
