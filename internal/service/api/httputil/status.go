package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
)

// StatusCode 애플리케이션 에러의 분류를 HTTP 상태 코드로 변환합니다.
//
// 원격 서비스 호출과 관련된 실패(ExecutionFailed, ParsingFailed, Timeout, Unavailable)는
// 이 서버가 게이트웨이 역할을 하므로 502로 응답합니다.
func StatusCode(err error) int {
	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput:
		return http.StatusUnprocessableEntity
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.ExecutionFailed, apperrors.ParsingFailed, apperrors.Timeout, apperrors.Unavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
