package scheduler

import (
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
)

// ErrSweeperNotInitialized 정리 대상(Sweeper)이 없는 상태로 서비스를 시작하려 할 때 반환됩니다.
var ErrSweeperNotInitialized = apperrors.New(apperrors.Internal, "Sweeper 객체가 초기화되지 않았습니다")

// newErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때 반환하는 에러를 생성합니다.
func newErrInvalidCronSpec(spec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (Spec='%s')", spec)
}
