package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(Unauthorized, "인증 토큰이 없습니다")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, Unauthorized, appErr.Type())
	assert.Equal(t, "인증 토큰이 없습니다", appErr.Message())
	assert.Equal(t, "[Unauthorized] 인증 토큰이 없습니다", err.Error())
	require.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File, "첫 번째 프레임은 호출 지점이어야 합니다")
}

func TestWrap(t *testing.T) {
	t.Run("nil은 nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "x"))
		assert.Nil(t, Wrapf(nil, Internal, "x %d", 1))
	})

	t.Run("체인 유지", func(t *testing.T) {
		root := stderrors.New("connection refused")
		err := Wrapf(root, Unavailable, "원격 서비스(%s) 연결 실패", "account")

		assert.Equal(t, "[Unavailable] 원격 서비스(account) 연결 실패: connection refused", err.Error())
		assert.True(t, stderrors.Is(err, root))
		assert.Equal(t, root, RootCause(err))
	})
}

func TestIs_UnderlyingType(t *testing.T) {
	inner := New(ParsingFailed, "JSON 파싱 실패")
	outer := Wrap(inner, ExecutionFailed, "결제 수단 조회 실패")

	assert.True(t, Is(outer, ExecutionFailed))
	assert.True(t, Is(outer, ParsingFailed))
	assert.False(t, Is(outer, Conflict))
	assert.Equal(t, ParsingFailed, UnderlyingType(outer))
	assert.Equal(t, Unknown, UnderlyingType(stderrors.New("plain")))
	assert.Equal(t, Unknown, UnderlyingType(nil))
}

func TestMessage(t *testing.T) {
	err := Wrap(New(Conflict, "inner"), InvalidInput, "금액이 최소 금액보다 작습니다")
	assert.Equal(t, "금액이 최소 금액보다 작습니다", Message(err))
	assert.Equal(t, "plain", Message(stderrors.New("plain")))
	assert.Equal(t, "", Message(nil))
}

func TestFormat(t *testing.T) {
	err := Wrap(stderrors.New("EOF"), ParsingFailed, "본문 읽기 실패")

	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[ParsingFailed] 본문 읽기 실패")
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "Caused by:\n\tEOF")
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
