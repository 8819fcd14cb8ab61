// Package errors 타입 기반으로 분류되는 애플리케이션 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되고 Wrap을 통해 문맥을 누적합니다.
// HTTP 계층은 UnderlyingType으로 응답 코드를, 대시보드는 Is로 렌더링 상태를 결정합니다.
//
//	if err != nil {
//	    return errors.Wrap(err, errors.Unavailable, "계정 정보를 불러오지 못했습니다")
//	}
//
//	if errors.Is(err, errors.Unauthorized) {
//	    // 인증 토큰 없음
//	}
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션에서 발생하는 에러의 표준 표현입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

func (e *AppError) Type() ErrorType {
	return e.errType
}

func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v로 출력하면 에러 체인과 스택 트레이스를 함께 출력합니다.
//
// 스택은 체인의 끝(cause 없음) 또는 외부 에러를 감싼 지점에서만 출력하여 중복을 피합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			var target *AppError
			if e.cause == nil || !errors.As(e.cause, &target) {
				if len(e.stack) > 0 {
					fmt.Fprint(s, "\nStack trace:")
					for _, frame := range e.stack {
						fn := frame.Function
						if idx := strings.LastIndex(fn, "/"); idx != -1 {
							fn = fn[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, fn)
					}
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if f, ok := e.cause.(fmt.Formatter); ok {
					f.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap err을 감싸 새로운 에러를 만듭니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 errType의 AppError가 하나라도 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 체인에서 가장 안쪽에 있는 AppError의 타입을 반환합니다. AppError가 없으면 Unknown입니다.
//
//	err := Wrap(New(Unauthorized, "토큰 없음"), Internal, "대시보드 구성 실패")
//	UnderlyingType(err) // Unauthorized
func UnderlyingType(err error) ErrorType {
	last := Unknown
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			last = appErr.errType
		}
		err = errors.Unwrap(err)
	}
	return last
}

// Message 체인에서 가장 바깥쪽 AppError의 메시지를 반환합니다. 사용자에게 노출할 문구로 사용합니다.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
