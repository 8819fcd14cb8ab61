package log

import (
	"github.com/sirupsen/logrus"
)

const fieldComponent = "component"

// WithComponent 컴포넌트 이름이 기록된 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(fieldComponent, component)
}

// WithComponentAndFields 컴포넌트 이름과 추가 필드가 기록된 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[fieldComponent] = component

	return logrus.WithFields(merged)
}

func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// StandardLogger 전역 logrus 로거를 반환합니다. 외부 라이브러리의 로그 출력을 연결할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

func SetLevel(level Level) {
	logrus.SetLevel(level)
}

func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}
