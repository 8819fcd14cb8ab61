package maputil

import (
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// trimSpaceHookFunc 문자열 필드의 앞뒤 공백을 제거합니다.
func trimSpaceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
}

// stringToDurationHookFunc "10s" 같은 문자열을 time.Duration으로 변환합니다.
// 별칭 타입이 아닌 정확한 time.Duration 대상에만 적용됩니다.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		d, err := time.ParseDuration(strings.TrimSpace(reflect.ValueOf(data).String()))
		if err != nil {
			return data, nil
		}
		return d, nil
	}
}

// StringToSliceHookFunc sep로 구분된 문자열을 문자열 슬라이스로 변환합니다. 빈 요소는 제거됩니다.
//
// 단일 문자열과 배열을 모두 허용하는 필드(예: 계정 응답의 "links")에 사용합니다.
func StringToSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}

		parts := strings.Split(reflect.ValueOf(data).String(), sep)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}
