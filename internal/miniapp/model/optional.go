package model

import (
	"encoding/json"
)

// Optional 값이 없을 수 있는 필드를 명시적으로 표현합니다.
//
// 원격 서비스 응답에서 누락된 필드는 0이나 빈 문자열이 아니라 None으로 구분됩니다.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr nil이면 None, 아니면 가리키는 값을 담은 Optional을 반환합니다.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsPresent() bool {
	return o.ok
}

func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// MarshalJSON None은 null로 직렬화합니다.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
