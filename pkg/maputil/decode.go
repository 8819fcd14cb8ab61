// Package maputil 느슨한 형태의 맵 데이터(JSON 응답 등)를 구조체로 변환하는 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode 입력 데이터를 타입 T의 새 구조체로 변환합니다.
//
// 기본 동작:
//   - Weakly Typed: "123" -> 123, 1 -> true 처럼 타입을 자동 보정합니다.
//   - `json` 태그 기준으로 필드를 매핑하고 임베디드 구조체를 평탄화합니다.
//   - 문자열 값의 앞뒤 공백을 제거합니다.
//   - 정의되지 않은 필드는 무시합니다.
//
// 원격 응답은 숫자를 문자열로 보내는 경우가 있어 약한 타입 변환을 항상 켭니다.
//
// 예시:
//
//	m, err := maputil.Decode[methodPayload](raw)
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := decodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// decodeTo 입력 데이터를 output이 가리키는 구조체에 병합합니다. output은 nil이 아니어야 합니다.
func decodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	cfg := &decodingConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook:       cfg.buildDecodeHook(),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return nil
}

type decodingConfig struct {
	extraHooks []mapstructure.DecodeHookFunc
}

// buildDecodeHook 사용자 정의 훅을 기본 훅보다 먼저 실행하는 훅 체인을 만듭니다.
func (c *decodingConfig) buildDecodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.extraHooks)+3)
	hooks = append(hooks, c.extraHooks...)
	hooks = append(hooks,
		mapstructure.TextUnmarshallerHookFunc(),
		stringToDurationHookFunc(),
		trimSpaceHookFunc(),
	)

	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

type Option func(*decodingConfig)

// WithDecodeHook 기본 훅보다 먼저 실행될 변환 훅을 추가합니다.
func WithDecodeHook(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(c *decodingConfig) {
		c.extraHooks = append(c.extraHooks, hooks...)
	}
}
