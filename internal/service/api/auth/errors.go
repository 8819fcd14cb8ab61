package auth

import "errors"

var (
	// ErrSourceMissingInContext Context에 초기화 토큰 정보가 저장되어 있지 않을 때 반환하는 에러입니다.
	ErrSourceMissingInContext = errors.New("Context에서 초기화 토큰 정보를 찾을 수 없습니다")

	// ErrSourceTypeMismatch Context에 저장된 값이 initdata.Source 타입이 아닐 때 반환하는 에러입니다.
	ErrSourceTypeMismatch = errors.New("Context에 저장된 초기화 토큰 정보의 타입이 올바르지 않습니다")
)
