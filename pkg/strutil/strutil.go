// Package strutil 로그 출력과 사용자 메시지 구성에 쓰이는 문자열 유틸리티입니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// Mask 토큰과 같은 민감한 값을 로그에 남길 수 있도록 가립니다.
//
//	""              -> ""
//	"abc"           -> "***"
//	"abcdefgh"      -> "abcd***"
//	"query_id=AAHd…" (13자 이상) -> 앞 4자 + "***" + 뒤 4자
func Mask(s string) string {
	if s == "" {
		return ""
	}

	if len(s) <= 3 {
		return "***"
	}
	if len(s) <= 12 {
		return s[:4] + "***"
	}

	return s[:4] + "***" + s[len(s)-4:]
}

// NormalizeSpaces 연속된 공백 문자(개행 포함)를 하나의 공백으로 합치고 앞뒤 공백을 제거합니다.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate s를 최대 maxRunes 글자로 자르고, 잘린 경우 "…"를 덧붙입니다.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}

// SplitAndTrim sep로 분리한 뒤 각 요소의 공백을 제거하고, 빈 요소는 버립니다.
func SplitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
