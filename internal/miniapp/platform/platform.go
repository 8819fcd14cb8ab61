// Package platform User-Agent로부터 실행 환경을 분류하고, 설정 문서의 플랫폼 키를 정규화합니다.
package platform

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Tag 미니앱이 구분하는 플랫폼입니다.
type Tag string

const (
	IOS       Tag = "ios"
	Android   Tag = "android"
	Windows   Tag = "windows"
	Mac       Tag = "mac"
	Linux     Tag = "linux"
	AndroidTV Tag = "androidTV"
	Generic   Tag = "generic"
)

// All Detect가 반환할 수 있는 모든 태그입니다.
var All = []Tag{IOS, Android, Windows, Mac, Linux, AndroidTV, Generic}

var tvMarkers = []string{"android tv", "androidtv", "googletv", "google tv", "smart-tv", "smarttv", "bravia", "aft", "; tv"}

type matcher struct {
	tag   Tag
	match func(ua string) bool
}

// matchers 우선순위 순서입니다. 첫 번째로 일치하는 항목이 선택됩니다.
var matchers = []matcher{
	{IOS, func(ua string) bool {
		return containsAny(ua, "iphone", "ipad", "ipod")
	}},
	{Android, func(ua string) bool {
		return strings.Contains(ua, "android") && !containsAny(ua, tvMarkers...)
	}},
	{Windows, func(ua string) bool {
		return strings.Contains(ua, "windows")
	}},
	{Mac, func(ua string) bool {
		return containsAny(ua, "macintosh", "mac os x")
	}},
	{Linux, func(ua string) bool {
		return strings.Contains(ua, "linux") && !strings.Contains(ua, "android")
	}},
	{AndroidTV, func(ua string) bool {
		return strings.Contains(ua, "android") || containsAny(ua, tvMarkers...)
	}},
}

// Detect User-Agent 문자열을 분류합니다. 어떤 규칙과도 일치하지 않으면 Generic입니다.
func Detect(ua string) Tag {
	ua = strings.ToLower(ua)
	for _, m := range matchers {
		if m.match(ua) {
			return m.tag
		}
	}
	return Generic
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ParseTag 설정 문서의 플랫폼 키("ios", "macos", "androidTV", "android_tv" 등)를 Tag로 변환합니다.
// 지원하지 않는 플랫폼(예: "appleTV")이면 false를 반환합니다.
func ParseTag(key string) (Tag, bool) {
	switch strcase.ToSnake(strings.TrimSpace(key)) {
	case "ios", "i_os":
		return IOS, true
	case "android":
		return Android, true
	case "windows":
		return Windows, true
	case "mac", "macos", "mac_os", "osx":
		return Mac, true
	case "linux":
		return Linux, true
	case "android_tv":
		return AndroidTV, true
	}
	return "", false
}
