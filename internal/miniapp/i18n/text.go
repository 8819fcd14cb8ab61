// Package i18n 평문이거나 언어별로 지역화된 텍스트 값을 하나의 표시 문자열로 결정합니다.
package i18n

import (
	"github.com/tidwall/gjson"
)

// Text 설정 문서의 텍스트 값입니다. 평문 문자열이거나 언어 태그별 문자열 매핑입니다.
// 매핑은 문서에 등장한 순서를 유지합니다. 제로 값은 값이 없음을 뜻합니다.
type Text struct {
	plain   string
	isPlain bool
	entries []Entry
}

// Entry 지역화된 텍스트의 한 항목입니다.
type Entry struct {
	Lang  string
	Value string
}

func Plain(s string) Text {
	return Text{plain: s, isPlain: true}
}

func Localized(entries ...Entry) Text {
	return Text{entries: entries}
}

// FromJSON 문자열은 평문, 객체는 지역화된 매핑으로 해석합니다. 그 외의 값(null, 누락 등)은 값 없음입니다.
func FromJSON(r gjson.Result) Text {
	switch {
	case r.Type == gjson.String:
		return Plain(r.Str)
	case r.IsObject():
		var entries []Entry
		r.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				entries = append(entries, Entry{Lang: key.String(), Value: value.Str})
			}
			return true
		})
		return Localized(entries...)
	}
	return Text{}
}

// IsZero 값이 없는지 여부입니다. 항목이 하나도 없는 매핑도 값이 없는 것으로 봅니다.
func (t Text) IsZero() bool {
	return !t.isPlain && len(t.entries) == 0
}

func (t Text) IsPlain() bool {
	return t.isPlain
}

func (t Text) Entries() []Entry {
	return t.entries
}
