package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// FallbackLanguage 활성 언어를 알 수 없거나 해당 언어의 항목이 없을 때 사용하는 언어입니다.
const FallbackLanguage = "en"

// Resolver 활성 언어를 기준으로 Text를 표시 문자열로 결정합니다. 부수 효과가 없고 결정적입니다.
type Resolver struct {
	active language.Base
	tag    string
}

// NewResolver 호스트가 보고한 언어(hostLang)를 우선하고, 없으면 브라우저의 Accept-Language를, 그것도 없으면 "en"을 활성 언어로 사용합니다.
func NewResolver(hostLang, acceptLanguage string) *Resolver {
	tag := pickLanguage(hostLang, acceptLanguage)
	base, _ := tag.Base()

	return &Resolver{active: base, tag: base.String()}
}

func pickLanguage(hostLang, acceptLanguage string) language.Tag {
	if hostLang = strings.TrimSpace(hostLang); hostLang != "" {
		if tag, err := language.Parse(hostLang); err == nil {
			return tag
		}
	}

	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		return tags[0]
	}

	return language.English
}

// Language 활성 언어의 기본 언어 코드(예: "ru")입니다.
func (r *Resolver) Language() string {
	return r.tag
}

// Resolve 결정 순서:
//  1. 평문이면 그대로
//  2. 활성 언어 항목
//  3. "en" 항목
//  4. 문서 순서상 첫 번째 항목
//  5. 값 없음 (false)
//
// 비어 있는 항목은 건너뜁니다.
func (r *Resolver) Resolve(t Text) (string, bool) {
	if t.isPlain {
		return t.plain, true
	}
	if len(t.entries) == 0 {
		return "", false
	}

	if v, ok := lookup(t.entries, r.active); ok {
		return v, true
	}

	en, _ := language.English.Base()
	if v, ok := lookup(t.entries, en); ok {
		return v, true
	}

	for _, e := range t.entries {
		if e.Value != "" {
			return e.Value, true
		}
	}

	return "", false
}

// ResolveOr Resolve 결과가 없으면 def를 반환합니다.
func (r *Resolver) ResolveOr(t Text, def string) string {
	if v, ok := r.Resolve(t); ok {
		return v
	}
	return def
}

func lookup(entries []Entry, want language.Base) (string, bool) {
	for _, e := range entries {
		if e.Value == "" {
			continue
		}
		if baseOf(e.Lang) == want {
			return e.Value, true
		}
	}
	return "", false
}

func baseOf(lang string) language.Base {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Base{}
	}
	b, _ := tag.Base()
	return b
}
