// Package view 로드된 데이터를 화면 섹션별 뷰 모델로 바꾸는 순수 변환 함수들을 제공합니다.
//
// 변환 함수는 입력을 변경하지 않고 매번 새 값을 반환하므로 다시 로드한 뒤 그대로 다시 호출하면 됩니다.
// 입력 컬렉션이 비어 있거나 필요한 필드가 없으면 해당 섹션은 Visible=false가 되며,
// 화면 바인딩 계층은 보이지 않는 섹션을 출력하지 않습니다.
package view

import (
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
)

// Theme 화면 색상 테마입니다.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme 호스트가 전달한 색상 스킴을 해석합니다. 알 수 없는 값이면 def를 반환합니다.
func ParseTheme(s string, def Theme) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	}
	return def
}

// StatusIndicator 상태 영역의 표시 상태입니다.
type StatusIndicator string

const (
	StatusActive          StatusIndicator = "active"
	StatusInactive        StatusIndicator = "inactive"
	StatusMissing         StatusIndicator = "missing"
	StatusFailed          StatusIndicator = "failed"
	StatusUnauthenticated StatusIndicator = "unauthenticated"
)

// Context 변환에 공통으로 필요한 표시 설정입니다.
type Context struct {
	Resolver       *i18n.Resolver
	CurrencySymbol string
}

func (c Context) resolve(t i18n.Text) string {
	return c.Resolver.ResolveOr(t, Placeholder)
}

// ForMethod 결제 수단에 통화가 지정되어 있으면 그 통화로 금액을 표시하는 Context를 반환합니다.
func (c Context) ForMethod(m model.PaymentMethod) Context {
	if cur := strings.TrimSpace(m.Currency); cur != "" {
		c.CurrencySymbol = cur
	}
	return c
}

func (c Context) currency() string {
	if c.CurrencySymbol == "" {
		return DefaultCurrencySymbol
	}
	return c.CurrencySymbol
}

// Page 한 번의 부트스트랩 결과로 만들어지는 전체 화면의 뷰 모델입니다.
type Page struct {
	Theme         Theme        `json:"theme"`
	Language      string       `json:"language"`
	Platform      platform.Tag `json:"platform"`
	Authenticated bool         `json:"authenticated"`

	Branding     Branding     `json:"branding"`
	Status       Status       `json:"status"`
	Highlights   Highlights   `json:"highlights"`
	Actions      Actions      `json:"actions"`
	Devices      Devices      `json:"devices"`
	Transactions Transactions `json:"transactions"`
	Guide        Guide        `json:"guide"`
	PaymentPanel PaymentPanel `json:"payment_panel"`
}

// NewPage 모든 데이터 섹션이 숨겨진 빈 페이지를 만듭니다.
func NewPage(theme Theme, c Context, tag platform.Tag) Page {
	return Page{
		Theme:    theme,
		Language: c.Resolver.Language(),
		Platform: tag,
	}
}

// Unauthenticated 토큰이 없을 때의 화면입니다. 데이터 섹션은 모두 숨기고 안내 문구 하나만 표시합니다.
func Unauthenticated(p Page, c Context) Page {
	return Page{
		Theme:    p.Theme,
		Language: p.Language,
		Platform: p.Platform,
		Branding: p.Branding,
		Status: Status{
			Visible:   true,
			Indicator: StatusUnauthenticated,
			Message:   c.resolve(copyUnauthenticated),
		},
	}
}

// FailedStatus 처리되지 않은 실패가 발생했을 때 상태 영역을 대체하는 값입니다.
func FailedStatus(c Context) Status {
	return Status{
		Visible:   true,
		Indicator: StatusFailed,
		Message:   c.resolve(copyGenericError),
	}
}
