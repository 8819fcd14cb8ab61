package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
)

// MaxTransactions 거래 내역 섹션에 표시하는 최대 항목 수입니다.
const MaxTransactions = 5

type Branding struct {
	Visible     bool   `json:"visible"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	SupportURL  string `json:"support_url,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

func RenderBranding(cfg *model.AppConfig) Branding {
	if cfg == nil {
		return Branding{}
	}

	b := cfg.Branding
	return Branding{
		Visible:     b.Name != "" || b.LogoURL != "",
		Name:        b.Name,
		Description: b.Description,
		SupportURL:  b.SupportURL,
		LogoURL:     b.LogoURL,
	}
}

type Status struct {
	Visible   bool            `json:"visible"`
	Indicator StatusIndicator `json:"indicator,omitempty"`
	Title     string          `json:"title,omitempty"`
	UserName  string          `json:"user_name,omitempty"`
	Message   string          `json:"message,omitempty"`
}

func RenderStatus(s *model.AccountSnapshot, c Context) Status {
	if s == nil {
		return Status{}
	}

	st := Status{Visible: true, UserName: orPlaceholder(s.User.DisplayName)}

	var fallback i18n.Text
	switch {
	case s.User.Missing:
		st.Indicator, fallback = StatusMissing, copyStatusMissing
		st.Message = s.MissingReason.OrElse("")
	case s.User.HasActiveSubscription:
		st.Indicator, fallback = StatusActive, copyStatusActive
	default:
		st.Indicator, fallback = StatusInactive, copyStatusInactive
	}

	if label, ok := s.User.StatusLabel.Get(); ok {
		st.Title = label
	} else {
		st.Title = c.resolve(fallback)
	}

	return st
}

// Highlight 요약 그리드의 한 칸입니다.
type Highlight struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Highlights struct {
	Visible bool        `json:"visible"`
	Items   []Highlight `json:"items,omitempty"`
}

func RenderHighlights(s *model.AccountSnapshot, c Context) Highlights {
	if s == nil {
		return Highlights{}
	}

	symbol := s.BalanceCurrency
	if symbol == "" {
		symbol = c.currency()
	}

	expires := Placeholder
	if v, ok := s.User.ExpiresAt.Get(); ok {
		expires = FormatDate(v, c.Resolver.Language())
	}

	devices := Placeholder
	if n, ok := s.ConnectedDevicesCount.Get(); ok {
		devices = strconv.Itoa(n)
	} else if len(s.ConnectedDevices) > 0 {
		devices = strconv.Itoa(len(s.ConnectedDevices))
	}

	return Highlights{
		Visible: true,
		Items: []Highlight{
			{Key: "balance", Label: c.resolve(copyBalance), Value: FormatAmount(s.Balance, symbol)},
			{Key: "expires_at", Label: c.resolve(copyExpiresAt), Value: expires},
			{Key: "traffic", Label: c.resolve(copyTraffic), Value: s.User.TrafficLimitLabel.OrElse(Placeholder)},
			{Key: "devices", Label: c.resolve(copyDevices), Value: devices},
		},
	}
}

type Link struct {
	URL     string `json:"url"`
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

type Actions struct {
	Visible bool   `json:"visible"`
	Links   []Link `json:"links,omitempty"`
}

// RenderActions 구독 링크 목록입니다. 첫 번째 링크가 기본 동작입니다.
func RenderActions(s *model.AccountSnapshot, c Context) Actions {
	if s == nil || len(s.Links) == 0 {
		return Actions{}
	}

	links := make([]Link, 0, len(s.Links))
	for i, u := range s.Links {
		links = append(links, Link{URL: u, Label: linkLabel(u, c), Primary: i == 0})
	}
	return Actions{Visible: true, Links: links}
}

func linkLabel(raw string, c Context) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return c.resolve(copyLink)
	}

	switch scheme := strings.ToLower(u.Scheme); scheme {
	case "http", "https":
		return c.resolve(copySubscriptionLink)
	default:
		return fmt.Sprintf(c.resolve(copyOpenInApp), appName(scheme))
	}
}

// appName "happ" -> "Happ"
func appName(scheme string) string {
	return strings.ToUpper(scheme[:1]) + scheme[1:]
}

type Device struct {
	Platform   string `json:"platform"`
	Model      string `json:"model"`
	AppVersion string `json:"app_version"`
}

type Devices struct {
	Visible bool     `json:"visible"`
	Items   []Device `json:"items,omitempty"`
}

func RenderDevices(s *model.AccountSnapshot) Devices {
	if s == nil || len(s.ConnectedDevices) == 0 {
		return Devices{}
	}

	items := make([]Device, 0, len(s.ConnectedDevices))
	for _, d := range s.ConnectedDevices {
		items = append(items, Device{
			Platform:   orPlaceholder(d.Platform),
			Model:      orPlaceholder(d.DeviceModel),
			AppVersion: orPlaceholder(d.AppVersion),
		})
	}
	return Devices{Visible: true, Items: items}
}

type Transaction struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Completed   bool   `json:"completed"`
	Negative    bool   `json:"negative"`
}

type Transactions struct {
	Visible bool          `json:"visible"`
	Items   []Transaction `json:"items,omitempty"`
}

// RenderTransactions 받은 순서(최신순) 그대로 앞의 MaxTransactions개만 표시합니다.
func RenderTransactions(s *model.AccountSnapshot, c Context) Transactions {
	if s == nil || len(s.Transactions) == 0 {
		return Transactions{}
	}

	symbol := s.BalanceCurrency
	if symbol == "" {
		symbol = c.currency()
	}

	src := s.Transactions
	if len(src) > MaxTransactions {
		src = src[:MaxTransactions]
	}

	items := make([]Transaction, 0, len(src))
	for _, t := range src {
		date := Placeholder
		if v, ok := t.CreatedAt.Get(); ok {
			date = FormatDate(v, c.Resolver.Language())
		}

		items = append(items, Transaction{
			Description: orPlaceholder(t.Description),
			Type:        t.Type,
			Date:        date,
			Amount:      FormatAmount(t.Amount, symbol),
			Completed:   t.IsCompleted,
			Negative:    t.Amount.OrElse(0) < 0,
		})
	}
	return Transactions{Visible: true, Items: items}
}

// GuideStepKind 설치 가이드의 고정된 세 단계입니다.
type GuideStepKind string

const (
	StepInstall         GuideStepKind = "install"
	StepAddSubscription GuideStepKind = "add_subscription"
	StepConnect         GuideStepKind = "connect"
)

type GuideButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type GuideStep struct {
	Kind        GuideStepKind `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Buttons     []GuideButton `json:"buttons,omitempty"`
}

type Guide struct {
	Visible bool        `json:"visible"`
	AppName string      `json:"app_name,omitempty"`
	Steps   []GuideStep `json:"steps,omitempty"`
}

// RenderGuide 현재 플랫폼의 첫 번째 가이드로 설치, 구독 추가, 연결 세 단계를 만듭니다.
// 버튼은 설치 단계에만 표시하며, 링크를 결정할 수 없는 버튼은 건너뜁니다.
func RenderGuide(cfg *model.AppConfig, tag platform.Tag, c Context) Guide {
	if cfg == nil {
		return Guide{}
	}
	guides := cfg.Platforms[tag]
	if len(guides) == 0 {
		return Guide{}
	}

	g := guides[0]

	install := renderStep(StepInstall, g.InstallationStep, copyStepInstall, c)
	for _, b := range g.InstallationStep.Buttons {
		link, ok := c.Resolver.Resolve(b.Link)
		if !ok || strings.TrimSpace(link) == "" {
			continue
		}
		install.Buttons = append(install.Buttons, GuideButton{
			Label: c.Resolver.ResolveOr(b.Label, link),
			URL:   link,
		})
	}

	return Guide{
		Visible: true,
		AppName: g.Name,
		Steps: []GuideStep{
			install,
			renderStep(StepAddSubscription, g.AddSubscriptionStep, copyStepAddSubscription, c),
			renderStep(StepConnect, g.ConnectAndUseStep, copyStepConnect, c),
		},
	}
}

func renderStep(kind GuideStepKind, s model.GuideStep, defaultTitle i18n.Text, c Context) GuideStep {
	title, ok := c.Resolver.Resolve(s.Title)
	if !ok || title == "" {
		title = c.resolve(defaultTitle)
	}

	return GuideStep{
		Kind:        kind,
		Title:       title,
		Description: c.resolve(s.Description),
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
