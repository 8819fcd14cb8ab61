package remote

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/darkkaiser/miniapp-server/pkg/maputil"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// accountPayload 계정 엔드포인트의 응답 스키마입니다. 선택 필드는 포인터로 받아 누락 여부를 구분합니다.
type accountPayload struct {
	User                      *userPayload         `json:"user" validate:"required"`
	BalanceKopeks             any                  `json:"balance_kopeks"`
	BalanceCurrency           string               `json:"balance_currency"`
	SubscriptionMissingReason *string              `json:"subscription_missing_reason"`
	SubscriptionURL           string               `json:"subscription_url"`
	HappLink                  string               `json:"happ_link"`
	HappCryptoLink            string               `json:"happ_crypto_link"`
	Links                     []string             `json:"links"`
	ConnectedDevices          []devicePayload      `json:"connected_devices"`
	ConnectedDevicesCount     *int                 `json:"connected_devices_count" validate:"omitempty,min=0"`
	Transactions              []transactionPayload `json:"transactions"`
}

type userPayload struct {
	DisplayName           string  `json:"display_name"`
	Username              string  `json:"username"`
	FirstName             string  `json:"first_name"`
	SubscriptionStatus    string  `json:"subscription_status"`
	HasActiveSubscription bool    `json:"has_active_subscription"`
	Missing               bool    `json:"subscription_missing"`
	ExpiresAt             *string `json:"expires_at"`
	TrafficLimitLabel     *string `json:"traffic_limit_label"`
	StatusLabel           *string `json:"status_label"`
}

type devicePayload struct {
	Platform    string `json:"platform"`
	DeviceModel string `json:"device_model"`
	AppVersion  string `json:"app_version"`
}

type transactionPayload struct {
	Description  string  `json:"description"`
	Type         string  `json:"type"`
	CreatedAt    *string `json:"created_at"`
	AmountKopeks any     `json:"amount_kopeks"`
	IsCompleted  bool    `json:"is_completed"`
}

type methodsPayload struct {
	Methods []methodPayload `json:"methods" validate:"unique=ID,dive"`
}

type methodPayload struct {
	ID               string          `json:"id" validate:"required"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	RequiresAmount   bool            `json:"requires_amount"`
	MinAmountKopeks  *int64          `json:"min_amount_kopeks" validate:"omitempty,min=0"`
	MaxAmountKopeks  *int64          `json:"max_amount_kopeks" validate:"omitempty,min=0"`
	AmountStepKopeks *int64          `json:"amount_step_kopeks" validate:"omitempty,gt=0"`
	Currency         string          `json:"currency"`
	Options          []optionPayload `json:"options" validate:"dive"`
	IsAvailable      *bool           `json:"is_available"`
}

type optionPayload struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title"`
}

// parseObject 본문이 JSON 객체인지 확인하고 gjson 결과를 반환합니다.
func parseObject(body []byte) (gjson.Result, error) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, errors.New("응답 본문이 JSON 객체가 아닙니다")
	}
	return root, nil
}

func decodeAccount(body []byte, v *validator.Validate) (*model.AccountSnapshot, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	p, err := maputil.Decode[accountPayload](root.Value(), maputil.WithDecodeHook(maputil.StringToSliceHookFunc("\n")))
	if err != nil {
		return nil, err
	}
	if err := v.Struct(p); err != nil {
		return nil, fmt.Errorf("계정 응답 검증에 실패했습니다: %w", err)
	}

	u := p.User
	displayName := firstNonEmpty(u.DisplayName, u.Username, u.FirstName)

	snapshot := &model.AccountSnapshot{
		User: model.User{
			DisplayName:           displayName,
			SubscriptionStatus:    u.SubscriptionStatus,
			HasActiveSubscription: u.HasActiveSubscription,
			Missing:               u.Missing,
			ExpiresAt:             nonEmpty(u.ExpiresAt),
			TrafficLimitLabel:     nonEmpty(u.TrafficLimitLabel),
			StatusLabel:           nonEmpty(u.StatusLabel),
		},
		Balance:               lenientInt(p.BalanceKopeks),
		BalanceCurrency:       p.BalanceCurrency,
		MissingReason:         nonEmpty(p.SubscriptionMissingReason),
		Links:                 mergeLinks(append([]string{p.SubscriptionURL, p.HappLink, p.HappCryptoLink}, p.Links...)),
		ConnectedDevicesCount: model.FromPtr(p.ConnectedDevicesCount),
	}

	for _, d := range p.ConnectedDevices {
		snapshot.ConnectedDevices = append(snapshot.ConnectedDevices, model.Device{
			Platform:    d.Platform,
			DeviceModel: d.DeviceModel,
			AppVersion:  d.AppVersion,
		})
	}
	for _, t := range p.Transactions {
		snapshot.Transactions = append(snapshot.Transactions, model.Transaction{
			Description: t.Description,
			Type:        t.Type,
			CreatedAt:   nonEmpty(t.CreatedAt),
			Amount:      lenientInt(t.AmountKopeks),
			IsCompleted: t.IsCompleted,
		})
	}

	return snapshot, nil
}

func decodePaymentMethods(body []byte, v *validator.Validate) ([]model.PaymentMethod, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	p, err := maputil.Decode[methodsPayload](root.Value())
	if err != nil {
		return nil, err
	}
	if err := v.Struct(p); err != nil {
		return nil, fmt.Errorf("결제 수단 응답 검증에 실패했습니다: %w", err)
	}

	methods := make([]model.PaymentMethod, 0, len(p.Methods))
	for _, m := range p.Methods {
		if m.MinAmountKopeks != nil && m.MaxAmountKopeks != nil && *m.MaxAmountKopeks < *m.MinAmountKopeks {
			return nil, fmt.Errorf("결제 수단(%s)의 최대 금액(%d)이 최소 금액(%d)보다 작습니다", m.ID, *m.MaxAmountKopeks, *m.MinAmountKopeks)
		}

		method := model.PaymentMethod{
			ID:             m.ID,
			Name:           m.Name,
			Icon:           m.Icon,
			RequiresAmount: m.RequiresAmount,
			MinAmount:      model.FromPtr(m.MinAmountKopeks),
			MaxAmount:      model.FromPtr(m.MaxAmountKopeks),
			AmountStep:     model.FromPtr(m.AmountStepKopeks),
			Currency:       m.Currency,
			Available:      m.IsAvailable == nil || *m.IsAvailable,
		}
		if method.Name == "" {
			method.Name = m.ID
		}
		for _, o := range m.Options {
			title := o.Title
			if title == "" {
				title = o.ID
			}
			method.Options = append(method.Options, model.PaymentOption{ID: o.ID, Title: title})
		}
		methods = append(methods, method)
	}

	return methods, nil
}

func decodePaymentResponse(body []byte) (model.PaymentResponse, error) {
	root, err := parseObject(body)
	if err != nil {
		return model.PaymentResponse{}, err
	}

	if u := strings.TrimSpace(root.Get("payment_url").String()); u != "" {
		return model.PaymentResponse{PaymentURL: model.Some(u)}, nil
	}
	return model.PaymentResponse{PaymentURL: model.None[string]()}, nil
}

// decodeAppConfig 설정 문서를 해석합니다. platforms는 config 객체 안이나 최상위 어느 쪽에 있어도 됩니다.
// 알 수 없는 플랫폼 키는 무시합니다.
func decodeAppConfig(body []byte) (*model.AppConfig, error) {
	root, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	cfgNode := root.Get("config")
	if !cfgNode.IsObject() {
		return nil, errors.New("config 객체가 없습니다")
	}

	b := cfgNode.Get("branding")
	cfg := &model.AppConfig{
		Branding: model.Branding{
			Name:        strings.TrimSpace(b.Get("name").String()),
			Description: strings.TrimSpace(b.Get("description").String()),
			SupportURL:  strings.TrimSpace(firstString(b, "supportUrl", "support_url")),
			LogoURL:     strings.TrimSpace(firstString(b, "logoUrl", "logo_url")),
		},
		Platforms: make(map[platform.Tag][]model.PlatformGuide),
	}

	platforms := cfgNode.Get("platforms")
	if !platforms.Exists() {
		platforms = root.Get("platforms")
	}
	if platforms.Exists() && !platforms.IsObject() {
		return nil, errors.New("platforms는 객체여야 합니다")
	}

	var decodeErr error
	platforms.ForEach(func(key, value gjson.Result) bool {
		tag, ok := platform.ParseTag(key.String())
		if !ok {
			return true
		}
		if !value.IsArray() {
			decodeErr = fmt.Errorf("platforms.%s는 배열이어야 합니다", key.String())
			return false
		}

		for _, app := range value.Array() {
			if !app.IsObject() {
				continue
			}
			cfg.Platforms[tag] = append(cfg.Platforms[tag], decodeGuide(app))
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return cfg, nil
}

func decodeGuide(app gjson.Result) model.PlatformGuide {
	return model.PlatformGuide{
		ID:                  app.Get("id").String(),
		Name:                app.Get("name").String(),
		Featured:            app.Get("isFeatured").Bool(),
		URLScheme:           app.Get("urlScheme").String(),
		InstallationStep:    decodeStep(app.Get("installationStep")),
		AddSubscriptionStep: decodeStep(app.Get("addSubscriptionStep")),
		ConnectAndUseStep:   decodeStep(app.Get("connectAndUseStep")),
	}
}

func decodeStep(step gjson.Result) model.GuideStep {
	s := model.GuideStep{
		Title:       i18n.FromJSON(step.Get("title")),
		Description: i18n.FromJSON(step.Get("description")),
	}
	for _, btn := range step.Get("buttons").Array() {
		s.Buttons = append(s.Buttons, model.GuideButton{
			Label: i18n.FromJSON(btn.Get("buttonText")),
			Link:  i18n.FromJSON(btn.Get("buttonLink")),
		})
	}
	return s
}

// mergeLinks 빈 값을 건너뛰고 처음 등장한 순서대로 중복을 제거합니다.
func mergeLinks(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	links := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		links = append(links, c)
	}
	return links
}

// lenientInt 숫자 또는 숫자 문자열을 정수로 변환합니다. 그 외의 값은 None입니다.
// 금액 필드 하나가 잘못되었다고 전체 응답을 버리지 않고 해당 값만 표시하지 않습니다.
// int64 범위를 벗어난 숫자도 None입니다.
func lenientInt(v any) model.Optional[int64] {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < -(1<<63) || n >= 1<<63 {
			return model.None[int64]()
		}
		return model.Some(int64(n))
	case int64:
		return model.Some(n)
	case int:
		return model.Some(int64(n))
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return model.Some(i)
		}
	}
	return model.None[int64]()
}

func nonEmpty(p *string) model.Optional[string] {
	if p == nil || strings.TrimSpace(*p) == "" {
		return model.None[string]()
	}
	return model.Some(strings.TrimSpace(*p))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}
