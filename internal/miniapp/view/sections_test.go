package view

import (
	"testing"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruContext() Context {
	return Context{Resolver: i18n.NewResolver("ru", ""), CurrencySymbol: "₽"}
}

func enContext() Context {
	return Context{Resolver: i18n.NewResolver("", "en-US,en;q=0.9")}
}

func transactions(n int) []model.Transaction {
	txs := make([]model.Transaction, n)
	for i := range txs {
		txs[i] = model.Transaction{
			Description: string(rune('A' + i)),
			Amount:      model.Some(int64((i + 1) * 100)),
		}
	}
	return txs
}

func TestRenderTransactions_CapsAtFiveInOrder(t *testing.T) {
	s := &model.AccountSnapshot{Transactions: transactions(6)}

	got := RenderTransactions(s, ruContext())

	require.True(t, got.Visible)
	require.Len(t, got.Items, MaxTransactions)
	for i, item := range got.Items {
		assert.Equal(t, string(rune('A'+i)), item.Description)
	}
	assert.Equal(t, "1.00 ₽", got.Items[0].Amount)
	assert.Len(t, s.Transactions, 6, "입력은 변경되지 않아야 합니다")
}

func TestRenderTransactions_Placeholders(t *testing.T) {
	s := &model.AccountSnapshot{Transactions: []model.Transaction{{Amount: model.Some(int64(-500))}}}

	got := RenderTransactions(s, enContext())

	require.Len(t, got.Items, 1)
	assert.Equal(t, Placeholder, got.Items[0].Description)
	assert.Equal(t, Placeholder, got.Items[0].Date)
	assert.Equal(t, "-5.00 ₽", got.Items[0].Amount)
	assert.True(t, got.Items[0].Negative)
}

func TestSections_HiddenWhenEmpty(t *testing.T) {
	c := ruContext()
	empty := &model.AccountSnapshot{}

	assert.False(t, RenderTransactions(empty, c).Visible)
	assert.False(t, RenderDevices(empty).Visible)
	assert.False(t, RenderActions(empty, c).Visible)
	assert.False(t, RenderPaymentPanel(nil, nil, c).Visible)
	assert.False(t, RenderGuide(&model.AppConfig{}, platform.IOS, c).Visible)

	assert.False(t, RenderStatus(nil, c).Visible)
	assert.False(t, RenderHighlights(nil, c).Visible)
	assert.False(t, RenderBranding(nil).Visible)
	assert.False(t, RenderGuide(nil, platform.IOS, c).Visible)
}

func TestRenderDevices(t *testing.T) {
	s := &model.AccountSnapshot{ConnectedDevices: []model.Device{
		{Platform: "ios", DeviceModel: "iPhone 15", AppVersion: "1.2"},
		{Platform: "android"},
	}}

	got := RenderDevices(s)

	require.True(t, got.Visible)
	require.Len(t, got.Items, 2)
	assert.Equal(t, Device{Platform: "ios", Model: "iPhone 15", AppVersion: "1.2"}, got.Items[0])
	assert.Equal(t, Device{Platform: "android", Model: Placeholder, AppVersion: Placeholder}, got.Items[1])
}

func TestRenderHighlights(t *testing.T) {
	s := &model.AccountSnapshot{
		Balance: model.Some(int64(123456)),
		User: model.User{
			ExpiresAt:         model.Some("2026-12-01T10:00:00Z"),
			TrafficLimitLabel: model.Some("100 GB"),
		},
		ConnectedDevices: []model.Device{{}, {}},
	}

	got := RenderHighlights(s, ruContext())

	require.True(t, got.Visible)
	values := map[string]string{}
	for _, h := range got.Items {
		values[h.Key] = h.Value
	}
	assert.Equal(t, "1234.56 ₽", values["balance"])
	assert.Equal(t, "1 дек. 2026 г., 10:00", values["expires_at"])
	assert.Equal(t, "100 GB", values["traffic"])
	assert.Equal(t, "2", values["devices"], "개수 필드가 없으면 목록 길이를 사용합니다")
	assert.Equal(t, "Баланс", got.Items[0].Label)
}

func TestRenderHighlights_MissingValues(t *testing.T) {
	got := RenderHighlights(&model.AccountSnapshot{BalanceCurrency: "$"}, enContext())

	for _, h := range got.Items {
		assert.Equal(t, Placeholder, h.Value, h.Key)
	}
}

func TestRenderHighlights_UsesSnapshotCurrency(t *testing.T) {
	s := &model.AccountSnapshot{Balance: model.Some(int64(100)), BalanceCurrency: "$", ConnectedDevicesCount: model.Some(3)}

	got := RenderHighlights(s, ruContext())

	assert.Equal(t, "1.00 $", got.Items[0].Value)
	assert.Equal(t, "3", got.Items[3].Value)
}

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name      string
		user      model.User
		reason    model.Optional[string]
		indicator StatusIndicator
		title     string
		message   string
	}{
		{"활성", model.User{HasActiveSubscription: true}, model.None[string](), StatusActive, "Подписка активна", ""},
		{"비활성", model.User{}, model.None[string](), StatusInactive, "Подписка неактивна", ""},
		{"없음", model.User{Missing: true}, model.Some("Trial expired"), StatusMissing, "Подписка не найдена", "Trial expired"},
		{"상태 라벨 우선", model.User{HasActiveSubscription: true, StatusLabel: model.Some("Премиум")}, model.None[string](), StatusActive, "Премиум", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderStatus(&model.AccountSnapshot{User: tt.user, MissingReason: tt.reason}, ruContext())

			assert.True(t, got.Visible)
			assert.Equal(t, tt.indicator, got.Indicator)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, Placeholder, got.UserName)
		})
	}
}

func TestRenderActions(t *testing.T) {
	s := &model.AccountSnapshot{Links: []string{"https://sub.example/abc", "happ://add/xyz", "not a url"}}

	got := RenderActions(s, enContext())

	require.True(t, got.Visible)
	require.Len(t, got.Links, 3)
	assert.Equal(t, Link{URL: "https://sub.example/abc", Label: "Subscription link", Primary: true}, got.Links[0])
	assert.Equal(t, "Open in Happ", got.Links[1].Label)
	assert.Equal(t, "Link", got.Links[2].Label)
	assert.False(t, got.Links[2].Primary)
}

func guideConfig() *model.AppConfig {
	return &model.AppConfig{
		Platforms: map[platform.Tag][]model.PlatformGuide{
			platform.Android: {
				{
					Name: "Happ",
					InstallationStep: model.GuideStep{
						Description: i18n.Localized(i18n.Entry{Lang: "en", Value: "Install"}, i18n.Entry{Lang: "ru", Value: "Установите"}),
						Buttons: []model.GuideButton{
							{Label: i18n.Plain("Google Play"), Link: i18n.Plain("https://play.google.com/store/apps/details?id=com.happproxy")},
							{Label: i18n.Plain("broken"), Link: i18n.Localized()},
							{Label: i18n.Localized(), Link: i18n.Localized(i18n.Entry{Lang: "fa", Value: "https://apk.example/happ.apk"})},
						},
					},
					AddSubscriptionStep: model.GuideStep{
						Title:       i18n.Plain("Custom title"),
						Description: i18n.Plain("Tap the button"),
						Buttons:     []model.GuideButton{{Label: i18n.Plain("ignored"), Link: i18n.Plain("https://ignored")}},
					},
				},
				{Name: "Second"},
			},
			platform.IOS: {},
		},
	}
}

func TestRenderGuide(t *testing.T) {
	got := RenderGuide(guideConfig(), platform.Android, ruContext())

	require.True(t, got.Visible)
	assert.Equal(t, "Happ", got.AppName, "첫 번째 가이드를 사용합니다")
	require.Len(t, got.Steps, 3)

	install := got.Steps[0]
	assert.Equal(t, StepInstall, install.Kind)
	assert.Equal(t, "Установите приложение", install.Title)
	assert.Equal(t, "Установите", install.Description)
	assert.Equal(t, []GuideButton{
		{Label: "Google Play", URL: "https://play.google.com/store/apps/details?id=com.happproxy"},
		{Label: "https://apk.example/happ.apk", URL: "https://apk.example/happ.apk"},
	}, install.Buttons)

	add := got.Steps[1]
	assert.Equal(t, "Custom title", add.Title)
	assert.Equal(t, "Tap the button", add.Description)
	assert.Empty(t, add.Buttons, "설치 단계 외에는 버튼을 표시하지 않습니다")

	connect := got.Steps[2]
	assert.Equal(t, StepConnect, connect.Kind)
	assert.Equal(t, Placeholder, connect.Description)
}

func TestRenderGuide_HiddenForUnlistedOrEmptyPlatform(t *testing.T) {
	c := ruContext()

	assert.False(t, RenderGuide(guideConfig(), platform.IOS, c).Visible)
	assert.False(t, RenderGuide(guideConfig(), platform.Generic, c).Visible)
}

func TestRender_Idempotent(t *testing.T) {
	c := ruContext()
	s := &model.AccountSnapshot{Transactions: transactions(7), Links: []string{"https://a"}}

	assert.Equal(t, RenderTransactions(s, c), RenderTransactions(s, c))
	assert.Equal(t, RenderActions(s, c), RenderActions(s, c))
	assert.Equal(t, RenderGuide(guideConfig(), platform.Android, c), RenderGuide(guideConfig(), platform.Android, c))
}

func TestUnauthenticated(t *testing.T) {
	c := enContext()
	p := NewPage(ThemeLight, c, platform.Mac)
	p.Branding = Branding{Visible: true, Name: "VPN"}
	p.Highlights = Highlights{Visible: true}

	got := Unauthenticated(p, c)

	assert.Equal(t, ThemeLight, got.Theme)
	assert.Equal(t, "en", got.Language)
	assert.False(t, got.Authenticated)
	assert.True(t, got.Branding.Visible)
	assert.Equal(t, StatusUnauthenticated, got.Status.Indicator)
	assert.Equal(t, "Open the mini app from Telegram to see your subscription.", got.Status.Message)
	assert.False(t, got.Highlights.Visible)
	assert.False(t, got.PaymentPanel.Visible)
}

func TestFailedStatus(t *testing.T) {
	got := FailedStatus(ruContext())

	assert.True(t, got.Visible)
	assert.Equal(t, StatusFailed, got.Indicator)
	assert.Equal(t, "Не удалось загрузить данные. Попробуйте открыть приложение заново.", got.Message)
}
