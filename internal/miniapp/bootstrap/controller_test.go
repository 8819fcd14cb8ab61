package bootstrap_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/bootstrap"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/payment"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/remote"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pathConfig   = "/app-config.json"
	pathAccount  = "/miniapp/subscription"
	pathMethods  = "/miniapp/payments/methods"
	pathCreate   = "/miniapp/payments/create"
	iosUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
)

// ruToken language_code가 "ru"인 사용자 정보를 담은 초기화 토큰입니다.
var ruToken = "query_id=AAH&user=" + url.QueryEscape(`{"id":1,"first_name":"Ivan","language_code":"ru"}`) + "&hash=abc"

const configDoc = `{
  "config": {"branding": {"name": "Bedolaga VPN", "supportUrl": "https://t.me/support"}},
  "platforms": {
    "ios": [{
      "id": "happ", "name": "Happ",
      "installationStep": {"description": {"en": "Install", "ru": "Установите"}, "buttons": [{"buttonLink": "https://apps.apple.com/app/happ", "buttonText": {"en": "App Store"}}]},
      "addSubscriptionStep": {"description": {"en": "Add", "ru": "Добавьте"}},
      "connectAndUseStep": {"description": {"en": "Connect", "ru": "Подключитесь"}}
    }]
  }
}`

const methodsDoc = `{"methods":[
  {"id":"card","name":"Card","requires_amount":true,"min_amount_kopeks":10000,"max_amount_kopeks":5000000},
  {"id":"stars","name":"Stars","options":[{"id":"m1","title":"1 month"}]},
  {"id":"off","name":"Off","is_available":false}
]}`

func accountDoc(transactions int) string {
	var txs []string
	for i := 1; i <= transactions; i++ {
		txs = append(txs, fmt.Sprintf(`{"description":"tx%d","type":"deposit","amount_kopeks":%d,"is_completed":true}`, i, i*1000))
	}
	return `{
  "user": {"display_name": "Ivan", "has_active_subscription": true, "subscription_status": "active"},
  "balance_kopeks": 123456,
  "subscription_url": "https://sub.example/abc",
  "links": ["https://sub.example/abc"],
  "connected_devices": [],
  "transactions": [` + strings.Join(txs, ",") + `]
}`
}

type fakeRemote struct {
	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

func (f *fakeRemote) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeRemote) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if status >= 200 && status < 300 {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func defaultHandlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		pathConfig:  respond(http.StatusOK, configDoc),
		pathAccount: respond(http.StatusOK, accountDoc(6)),
		pathMethods: respond(http.StatusOK, methodsDoc),
		pathCreate:  respond(http.StatusOK, `{"payment_url":"https://pay.example/1"}`),
	}
}

func newController(t *testing.T, handlers map[string]http.HandlerFunc) (*bootstrap.Controller, *fakeRemote) {
	t.Helper()

	f := &fakeRemote{calls: map[string]int{}, handlers: handlers}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		h := f.handlers[r.URL.Path]
		f.mu.Unlock()

		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	client := remote.NewClient(remote.Config{
		BaseURL:            srv.URL,
		ConfigPath:         pathConfig,
		AccountPath:        pathAccount,
		PaymentMethodsPath: pathMethods,
		PaymentCreatePath:  pathCreate,
	})

	return bootstrap.New(client, payment.NewRegistry(client), bootstrap.Defaults{CurrencySymbol: "₽"}), f
}

func withToken(token string) initdata.Source {
	return initdata.Source{Params: url.Values{initdata.QueryInitData: {token}}}
}

func assertNoDataSections(t *testing.T, p view.Page) {
	t.Helper()
	assert.False(t, p.Highlights.Visible, "highlights")
	assert.False(t, p.Actions.Visible, "actions")
	assert.False(t, p.Devices.Visible, "devices")
	assert.False(t, p.Transactions.Visible, "transactions")
	assert.False(t, p.Guide.Visible, "guide")
	assert.False(t, p.PaymentPanel.Visible, "payment panel")
}

func TestRun_NoToken_RendersUnauthenticatedAfterConfigOnly(t *testing.T) {
	c, f := newController(t, defaultHandlers())

	page := c.Run(context.Background(), bootstrap.Request{UserAgent: iosUserAgent})

	assert.False(t, page.Authenticated)
	assert.Equal(t, view.StatusUnauthenticated, page.Status.Indicator)
	assert.NotEmpty(t, page.Status.Message)
	assertNoDataSections(t, page)
	assert.True(t, page.Branding.Visible)

	assert.Equal(t, 1, f.Calls(pathConfig))
	assert.Equal(t, 1, f.TotalCalls(), "설정 문서 외의 호출이 없어야 합니다")
}

func TestRun_RendersAccount(t *testing.T) {
	c, f := newController(t, defaultHandlers())

	page := c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken), UserAgent: iosUserAgent})

	require.True(t, page.Authenticated)
	assert.Equal(t, "ru", page.Language)
	assert.Equal(t, platform.IOS, page.Platform)
	assert.Equal(t, view.ThemeDark, page.Theme)
	assert.Equal(t, view.StatusActive, page.Status.Indicator)
	assert.Equal(t, "Ivan", page.Status.UserName)

	require.True(t, page.Highlights.Visible)
	assert.Equal(t, "1234.56 ₽", page.Highlights.Items[0].Value)

	assert.False(t, page.Devices.Visible)

	require.True(t, page.Transactions.Visible)
	require.Len(t, page.Transactions.Items, 5)
	for i, tx := range page.Transactions.Items {
		assert.Equal(t, fmt.Sprintf("tx%d", i+1), tx.Description)
	}

	require.True(t, page.Actions.Visible)
	assert.Len(t, page.Actions.Links, 1, "중복 링크는 하나로 합쳐집니다")

	require.True(t, page.Guide.Visible)
	assert.Equal(t, "Установите", page.Guide.Steps[0].Description)

	require.True(t, page.PaymentPanel.Visible)
	assert.Len(t, page.PaymentPanel.Methods, 2)

	for _, p := range []string{pathConfig, pathAccount, pathMethods} {
		assert.Equal(t, 1, f.Calls(p), p)
	}
	assert.Zero(t, f.Calls(pathCreate))
}

func TestRun_PaymentMethodsFailureHidesPanelOnly(t *testing.T) {
	h := defaultHandlers()
	h[pathMethods] = respond(http.StatusInternalServerError, "boom")
	c, _ := newController(t, h)

	page := c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken)})

	assert.False(t, page.PaymentPanel.Visible)
	assert.Equal(t, view.StatusActive, page.Status.Indicator, "상태 영역에 오류가 표시되지 않아야 합니다")
	assert.True(t, page.Highlights.Visible)
	assert.True(t, page.Transactions.Visible)
}

func TestRun_ConfigFailureIsFatal(t *testing.T) {
	h := defaultHandlers()
	h[pathConfig] = respond(http.StatusBadGateway, "bad gateway")
	c, f := newController(t, h)

	page := c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken)})

	assert.Equal(t, view.StatusFailed, page.Status.Indicator)
	assert.Equal(t, "Не удалось загрузить данные. Попробуйте открыть приложение заново.", page.Status.Message)
	assertNoDataSections(t, page)
	assert.Zero(t, f.Calls(pathAccount))
}

func TestRun_AccountFailureKeepsRenderedSections(t *testing.T) {
	h := defaultHandlers()
	h[pathAccount] = respond(http.StatusUnauthorized, "Invalid init data")
	c, f := newController(t, h)

	page := c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken)})

	assert.True(t, page.Authenticated)
	assert.Equal(t, view.StatusFailed, page.Status.Indicator)
	assert.True(t, page.Branding.Visible, "이미 그려진 섹션은 유지됩니다")
	assertNoDataSections(t, page)
	assert.Zero(t, f.Calls(pathMethods))
}

func TestRun_ThemeAndLanguage(t *testing.T) {
	c, _ := newController(t, defaultHandlers())

	page := c.Run(context.Background(), bootstrap.Request{ColorScheme: "light", AcceptLanguage: "de-DE,de;q=0.9"})

	assert.Equal(t, view.ThemeLight, page.Theme)
	assert.Equal(t, "de", page.Language)
	assert.Equal(t, platform.Generic, page.Platform)
}

func TestRun_HostTokenPreferred(t *testing.T) {
	c, _ := newController(t, defaultHandlers())

	src := initdata.Source{Host: ruToken, Params: url.Values{initdata.QueryInitData: {"other"}}}
	page := c.Run(context.Background(), bootstrap.Request{Init: src})

	assert.True(t, page.Authenticated)
	assert.Equal(t, "ru", page.Language)
}

func TestPay_UsesWorkflowFromBootstrap(t *testing.T) {
	c, f := newController(t, defaultHandlers())
	c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken)})

	out, err := c.Pay(context.Background(), bootstrap.PaymentCommand{
		Init:     withToken(ruToken),
		MethodID: "card",
		Input:    payment.Input{Amount: model.Some(decimal.NewFromInt(150))},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/1", out.PaymentURL)
	assert.Equal(t, "Оплатить ещё раз", out.Button.Label)
	assert.Empty(t, out.Message)
	assert.Equal(t, 1, f.Calls(pathMethods), "이미 만들어진 워크플로를 사용합니다")
	assert.Equal(t, 1, f.Calls(pathCreate))

	page := c.Run(context.Background(), bootstrap.Request{Init: withToken(ruToken)})
	assert.Equal(t, model.PaymentSucceeded, page.PaymentPanel.Methods[0].Button.State)
	assert.Equal(t, "https://pay.example/1", page.PaymentPanel.Methods[0].PaymentURL)
}

func TestPay_LoadsMethodsWhenNoWorkflow(t *testing.T) {
	c, f := newController(t, defaultHandlers())

	out, err := c.Pay(context.Background(), bootstrap.PaymentCommand{Init: withToken(ruToken), MethodID: "stars"})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/1", out.PaymentURL)
	assert.Equal(t, 1, f.Calls(pathMethods))
}

func TestPay_Errors(t *testing.T) {
	t.Run("토큰 없음", func(t *testing.T) {
		c, f := newController(t, defaultHandlers())

		_, err := c.Pay(context.Background(), bootstrap.PaymentCommand{MethodID: "card"})

		assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
		assert.Zero(t, f.TotalCalls())
	})

	t.Run("사용할 수 없는 결제 수단", func(t *testing.T) {
		c, _ := newController(t, defaultHandlers())

		out, err := c.Pay(context.Background(), bootstrap.PaymentCommand{Init: withToken(ruToken), MethodID: "off"})

		assert.True(t, apperrors.Is(err, apperrors.NotFound))
		assert.Equal(t, "Этот способ оплаты недоступен", out.Message)
		assert.Equal(t, "Повторить", out.Button.Label)
	})

	t.Run("원격 실패 본문이 메시지에 포함됨", func(t *testing.T) {
		h := defaultHandlers()
		h[pathCreate] = respond(http.StatusBadGateway, "Payment provider is down")
		c, _ := newController(t, h)

		out, err := c.Pay(context.Background(), bootstrap.PaymentCommand{Init: withToken(ruToken), MethodID: "card"})

		require.Error(t, err)
		assert.Empty(t, out.PaymentURL)
		assert.Equal(t, "Не удалось создать платёж: Payment provider is down", out.Message)
		assert.Equal(t, "Повторить", out.Button.Label)
	})

	t.Run("최소 금액 미만", func(t *testing.T) {
		c, f := newController(t, defaultHandlers())

		out, err := c.Pay(context.Background(), bootstrap.PaymentCommand{
			Init:     withToken(ruToken),
			MethodID: "card",
			Input:    payment.Input{Amount: model.Some(decimal.NewFromInt(10))},
		})

		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Equal(t, "Минимальная сумма: 100.00 ₽", out.Message)
		assert.Zero(t, f.Calls(pathCreate))
	})
}
