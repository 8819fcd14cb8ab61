// Package bootstrap 화면 한 장을 만드는 부트스트랩 순서를 제어합니다.
//
// 순서: 초기화 컨텍스트/플랫폼 확인 -> 테마 결정 -> 설정 문서 로드 -> 토큰이 없으면 미인증 화면으로 종료
// -> 계정 스냅샷 로드 및 계정 섹션 렌더링 -> 결제 수단 로드(실패 허용) 및 결제 패널 렌더링.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/payment"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/darkkaiser/miniapp-server/pkg/strutil"
)

const component = "miniapp.bootstrap"

type ConfigLoader interface {
	LoadConfig(ctx context.Context) (*model.AppConfig, error)
}

type AccountLoader interface {
	LoadAccount(ctx context.Context, token string) (*model.AccountSnapshot, error)
}

type PaymentMethodLoader interface {
	LoadPaymentMethods(ctx context.Context, token string) ([]model.PaymentMethod, error)
}

// Loader 부트스트랩에 필요한 세 가지 로더입니다. *remote.Client가 이 인터페이스를 만족합니다.
type Loader interface {
	ConfigLoader
	AccountLoader
	PaymentMethodLoader
}

// Defaults 요청에 값이 없을 때 사용할 표시 설정입니다.
type Defaults struct {
	Theme          view.Theme
	Language       string
	CurrencySymbol string
}

// Request 화면 한 장을 만드는 데 필요한 요청 정보입니다.
type Request struct {
	Init           initdata.Source
	UserAgent      string
	AcceptLanguage string
	ColorScheme    string
}

type Controller struct {
	loader   Loader
	payments *payment.Registry
	defaults Defaults
}

func New(loader Loader, payments *payment.Registry, defaults Defaults) *Controller {
	if defaults.Theme == "" {
		defaults.Theme = view.ThemeDark
	}
	return &Controller{
		loader:   loader,
		payments: payments,
		defaults: defaults,
	}
}

// newSession 요청으로부터 Session을 만듭니다. 네트워크 호출은 하지 않습니다.
func (c *Controller) newSession(src initdata.Source, userAgent, acceptLanguage, colorScheme string) *Session {
	init := initdata.Resolve(src)

	hostLang := initdata.HostLanguage(init.Token)
	if hostLang == "" && acceptLanguage == "" {
		hostLang = c.defaults.Language
	}

	return &Session{
		Init:     init,
		Platform: platform.Detect(userAgent),
		Theme:    view.ParseTheme(colorScheme, c.defaults.Theme),
		View: view.Context{
			Resolver:       i18n.NewResolver(hostLang, acceptLanguage),
			CurrencySymbol: c.defaults.CurrencySymbol,
		},
	}
}

// Run 한 번의 부트스트랩을 수행하고 화면 전체의 뷰 모델을 반환합니다. 실패는 화면 상태로 표현되며 에러를 반환하지 않습니다.
func (c *Controller) Run(ctx context.Context, req Request) view.Page {
	sess := c.newSession(req.Init, req.UserAgent, req.AcceptLanguage, req.ColorScheme)
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"init_source": sess.Init.Source,
		"token":       strutil.Mask(sess.Init.Token),
		"platform":    sess.Platform,
		"language":    sess.View.Resolver.Language(),
	})

	page := view.NewPage(sess.Theme, sess.View, sess.Platform)

	cfg, err := c.loader.LoadConfig(ctx)
	if err != nil {
		logger.WithError(err).Error("설정 문서 로드 실패")
		page.Status = view.FailedStatus(sess.View)
		return page
	}
	sess = sess.withConfig(cfg)
	page.Branding = view.RenderBranding(cfg)

	if !sess.Init.Present {
		logger.Info("초기화 토큰이 없어 미인증 화면을 표시합니다")
		return view.Unauthenticated(page, sess.View)
	}
	page.Authenticated = true

	if err := c.renderAuthenticated(ctx, sess, &page, logger); err != nil {
		logger.WithError(err).Error("계정 화면 구성 실패")
		page.Status = view.FailedStatus(sess.View)
	}

	return page
}

// renderAuthenticated 계정 섹션과 결제 패널을 채웁니다. 이미 채워진 섹션은 실패하더라도 그대로 둡니다.
func (c *Controller) renderAuthenticated(ctx context.Context, sess *Session, page *view.Page, logger *applog.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.New(apperrors.Internal, fmt.Sprintf("화면 구성 중 panic 발생: %v", r))
		}
	}()

	snapshot, err := c.loader.LoadAccount(ctx, sess.Init.Token)
	if err != nil {
		return err
	}

	page.Status = view.RenderStatus(snapshot, sess.View)
	page.Highlights = view.RenderHighlights(snapshot, sess.View)
	page.Actions = view.RenderActions(snapshot, sess.View)
	page.Devices = view.RenderDevices(snapshot)
	page.Transactions = view.RenderTransactions(snapshot, sess.View)
	page.Guide = view.RenderGuide(sess.Config, sess.Platform, sess.View)

	methods, err := c.loader.LoadPaymentMethods(ctx, sess.Init.Token)
	if err != nil {
		logger.WithError(err).Warn("결제 수단 로드 실패, 결제 패널을 숨깁니다")
		return nil
	}

	var statuses view.PaymentStatusFunc
	if c.payments != nil {
		for _, m := range methods {
			if m.Available {
				c.payments.Workflow(sess.Init.Token, m)
			}
		}
		statuses = c.payments.StatusFunc(sess.Init.Token)
	}
	page.PaymentPanel = view.RenderPaymentPanel(methods, statuses, sess.View)

	logger.WithField("methods", len(methods)).Debug("부트스트랩 완료")

	return nil
}
