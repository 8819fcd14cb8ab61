// Package launcher 미니앱을 여는 버튼으로 응답하는 텔레그램 런처 봇을 실행합니다.
//
// /start 또는 /app 명령을 받으면 환영 문구와 함께 미니앱 주소(server.public_url)로 연결되는
// 인라인 버튼을 보냅니다. 그 외의 메시지에는 응답하지 않습니다.
package launcher

import (
	"context"
	"sync"

	"github.com/darkkaiser/miniapp-server/internal/config"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/darkkaiser/miniapp-server/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "launcher.telegram"

const (
	commandStart = "start"
	commandApp   = "app"

	// pollTimeout Long Polling 대기 시간(초)
	pollTimeout = 60

	// sendRateLimit, sendRateBurst 봇 API 전체 전송 속도 제한 (초당 30건)
	sendRateLimit = 30
	sendRateBurst = 30
)

// clientFactory 테스트에서 교체합니다.
type clientFactory func(botToken string, debug bool) (client, error)

// Service 런처 봇의 생명주기를 관리합니다. 설정에서 비활성화되어 있으면 아무 것도 하지 않습니다.
type Service struct {
	cfg       config.LauncherConfig
	publicURL string
	debug     bool

	newClient clientFactory
	limiter   *rate.Limiter

	running   bool
	runningMu sync.Mutex
}

func NewService(appConfig *config.AppConfig) *Service {
	return newService(appConfig, newClient)
}

func newService(appConfig *config.AppConfig, factory clientFactory) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}

	return &Service{
		cfg:       appConfig.Launcher,
		publicURL: appConfig.Server.PublicURL,
		debug:     appConfig.Debug,

		newClient: factory,
		limiter:   rate.NewLimiter(rate.Limit(sendRateLimit), sendRateBurst),
	}
}

// Start 런처 봇을 시작합니다.
//
// 비활성화되어 있거나 봇 클라이언트를 만들지 못하면 serviceStopWG.Done()을 호출하고 반환합니다.
// 그 외에는 업데이트 수신 루프를 고루틴에서 실행하고, 루프가 끝나면 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	logger := applog.WithComponent(component)

	if !s.cfg.Enabled {
		defer serviceStopWG.Done()
		logger.Info("런처 봇이 비활성화되어 있어 시작하지 않습니다")
		return nil
	}
	if s.running {
		defer serviceStopWG.Done()
		logger.Warn("런처 봇이 이미 시작됨!!!")
		return nil
	}
	if s.publicURL == "" {
		defer serviceStopWG.Done()
		return apperrors.New(apperrors.InvalidInput, "런처 봇을 사용하려면 server.public_url을 설정해야 합니다")
	}

	bot, err := s.newClient(s.cfg.BotToken, s.debug)
	if err != nil {
		defer serviceStopWG.Done()
		return err
	}

	self := bot.GetSelf()
	logger.WithFields(applog.Fields{
		"bot_username": self.UserName,
		"bot_token":    strutil.Mask(s.cfg.BotToken),
		"public_url":   s.publicURL,
	}).Info("런처 봇 시작됨")

	s.registerCommands(bot)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updateConfig.AllowedUpdates = []string{"message"}

	s.running = true

	go s.run(serviceStopCtx, serviceStopWG, bot, bot.GetUpdatesChan(updateConfig))

	return nil
}

// registerCommands 채팅 입력창의 명령어 메뉴에 /app을 등록합니다. 실패해도 봇은 동작합니다.
func (s *Service) registerCommands(bot client) {
	cmd := tgbotapi.NewSetMyCommands(tgbotapi.BotCommand{
		Command:     commandApp,
		Description: s.cfg.ButtonText,
	})
	if _, err := bot.Request(cmd); err != nil {
		applog.WithComponent(component).WithError(err).Warn("봇 명령어 메뉴 등록 실패")
	}
}

func (s *Service) run(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, bot client, updateC tgbotapi.UpdatesChannel) {
	defer serviceStopWG.Done()
	defer s.cleanup(bot)

	for {
		select {
		case update, ok := <-updateC:
			if !ok {
				applog.WithComponent(component).Error("Long Polling 채널이 닫혀 런처 봇을 종료합니다")
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			switch update.Message.Command() {
			case commandStart, commandApp:
				s.reply(serviceStopCtx, bot, update.Message)
			}

		case <-serviceStopCtx.Done():
			return
		}
	}
}

// reply 미니앱 열기 버튼이 달린 메시지를 보냅니다.
func (s *Service) reply(ctx context.Context, bot client, message *tgbotapi.Message) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, s.cfg.WelcomeText)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(s.cfg.ButtonText, s.publicURL),
		),
	)

	if _, err := bot.Send(msg); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": message.Chat.ID,
			"error":   err,
		}).Warn("런처 메시지 전송 실패")
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id": message.Chat.ID,
		"command": message.Command(),
	}).Debug("런처 메시지 전송 완료")
}

func (s *Service) cleanup(bot client) {
	bot.StopReceivingUpdates()

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("런처 봇 중지됨")
}
