package launcher

import (
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// httpClientTimeout 봇 API 호출 하나의 최대 대기 시간입니다. Long Polling 대기 시간보다 길어야 합니다.
const httpClientTimeout = 90 * time.Second

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	GetSelf() tgbotapi.User

	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)

	StopReceivingUpdates()
}

// tgClient tgbotapi.BotAPI를 client 인터페이스에 맞춥니다.
type tgClient struct {
	*tgbotapi.BotAPI
}

func (c *tgClient) GetSelf() tgbotapi.User {
	return c.Self
}

// newClient 봇 토큰으로 봇 API 클라이언트를 만듭니다. 토큰이 잘못되었으면 getMe 호출에서 실패합니다.
func newClient(botToken string, debug bool) (client, error) {
	botAPI, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, &http.Client{
		Timeout: httpClientTimeout,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	return &tgClient{BotAPI: botAPI}, nil
}
