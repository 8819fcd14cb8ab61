package launcher

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

// mockBot 테스트용 봇 API 클라이언트입니다.
type mockBot struct {
	mock.Mock
	updatesC chan tgbotapi.Update
}

func newMockBot() *mockBot {
	return &mockBot{updatesC: make(chan tgbotapi.Update, 10)}
}

func (m *mockBot) GetSelf() tgbotapi.User {
	args := m.Called()
	return args.Get(0).(tgbotapi.User)
}

func (m *mockBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	m.Called(config)
	return m.updatesC
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func (m *mockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return args.Get(0).(*tgbotapi.APIResponse), args.Error(1)
}

func (m *mockBot) StopReceivingUpdates() {
	m.Called()
}
