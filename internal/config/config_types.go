package config

import (
	"time"
)

// AppConfig 애플리케이션의 최상위 설정입니다.
type AppConfig struct {
	Debug    bool           `json:"debug"`
	Server   ServerConfig   `json:"server"`
	Remote   RemoteConfig   `json:"remote"`
	UI       UIConfig       `json:"ui"`
	Payment  PaymentConfig  `json:"payment"`
	Launcher LauncherConfig `json:"launcher"`
}

// ServerConfig 미니앱 HTTP 서버 설정입니다.
type ServerConfig struct {
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`

	// PublicURL 호스트 채팅 클라이언트가 웹뷰로 여는 미니앱의 외부 주소입니다. (런처 봇 버튼에 사용)
	PublicURL string `json:"public_url" validate:"omitempty,https_url"`

	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

// RateLimitConfig IP 단위 요청 제한 설정입니다.
type RateLimitConfig struct {
	RequestsPerSecond int `json:"requests_per_second" validate:"min=1"`
	Burst             int `json:"burst" validate:"min=1"`
}

// RemoteConfig 계정/결제 원격 서비스 설정입니다.
type RemoteConfig struct {
	BaseURL            string `json:"base_url" validate:"required,http_url"`
	ConfigPath         string `json:"config_path" validate:"required,startswith=/"`
	AccountPath        string `json:"account_path" validate:"required,startswith=/"`
	PaymentMethodsPath string `json:"payment_methods_path" validate:"required,startswith=/"`
	PaymentCreatePath  string `json:"payment_create_path" validate:"required,startswith=/"`

	// Timeout 원격 호출 하나의 최대 대기 시간입니다. 0이면 제한하지 않습니다.
	Timeout time.Duration `json:"timeout" validate:"min=0"`

	MaxBodySize int64 `json:"max_body_size" validate:"min=1"`
}

type UIConfig struct {
	DefaultLanguage string `json:"default_language" validate:"required,bcp47_language_tag"`
	DefaultTheme    string `json:"default_theme" validate:"oneof=dark light"`
	CurrencySymbol  string `json:"currency_symbol" validate:"required"`
}

// PaymentConfig 메모리에 보관하는 결제 워크플로의 정리 설정입니다.
type PaymentConfig struct {
	// IdleTTL 마지막 사용 이후 이 시간이 지난 워크플로는 정리 대상이 됩니다.
	IdleTTL time.Duration `json:"idle_ttl" validate:"min=1s"`

	// SweepSchedule 정리 작업의 실행 주기입니다. (초 단위 6필드 Cron 표현식 또는 @every 설명자)
	SweepSchedule string `json:"sweep_schedule" validate:"required,cron_spec"`
}

// LauncherConfig /start 명령에 미니앱 열기 버튼으로 응답하는 텔레그램 봇 설정입니다.
type LauncherConfig struct {
	Enabled     bool   `json:"enabled"`
	BotToken    string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	WelcomeText string `json:"welcome_text" validate:"required_if=Enabled true"`
	ButtonText  string `json:"button_text" validate:"required_if=Enabled true"`
}
