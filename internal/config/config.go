// Package config 애플리케이션 설정을 기본값, JSON 파일, 환경 변수 순서로 병합하여 로드합니다.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 Server 헤더 등에 사용됩니다.
	AppName = "miniapp-server"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 환경 변수 접두사입니다. 계층은 이중 언더스코어로 구분합니다.
	// 예: MINIAPP_REMOTE__BASE_URL -> remote.base_url
	EnvPrefix = "MINIAPP_"
)

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 설정 파일을 읽어 AppConfig를 생성합니다.
//
// 우선순위 (낮음 -> 높음):
//  1. Default() 기본값
//  2. JSON 설정 파일 (파일이 없으면 건너뜀)
//  3. .env 파일과 MINIAPP_ 환경 변수
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	if filename != "" {
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
			}
		}
	}

	// .env 파일이 없는 것은 정상적인 경우이므로 에러를 무시합니다.
	_ = godotenv.Load()

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}

	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// envKeyMapper MINIAPP_SERVER__LISTEN_PORT -> server.listen_port
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Default 설정 파일 없이도 로컬에서 기동할 수 있는 기본값을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Debug: false,
		Server: ServerConfig{
			ListenPort: 8080,
			CORS: CORSConfig{
				AllowOrigins: []string{"https://web.telegram.org"},
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		Remote: RemoteConfig{
			BaseURL:            "http://localhost:8081",
			ConfigPath:         "/app-config.json",
			AccountPath:        "/miniapp/subscription",
			PaymentMethodsPath: "/miniapp/payments/methods",
			PaymentCreatePath:  "/miniapp/payments/create",
			Timeout:            0,
			MaxBodySize:        2 * 1024 * 1024,
		},
		UI: UIConfig{
			DefaultLanguage: "en",
			DefaultTheme:    "dark",
			CurrencySymbol:  "₽",
		},
		Payment: PaymentConfig{
			IdleTTL:       30 * time.Minute,
			SweepSchedule: "0 */5 * * * *",
		},
		Launcher: LauncherConfig{
			Enabled:     false,
			WelcomeText: "Откройте личный кабинет, чтобы управлять подпиской и балансом.",
			ButtonText:  "Открыть кабинет",
		},
	}
}

// VerifyRecommendations 에러는 아니지만 운영상 주의가 필요한 설정에 대한 경고를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.Server.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.Server.ListenPort))
	}
	if c.Remote.Timeout == 0 {
		warnings = append(warnings, "원격 서비스 호출 타임아웃(remote.timeout)이 설정되지 않았습니다. 응답이 없는 호출은 요청이 끝날 때까지 대기합니다")
	} else if c.Remote.Timeout > time.Minute {
		warnings = append(warnings, fmt.Sprintf("원격 서비스 호출 타임아웃(remote.timeout)이 너무 깁니다: %s", c.Remote.Timeout))
	}
	if c.Launcher.Enabled && c.Server.PublicURL == "" {
		warnings = append(warnings, "런처 봇이 활성화되었지만 공개 URL(server.public_url)이 비어 있어 미니앱 버튼을 만들 수 없습니다")
	}

	return warnings
}
