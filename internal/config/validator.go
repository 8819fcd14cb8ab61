package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/darkkaiser/miniapp-server/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 구조체 필드명 대신 설정 파일의 키 이름이 나오도록 합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("telegram_bot_token", validateTelegramBotToken); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	if err := v.RegisterValidation("cron_spec", validateCronSpec); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cron_spec' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCORSOrigin "*" 또는 경로가 없는 Scheme://Host[:Port] 형식만 허용합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	origin := fl.Field().String()
	if origin == "*" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != "" && (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == "" && !strings.HasSuffix(origin, "/")
}

func validateTelegramBotToken(fl validator.FieldLevel) bool {
	return telegramBotTokenRegex.MatchString(fl.Field().String())
}

func validateCronSpec(fl validator.FieldLevel) bool {
	return cronx.Validate(fl.Field().String()) == nil
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c); err != nil {
		return err
	}

	origins := c.Server.CORS.AllowOrigins
	for _, o := range origins {
		if o == "*" && len(origins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}

// checkStruct 구조체를 검증하고, 첫 번째 위반 사항을 사용자 친화적인 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	fe := validationErrors[0]
	key := strings.TrimPrefix(fe.Namespace(), "AppConfig.")

	switch fe.StructField() {
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "웹 서비스 포트(server.listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TLSCertFile", "TLSKeyFile":
		if fe.Tag() == "required_if" {
			return apperrors.Newf(apperrors.InvalidInput, "TLS 서버 활성화 시 %s는 필수입니다", key)
		}
		return apperrors.Newf(apperrors.InvalidInput, "지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", key, fe.Value())
	case "IdleTTL":
		return apperrors.Newf(apperrors.InvalidInput, "결제 워크플로 보관 시간(payment.idle_ttl)은 1초 이상이어야 합니다: '%v'", fe.Value())
	case "BaseURL":
		return apperrors.Newf(apperrors.InvalidInput, "원격 서비스 주소(remote.base_url)가 올바르지 않습니다: '%v'", fe.Value())
	}

	switch fe.Tag() {
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value())
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 BotToken 형식이 올바르지 않습니다 (올바른 형식: 123456:ABC-DEF...)")
	case "cron_spec":
		return apperrors.Newf(apperrors.InvalidInput, "%s의 Cron 표현식이 올바르지 않습니다: '%v' (형식: 초 분 시 일 월 요일, 예: 0 */5 * * * *)", key, fe.Value())
	case "startswith":
		return apperrors.Newf(apperrors.InvalidInput, "%s는 '/'로 시작하는 경로여야 합니다: '%v'", key, fe.Value())
	case "bcp47_language_tag":
		return apperrors.Newf(apperrors.InvalidInput, "%s는 BCP 47 언어 태그여야 합니다: '%v'", key, fe.Value())
	case "oneof":
		return apperrors.Newf(apperrors.InvalidInput, "%s는 다음 값 중 하나여야 합니다: %s", key, fe.Param())
	}

	return apperrors.Newf(apperrors.InvalidInput, "설정이 올바르지 않습니다: %s (조건: %s)", key, fe.Tag())
}
