// Package model 미니앱이 원격 서비스로부터 받아 화면에 그리는 데이터 타입을 정의합니다.
//
// 로더가 반환한 값은 렌더러에 참조로 전달된 이후 변경되지 않습니다.
package model

import (
	"github.com/darkkaiser/miniapp-server/internal/miniapp/i18n"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/shopspring/decimal"
)

// InitSource 세션 토큰을 얻은 위치입니다.
type InitSource string

const (
	InitSourceHost  InitSource = "host"
	InitSourceQuery InitSource = "query"
	InitSourceNone  InitSource = "none"
)

// InitContext 호스트가 전달한 불투명 세션 토큰입니다. 요청마다 한 번 만들어지고 변경되지 않습니다.
type InitContext struct {
	Token   string
	Present bool
	Source  InitSource
}

// AppConfig 브랜딩과 플랫폼별 설치 가이드를 담은 정적 설정 문서입니다.
type AppConfig struct {
	Branding  Branding
	Platforms map[platform.Tag][]PlatformGuide
}

type Branding struct {
	Name        string
	Description string
	SupportURL  string
	LogoURL     string
}

// PlatformGuide 하나의 클라이언트 앱에 대한 설치/구독 추가/연결 안내입니다.
type PlatformGuide struct {
	ID                  string
	Name                string
	Featured            bool
	URLScheme           string
	InstallationStep    GuideStep
	AddSubscriptionStep GuideStep
	ConnectAndUseStep   GuideStep
}

type GuideStep struct {
	Title       i18n.Text
	Description i18n.Text
	Buttons     []GuideButton
}

type GuideButton struct {
	Label i18n.Text
	Link  i18n.Text
}

// AccountSnapshot 계정/구독 상태의 스냅샷입니다. 로드할 때마다 새로 받아 이전 값을 완전히 대체합니다.
type AccountSnapshot struct {
	User            User
	Balance         Optional[int64] // 최소 화폐 단위(코펙)
	BalanceCurrency string
	MissingReason   Optional[string]

	// Links 구독 링크 목록입니다. 값 기준으로 중복이 제거되며 처음 등장한 순서를 유지합니다.
	Links []string

	ConnectedDevices      []Device
	Transactions          []Transaction // 최신순
	ConnectedDevicesCount Optional[int]
}

type User struct {
	DisplayName           string
	SubscriptionStatus    string
	HasActiveSubscription bool
	Missing               bool
	ExpiresAt             Optional[string]
	TrafficLimitLabel     Optional[string]
	StatusLabel           Optional[string]
}

type Device struct {
	Platform    string
	DeviceModel string
	AppVersion  string
}

type Transaction struct {
	Description string
	Type        string
	CreatedAt   Optional[string]
	Amount      Optional[int64]
	IsCompleted bool
}

// PaymentMethod 결제 수단입니다. 금액 관련 값은 모두 최소 화폐 단위입니다.
type PaymentMethod struct {
	ID             string
	Name           string
	Icon           string
	RequiresAmount bool
	MinAmount      Optional[int64]
	MaxAmount      Optional[int64]
	AmountStep     Optional[int64]
	Currency       string
	Options        []PaymentOption
	Available      bool
}

// DefaultPaymentAmount 최소 금액이 없는 결제 수단의 기본 금액입니다. (100 ₽)
const DefaultPaymentAmount int64 = 10000

// DefaultAmount 사용자가 금액을 입력하지 않았을 때 사용할 금액(최소 화폐 단위)입니다.
func (m PaymentMethod) DefaultAmount() int64 {
	return m.MinAmount.OrElse(DefaultPaymentAmount)
}

// Interactive 금액 입력이나 옵션 선택이 필요한 결제 수단인지 여부입니다.
func (m PaymentMethod) Interactive() bool {
	return m.RequiresAmount || len(m.Options) > 0
}

type PaymentOption struct {
	ID    string
	Title string
}

// PaymentRequest 결제 생성 요청입니다. 금액은 주 화폐 단위(루블)입니다.
type PaymentRequest struct {
	Token            string
	MethodID         string
	AmountMajorUnits Optional[decimal.Decimal]
	OptionID         Optional[string]
}

type PaymentResponse struct {
	PaymentURL Optional[string]
}

// PaymentState 결제 수단별 워크플로 상태입니다.
type PaymentState string

const (
	PaymentIdle       PaymentState = "idle"
	PaymentSubmitting PaymentState = "submitting"
	PaymentSucceeded  PaymentState = "succeeded"
	PaymentFailed     PaymentState = "failed"
)

// PaymentFailure 결제 실패 사유의 분류입니다.
type PaymentFailure string

const (
	PaymentFailureNone           PaymentFailure = ""
	PaymentFailureRemote         PaymentFailure = "remote"
	PaymentFailureNoURL          PaymentFailure = "no_url"
	PaymentFailureInvalidAmount  PaymentFailure = "invalid_amount"
	PaymentFailureAmountTooLow   PaymentFailure = "amount_too_low"
	PaymentFailureAmountTooHigh  PaymentFailure = "amount_too_high"
	PaymentFailureInvalidOption  PaymentFailure = "invalid_option"
	PaymentFailureMethodNotFound PaymentFailure = "method_not_found"
)
