// Package remote 계정/결제 원격 서비스와 정적 설정 문서를 불러오는 로더를 제공합니다.
//
// 각 로더는 정확히 한 번의 네트워크 호출을 수행하고, 검증된 값 또는 *LoadError를 반환합니다.
// 재시도는 하지 않습니다.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
)

const (
	component = "miniapp.remote"

	headerRequestID = "X-Request-ID"

	defaultMaxBodySize = 2 * 1024 * 1024
)

// Config 원격 서비스 주소와 엔드포인트 경로입니다.
type Config struct {
	BaseURL            string
	ConfigPath         string
	AccountPath        string
	PaymentMethodsPath string
	PaymentCreatePath  string

	// Timeout 0이면 제한하지 않습니다.
	Timeout     time.Duration
	MaxBodySize int64
}

// Client 원격 서비스 로더입니다. 여러 고루틴에서 동시에 사용해도 안전합니다.
type Client struct {
	cfg      Config
	fetcher  Fetcher
	validate *validator.Validate
}

type Option func(*clientOptions)

type clientOptions struct {
	fetcher  Fetcher
	observer Observer
}

// WithFetcher 기본 *http.Client 대신 사용할 Fetcher를 지정합니다. 데코레이터는 그 위에 덧붙여집니다.
func WithFetcher(f Fetcher) Option {
	return func(o *clientOptions) {
		o.fetcher = f
	}
}

func WithObserver(obs Observer) Option {
	return func(o *clientOptions) {
		o.observer = obs
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	base := o.fetcher
	if base == nil {
		base = newHTTPFetcher(cfg.Timeout)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxBodySize
	}

	var f Fetcher = &maxBytesFetcher{delegate: base, limit: cfg.MaxBodySize}
	f = &loggingFetcher{delegate: f, observer: o.observer}
	f = &requestIDFetcher{delegate: f}

	return &Client{
		cfg:      cfg,
		fetcher:  f,
		validate: newValidator(),
	}
}

// LoadConfig 브랜딩과 플랫폼 가이드 설정 문서를 불러옵니다.
func (c *Client) LoadConfig(ctx context.Context) (*model.AppConfig, error) {
	body, err := c.do(ctx, EndpointConfig, http.MethodGet, c.cfg.ConfigPath, nil)
	if err != nil {
		return nil, err
	}

	cfg, err := decodeAppConfig(body)
	if err != nil {
		return nil, c.parseError(EndpointConfig, c.cfg.ConfigPath, err)
	}
	return cfg, nil
}

// LoadAccount 토큰에 해당하는 계정/구독 스냅샷을 불러옵니다.
func (c *Client) LoadAccount(ctx context.Context, token string) (*model.AccountSnapshot, error) {
	body, err := c.do(ctx, EndpointAccount, http.MethodPost, c.cfg.AccountPath, tokenRequest{InitData: token})
	if err != nil {
		return nil, err
	}

	snapshot, err := decodeAccount(body, c.validate)
	if err != nil {
		return nil, c.parseError(EndpointAccount, c.cfg.AccountPath, err)
	}
	return snapshot, nil
}

// LoadPaymentMethods 사용 가능한 결제 수단 목록을 불러옵니다.
func (c *Client) LoadPaymentMethods(ctx context.Context, token string) ([]model.PaymentMethod, error) {
	body, err := c.do(ctx, EndpointPaymentMethods, http.MethodPost, c.cfg.PaymentMethodsPath, tokenRequest{InitData: token})
	if err != nil {
		return nil, err
	}

	methods, err := decodePaymentMethods(body, c.validate)
	if err != nil {
		return nil, c.parseError(EndpointPaymentMethods, c.cfg.PaymentMethodsPath, err)
	}
	return methods, nil
}

// CreatePayment 결제를 생성합니다. 응답에 payment_url이 없으면 PaymentURL은 None입니다.
func (c *Client) CreatePayment(ctx context.Context, req model.PaymentRequest) (model.PaymentResponse, error) {
	payload := createPaymentRequest{InitData: req.Token, Method: req.MethodID}
	if amount, ok := req.AmountMajorUnits.Get(); ok {
		n := json.Number(amount.String())
		payload.AmountRubles = &n
	}
	if option, ok := req.OptionID.Get(); ok {
		payload.Option = option
	}

	body, err := c.do(ctx, EndpointPaymentCreate, http.MethodPost, c.cfg.PaymentCreatePath, payload)
	if err != nil {
		return model.PaymentResponse{}, err
	}

	resp, err := decodePaymentResponse(body)
	if err != nil {
		return model.PaymentResponse{}, c.parseError(EndpointPaymentCreate, c.cfg.PaymentCreatePath, err)
	}
	return resp, nil
}

type tokenRequest struct {
	InitData string `json:"initData"`
}

type createPaymentRequest struct {
	InitData     string       `json:"initData"`
	Method       string       `json:"method"`
	AmountRubles *json.Number `json:"amountRubles,omitempty"`
	Option       string       `json:"option,omitempty"`
}

// do 요청을 보내고 2xx 응답의 본문(UTF-8로 변환된 JSON)을 반환합니다.
func (c *Client) do(ctx context.Context, endpoint Endpoint, method, path string, payload any) ([]byte, error) {
	target, err := url.JoinPath(c.cfg.BaseURL, path)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, URL: c.cfg.BaseURL + path, Cause: apperrors.Wrap(err, apperrors.Internal, "원격 서비스 URL 구성에 실패했습니다")}
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, &LoadError{Endpoint: endpoint, URL: target, Cause: apperrors.Wrap(err, apperrors.Internal, "요청 본문 생성에 실패했습니다")}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(withEndpoint(ctx, endpoint), method, target, reqBody)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, URL: target, Cause: apperrors.Wrap(err, apperrors.Internal, "요청 생성에 실패했습니다")}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, URL: target, Cause: classifyTransportError(err)}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	body, err := readBody(resp.Body, contentType)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, URL: target, StatusCode: resp.StatusCode, Cause: apperrors.Wrap(err, apperrors.ExecutionFailed, "응답 본문을 읽지 못했습니다")}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errType := apperrors.ExecutionFailed
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			errType = apperrors.Unauthorized
		}
		return nil, &LoadError{
			Endpoint:   endpoint,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Cause:      apperrors.Newf(errType, "원격 서비스가 오류를 반환했습니다 (%s)", resp.Status),
		}
	}

	if isHTML(contentType) {
		return nil, &LoadError{Endpoint: endpoint, URL: target, StatusCode: resp.StatusCode, Cause: apperrors.Newf(apperrors.ParsingFailed, "JSON 대신 HTML 응답을 받았습니다 (Content-Type: %s)", contentType)}
	}
	if !gjson.ValidBytes(body) {
		return nil, &LoadError{Endpoint: endpoint, URL: target, StatusCode: resp.StatusCode, Cause: apperrors.New(apperrors.ParsingFailed, "응답 본문이 올바른 JSON이 아닙니다")}
	}

	return body, nil
}

// classifyTransportError 응답을 받지 못한 호출의 에러를 분류합니다.
func classifyTransportError(err error) error {
	var tooLarge *bodyTooLargeError
	if errors.As(err, &tooLarge) {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, "응답 본문이 너무 큽니다")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.Wrap(err, apperrors.Timeout, "원격 서비스 응답 시간이 초과되었습니다")
	}

	return apperrors.Wrap(err, apperrors.Unavailable, "원격 서비스에 연결할 수 없습니다")
}

func (c *Client) parseError(endpoint Endpoint, path string, err error) error {
	target, _ := url.JoinPath(c.cfg.BaseURL, path)
	return &LoadError{Endpoint: endpoint, URL: target, StatusCode: http.StatusOK, Cause: apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("%s 응답의 형식이 올바르지 않습니다", endpoint))}
}

// readBody Content-Type에 지정된 문자셋을 UTF-8로 변환하여 읽습니다.
func readBody(r io.Reader, contentType string) ([]byte, error) {
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
			utf8Reader, err := charset.NewReader(r, contentType)
			if err != nil {
				return nil, err
			}
			r = utf8Reader
		}
	}
	return io.ReadAll(r)
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
