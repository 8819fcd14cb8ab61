package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/google/uuid"
)

// Fetcher HTTP 요청을 수행합니다. *http.Client가 이 인터페이스를 만족하며, 데코레이터로 기능을 덧붙입니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer 원격 호출 결과를 수집합니다. (메트릭 등)
type Observer interface {
	ObserveRemoteCall(endpoint Endpoint, outcome string, d time.Duration)
}

type requestIDKey struct{}

// WithRequestID 원격 호출에 전달할 요청 ID를 컨텍스트에 담습니다.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom 컨텍스트의 요청 ID를 반환합니다.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// newHTTPFetcher timeout이 0이면 제한 없이 대기합니다.
func newHTTPFetcher(timeout time.Duration) Fetcher {
	return &http.Client{Timeout: timeout}
}

// requestIDFetcher 요청마다 X-Request-ID 헤더를 붙여 원격 서비스 로그와 연결할 수 있게 합니다.
type requestIDFetcher struct {
	delegate Fetcher
}

func (f *requestIDFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get(headerRequestID) == "" {
		id := RequestIDFrom(req.Context())
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(headerRequestID, id)
	}
	return f.delegate.Do(req)
}

// maxBytesFetcher 응답 본문 크기를 제한합니다.
// Content-Length로 먼저 차단하고, 헤더가 없거나 거짓인 경우는 읽는 시점에 차단합니다.
type maxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

func (f *maxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndClose(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndClose(resp.Body)
		return nil, &bodyTooLargeError{limit: f.limit}
	}

	resp.Body = &maxBytesReader{rc: http.MaxBytesReader(nil, resp.Body, f.limit), limit: f.limit}

	return resp, nil
}

type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, &bodyTooLargeError{limit: r.limit}
		}
	}
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// loggingFetcher 원격 호출의 메서드, 경로, 상태, 소요 시간을 기록하고 Observer에 전달합니다.
// 요청 본문(토큰 포함)은 기록하지 않습니다.
type loggingFetcher struct {
	delegate Fetcher
	observer Observer
}

func (f *loggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := f.delegate.Do(req)
	elapsed := time.Since(start)

	endpoint := endpointFrom(req.Context())
	fields := applog.Fields{
		"endpoint":   endpoint,
		"method":     req.Method,
		"path":       req.URL.Path,
		"duration":   elapsed.String(),
		"request_id": req.Header.Get(headerRequestID),
	}

	outcome := "error"
	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Warn("원격 서비스 호출 실패")
	} else {
		fields["status_code"] = resp.StatusCode
		outcome = http.StatusText(resp.StatusCode)
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			outcome = "ok"
		}
		applog.WithComponentAndFields(component, fields).Debug("원격 서비스 호출 완료")
	}

	if f.observer != nil {
		f.observer.ObserveRemoteCall(endpoint, outcome, elapsed)
	}

	return resp, err
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

type endpointKey struct{}

func withEndpoint(ctx context.Context, e Endpoint) context.Context {
	return context.WithValue(ctx, endpointKey{}, e)
}

func endpointFrom(ctx context.Context) Endpoint {
	e, _ := ctx.Value(endpointKey{}).(Endpoint)
	return e
}
