package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// 원격 서비스 기본 경로입니다. (config.Default와 같은 값)
const (
	RemoteConfigPath         = "/app-config.json"
	RemoteAccountPath        = "/miniapp/subscription"
	RemotePaymentMethodsPath = "/miniapp/payments/methods"
	RemotePaymentCreatePath  = "/miniapp/payments/create"
)

// RemoteResponse 가짜 원격 서비스가 한 경로에 돌려줄 응답입니다.
type RemoteResponse struct {
	Status int
	Body   string
}

// RemoteServer 계정/결제 원격 서비스를 흉내 내는 테스트 서버입니다.
type RemoteServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]RemoteResponse
	hits      map[string]int
	lastBody  map[string]string
}

// NewRemoteServer 경로별 응답을 가진 테스트 서버를 시작합니다. 테스트가 끝나면 자동으로 종료됩니다.
// 등록되지 않은 경로는 404로 응답합니다.
func NewRemoteServer(t *testing.T, responses map[string]RemoteResponse) *RemoteServer {
	t.Helper()

	rs := &RemoteServer{
		responses: make(map[string]RemoteResponse, len(responses)),
		hits:      make(map[string]int),
		lastBody:  make(map[string]string),
	}
	for path, resp := range responses {
		rs.responses[path] = resp
	}

	rs.Server = httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(rs.Close)

	return rs
}

func (rs *RemoteServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	rs.mu.Lock()
	resp, ok := rs.responses[r.URL.Path]
	rs.hits[r.URL.Path]++
	rs.lastBody[r.URL.Path] = string(body)
	rs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// SetResponse 경로의 응답을 바꿉니다.
func (rs *RemoteServer) SetResponse(path string, resp RemoteResponse) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.responses[path] = resp
}

// Hits 경로가 호출된 횟수를 반환합니다.
func (rs *RemoteServer) Hits(path string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.hits[path]
}

// LastBody 경로에 마지막으로 전달된 요청 본문을 반환합니다.
func (rs *RemoteServer) LastBody(path string) string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastBody[path]
}
