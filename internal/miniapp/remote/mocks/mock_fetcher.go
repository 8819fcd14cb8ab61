// Package mocks remote 패키지의 테스트를 위한 Fetcher Mock 구현체를 제공합니다.
//
//	f := mocks.NewMockFetcher()
//	f.On("Do", mock.Anything).Return(mocks.NewMockJSONResponse(`{"methods":[]}`, 200), nil)
//	client := remote.NewClient(cfg, remote.WithFetcher(f))
package mocks

import (
	"bytes"
	"io"
	"net/http"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/remote"
	"github.com/stretchr/testify/mock"
)

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ remote.Fetcher = (*MockFetcher)(nil)

// MockFetcher Fetcher 인터페이스의 Mock 구현체 (Testify 사용)
type MockFetcher struct {
	mock.Mock
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// NewMockResponse 주어진 본문과 상태 코드를 가진 http.Response를 생성합니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode:    statusCode,
		Status:        http.StatusText(statusCode),
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: int64(len(body)),
		Header:        make(http.Header),
	}
}

// NewMockJSONResponse Content-Type이 application/json인 응답을 생성합니다.
func NewMockJSONResponse(body string, statusCode int) *http.Response {
	resp := NewMockResponse(body, statusCode)
	resp.Header.Set("Content-Type", "application/json; charset=utf-8")
	return resp
}
