package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// newTestServer 테스트용 Echo 인스턴스를 만듭니다. 전역 에러 핸들러는 httputil.ErrorHandler와 같은 방식으로 상태 코드를 씁니다.
func newTestServer(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(mw...)
	return e
}

func do(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// captureLogs 전역 로거에 테스트 훅을 붙이고 Debug 레벨까지 기록하도록 설정합니다.
func captureLogs(t *testing.T) *test.Hook {
	t.Helper()

	hook := test.NewGlobal()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)

	t.Cleanup(func() {
		hook.Reset()
		logrus.SetLevel(level)
	})

	return hook
}

func findEntry(t *testing.T, hook *test.Hook, message string) *logrus.Entry {
	t.Helper()

	for _, entry := range hook.AllEntries() {
		if entry.Message == message {
			return entry
		}
	}
	require.Failf(t, "로그를 찾을 수 없습니다", "message: %s", message)
	return nil
}

type observedRequest struct {
	method string
	route  string
	status int
	d      time.Duration
}

type fakeObserver struct {
	requests []observedRequest
}

func (f *fakeObserver) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	f.requests = append(f.requests, observedRequest{method, route, status, d})
}
