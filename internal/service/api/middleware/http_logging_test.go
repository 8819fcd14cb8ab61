package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func TestHTTPLogger(t *testing.T) {
	hook := captureLogs(t)

	e := newTestServer(HTTPLogger())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	header := http.Header{}
	header.Set(initdata.HeaderInitData, "query_id=AAHdF6IQAAAAAN0XohDhrOrc")
	rec := do(e, http.MethodGet, "/?initData=query_id%3DAAHdF6IQ&colorScheme=dark", header)

	assert.Equal(t, http.StatusOK, rec.Code)

	entry := findEntry(t, hook, constants.LogMsgHTTPRequest)
	assert.Equal(t, constants.ComponentMiddleware, entry.Data["component"])
	assert.Equal(t, http.MethodGet, entry.Data["method"])
	assert.Equal(t, "/", entry.Data["path"])
	assert.Equal(t, "/", entry.Data["route"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "0", entry.Data["bytes_in"])
	assert.Equal(t, "2", entry.Data["bytes_out"])

	uri := entry.Data["uri"].(string)
	assert.NotContains(t, uri, "query_id")
	assert.Contains(t, uri, "colorScheme=dark")
	assert.Equal(t, "quer***rOrc", entry.Data["init_data"])
}

func TestHTTPLogger_RecordsErrorStatus(t *testing.T) {
	hook := captureLogs(t)

	e := newTestServer(HTTPLogger())
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "down")
	})

	rec := do(e, http.MethodGet, "/fail", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	entry := findEntry(t, hook, constants.LogMsgHTTPRequest)
	assert.Equal(t, http.StatusBadGateway, entry.Data["status"])
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"민감 정보 없음", "/api/v1/dashboard?colorScheme=dark", "/api/v1/dashboard?colorScheme=dark"},
		{"initData", "/?initData=query_id%3DAAHdF6IQ", "/?initData=quer%2A%2A%2AF6IQ"},
		{"tgWebAppData", "/?tgWebAppData=abcdef", "/?tgWebAppData=abcd%2A%2A%2A"},
		{"파싱 실패는 원본", "/%zz?initData=x", "/%zz?initData=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSensitiveQueryParams(tt.uri))
		})
	}
}
