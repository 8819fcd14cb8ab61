package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/miniapp-server/internal/pkg/version"
	"github.com/darkkaiser/miniapp-server/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fixedCounter int

func (f fixedCounter) Len() int { return int(f) }

func TestRegisterRoutes(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("miniapp_http_requests_total 1\n"))
	})

	tests := []struct {
		name         string
		metrics      http.Handler
		target       string
		wantStatus   int
		wantContains string
	}{
		{"헬스체크", metricsHandler, "/healthz", http.StatusOK, `"status":"healthy"`},
		{"버전 정보", metricsHandler, "/version", http.StatusOK, `"version":"1.0.0"`},
		{"지표", metricsHandler, "/metrics", http.StatusOK, "miniapp_http_requests_total"},
		{"지표 비활성화", nil, "/metrics", http.StatusNotFound, ""},
		{"Swagger 문서", metricsHandler, "/swagger/doc.json", http.StatusOK, "/api/v1/payments/{method}"},
		{"Swagger UI", metricsHandler, "/swagger/index.html", http.StatusOK, "swagger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			RegisterRoutes(e, system.NewHandler(fixedCounter(0), version.Info{Version: "1.0.0"}), tt.metrics)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantContains != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContains)
			}
		})
	}
}
