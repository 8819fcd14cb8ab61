package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/config"
	"github.com/darkkaiser/miniapp-server/internal/pkg/version"
	"github.com/darkkaiser/miniapp-server/internal/service/api"
	"github.com/darkkaiser/miniapp-server/internal/service/launcher"
	"github.com/darkkaiser/miniapp-server/internal/service/scheduler"
	"github.com/darkkaiser/miniapp-server/internal/testutil"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	t.Parallel()

	assert.Contains(t, banner, "%s", "배너 템플릿에는 버전 포맷팅을 위한 '%s'가 포함되어야 합니다")
	assert.Contains(t, banner, "DarkKaiser")

	output := fmt.Sprintf(banner, "v1.2.3")
	assert.Contains(t, output, "v1.2.3")
	assert.NotContains(t, output, "%s")
}

func TestLogOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		debug     bool
		wantLevel applog.Level
	}{
		{"운영", false, applog.InfoLevel},
		{"개발", true, applog.TraceLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.Debug = tt.debug

			opts := logOptions(&cfg)
			assert.Equal(t, config.AppName, opts.Name)
			assert.Equal(t, tt.wantLevel, opts.Level)
			assert.NoError(t, opts.Validate())
		})
	}
}

func TestNewServices(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	services := newServices(&cfg, version.Info{Version: "1.0.0"})

	require.Len(t, services, 3)
	assert.IsType(t, &api.Service{}, services[0])
	assert.IsType(t, &scheduler.Scheduler{}, services[1])
	assert.IsType(t, &launcher.Service{}, services[2])
}

func TestNewServices_StartAndStop(t *testing.T) {
	port, err := testutil.GetFreePort()
	require.NoError(t, err)

	rs := testutil.NewRemoteServer(t, nil)

	cfg := config.Default()
	cfg.Server.ListenPort = port
	cfg.Remote.BaseURL = rs.URL
	cfg.Remote.Timeout = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	for _, s := range newServices(&cfg, version.Info{Version: "1.0.0"}) {
		wg.Add(1)
		require.NoError(t, s.Start(ctx, wg))
	}

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.NoError(t, testutil.WaitForHTTP(baseURL+"/healthz", 5*time.Second))

	resp, err := http.Get(baseURL + "/version")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("서비스가 제시간에 종료되지 않았습니다")
	}
}
