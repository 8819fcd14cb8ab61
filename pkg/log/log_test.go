package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func newEntry(level Level, msg string) *Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = level
	e.Message = msg
	return e
}

func TestHook_Fire_Routing(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error", ErrorLevel, true, true, false},
		{"Warn", WarnLevel, true, false, false},
		{"Info", InfoLevel, true, false, false},
		{"Debug", DebugLevel, false, false, true},
		{"Trace", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, critical, verbose, console := &safeBuffer{}, &safeBuffer{}, &safeBuffer{}, &safeBuffer{}
			h := &hook{
				mainWriter:     main,
				criticalWriter: critical,
				verboseWriter:  verbose,
				consoleWriter:  console,
				formatter:      &logrus.TextFormatter{DisableTimestamp: true},
			}

			require.NoError(t, h.Fire(newEntry(tt.level, "payload")))

			assert.Equal(t, tt.wantMain, main.String() != "")
			assert.Equal(t, tt.wantCritical, critical.String() != "")
			assert.Equal(t, tt.wantVerbose, verbose.String() != "")
			assert.Contains(t, console.String(), "payload")
		})
	}
}

func TestHook_Fire_WriteFailureStillWritesMain(t *testing.T) {
	main := &safeBuffer{}
	h := &hook{
		mainWriter:     main,
		criticalWriter: failWriter{},
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	err := h.Fire(newEntry(ErrorLevel, "boom"))

	assert.EqualError(t, err, "disk full")
	assert.Contains(t, main.String(), "boom")
}

func TestHook_Close_DropsLaterEntries(t *testing.T) {
	main := &safeBuffer{}
	h := &hook{mainWriter: main, formatter: &logrus.TextFormatter{}}

	require.NoError(t, h.Close())
	require.NoError(t, h.Fire(newEntry(InfoLevel, "ignored")))

	assert.Empty(t, main.String())
}

func TestOptions_Validate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"정상", Options{Name: "app"}, ""},
		{"이름 누락", Options{}, "Name"},
		{"파일 경로", Options{Name: "app", Dir: file}, "이미 파일로 존재"},
		{"음수 MaxAge", Options{Name: "app", MaxAge: -1}, "MaxAge"},
		{"음수 MaxSizeMB", Options{Name: "app", MaxSizeMB: -1}, "MaxSizeMB"},
		{"음수 MaxBackups", Options{Name: "app", MaxBackups: -1}, "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetup_CreatesFilesAndCloses(t *testing.T) {
	saved := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(saved)
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetReportCaller(false)
		logrus.SetLevel(logrus.InfoLevel)
	})

	dir := t.TempDir()
	opts := NewProductionOptions("miniapp")
	opts.Dir = dir

	c, err := setup(opts)
	require.NoError(t, err)

	WithComponent("test").Error("critical line")
	WithComponent("test").Info("main line")

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "두 번째 Close는 nil을 반환해야 합니다")

	mainLog, err := os.ReadFile(filepath.Join(dir, "miniapp.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "critical line")
	assert.Contains(t, string(mainLog), "main line")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "miniapp.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "critical line")
	assert.NotContains(t, string(criticalLog), "main line")
}

func TestWithComponentAndFields(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	fields := Fields{"method": "card"}
	WithComponentAndFields("miniapp.payment", fields).Info("submitted")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "miniapp.payment", entry.Data["component"])
	assert.Equal(t, "card", entry.Data["method"])
	assert.NotContains(t, fields, "component", "입력 맵은 변경되지 않아야 합니다")
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("app")
	dev := NewDevelopmentOptions("app")

	assert.Equal(t, InfoLevel, prod.Level)
	assert.True(t, prod.EnableCriticalLog)
	assert.False(t, prod.EnableConsoleLog)

	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}
