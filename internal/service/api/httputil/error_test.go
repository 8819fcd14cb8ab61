package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/darkkaiser/miniapp-server/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, method string, err error) (*httptest.ResponseRecorder, *test.Hook) {
	t.Helper()

	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(err, e.NewContext(req, rec))

	return rec, hook
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantLvl  logrus.Level
	}{
		{"HTTPError 문자열", echo.NewHTTPError(http.StatusBadRequest, "bad"), http.StatusBadRequest, "bad", logrus.WarnLevel},
		{"HTTPError ErrorResponse", NewUnauthorizedError(constants.ErrMsgUnauthorizedInitData), http.StatusUnauthorized, constants.ErrMsgUnauthorizedInitData, logrus.WarnLevel},
		{"404는 표준 문구", echo.ErrNotFound, http.StatusNotFound, constants.ErrMsgNotFound, logrus.WarnLevel},
		{"원격 실패는 502", apperrors.New(apperrors.Unavailable, "connection refused"), http.StatusBadGateway, constants.ErrMsgBadGateway, logrus.ErrorLevel},
		{"분류 없는 에러는 500", assert.AnError, http.StatusInternalServerError, constants.ErrMsgInternalServer, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, hook := serve(t, http.MethodGet, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.ResultCode)
			assert.Equal(t, tt.wantMsg, body.Message)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLvl, entry.Level)
			assert.Equal(t, constants.ComponentErrorHandler, entry.Data["component"])
		})
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := serve(t, http.MethodHead, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		errType apperrors.ErrorType
		want    int
	}{
		{apperrors.InvalidInput, http.StatusUnprocessableEntity},
		{apperrors.Unauthorized, http.StatusUnauthorized},
		{apperrors.Forbidden, http.StatusForbidden},
		{apperrors.NotFound, http.StatusNotFound},
		{apperrors.Conflict, http.StatusConflict},
		{apperrors.ExecutionFailed, http.StatusBadGateway},
		{apperrors.ParsingFailed, http.StatusBadGateway},
		{apperrors.Timeout, http.StatusBadGateway},
		{apperrors.Unavailable, http.StatusBadGateway},
		{apperrors.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.errType.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(apperrors.New(tt.errType, "x")))
		})
	}

	wrapped := apperrors.Wrap(apperrors.New(apperrors.Conflict, "busy"), apperrors.Internal, "outer")
	assert.Equal(t, http.StatusConflict, StatusCode(wrapped), "가장 안쪽 분류를 따라야 합니다")
}
