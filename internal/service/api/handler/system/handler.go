// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 초기화 토큰이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"runtime"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/pkg/version"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/darkkaiser/miniapp-server/internal/service/api/model/system"
	applog "github.com/darkkaiser/miniapp-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// WorkflowCounter 현재 보관 중인 결제 워크플로 수를 알려줍니다. (payment.Registry)
type WorkflowCounter interface {
	Len() int
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	workflows WorkflowCounter

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. workflows가 nil이면 결제 레지스트리를 unhealthy로 보고합니다.
func NewHandler(workflows WorkflowCounter, buildInfo version.Info) *Handler {
	return &Handler{
		workflows: workflows,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버 프로세스와 내부 구성 요소의 상태를 확인합니다.
// @Description 원격 계정/결제 서비스는 호출하지 않습니다. (헬스체크가 원격 서비스에 부하를 주지 않도록)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /healthz [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/healthz",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	resp := system.HealthResponse{
		Status:       constants.HealthStatusHealthy,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: make(map[string]system.DependencyStatus),
	}

	if h.workflows != nil {
		resp.ActiveWorkflows = h.workflows.Len()
		resp.Dependencies[constants.DependencyPaymentRegistry] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusHealthy,
		}
	} else {
		resp.Status = constants.HealthStatusUnhealthy
		resp.Dependencies[constants.DependencyPaymentRegistry] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: constants.MsgDepStatusNotInitialized,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   runtime.Version(),
	})
}
