package bootstrap

import (
	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/platform"
	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
)

// Session 한 번의 부트스트랩 동안 사용하는 값입니다. 만들어진 뒤에는 변경하지 않고 참조로 전달합니다.
type Session struct {
	Init     model.InitContext
	Platform platform.Tag
	Theme    view.Theme
	View     view.Context

	// Config 설정 문서를 불러오기 전에는 nil입니다.
	Config *model.AppConfig
}

// withConfig 설정 문서가 채워진 새 Session을 반환합니다.
func (s *Session) withConfig(cfg *model.AppConfig) *Session {
	next := *s
	next.Config = cfg
	return &next
}
