// Package render view.Page를 HTML 템플릿에 적용하는 화면 바인딩 계층입니다.
//
// 보이지 않는(Visible=false) 섹션은 출력하지 않습니다. 변환 로직은 모두 view 패키지에 있고,
// 이 패키지는 값을 그대로 마크업에 옮기기만 합니다.
package render

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/view"
	apperrors "github.com/darkkaiser/miniapp-server/internal/pkg/errors"
	"github.com/labstack/echo/v4"
)

// PageTemplate 대시보드 전체 화면 템플릿 이름입니다.
const PageTemplate = "page"

//go:embed templates/*.gohtml
var templateFS embed.FS

// blockedSchemes 링크로 출력하지 않는 URL 스킴입니다. 그 외 스킴(앱 딥링크 등)은 그대로 출력합니다.
var blockedSchemes = []string{"javascript", "vbscript", "data"}

// PageData 화면 템플릿에 전달하는 값입니다.
type PageData struct {
	Page view.Page

	// InitData 결제 폼 전송 시 다시 실어 보낼 초기화 토큰
	InitData string
}

// Renderer echo.Renderer 구현체입니다.
type Renderer struct {
	templates *template.Template
}

// New 내장된 템플릿을 파싱하여 Renderer를 생성합니다.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"link": link,
	}).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "화면 템플릿을 파싱하지 못했습니다")
	}

	return &Renderer{templates: t}, nil
}

// Render echo.Context.Render에서 호출됩니다.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page 대시보드 화면을 출력합니다.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.templates.ExecuteTemplate(w, PageTemplate, data)
}

// link 원격 서비스가 내려준 링크를 href/src 속성에 출력할 수 있는 값으로 바꿉니다.
//
// html/template은 http(s)와 mailto 외의 스킴을 모두 차단하지만, 구독 링크에는 앱 딥링크
// (happ://, v2raytun:// 등)가 포함되므로 스크립트 실행이 가능한 스킴만 차단합니다.
func link(raw string) template.URL {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	for _, scheme := range blockedSchemes {
		if strings.EqualFold(u.Scheme, scheme) {
			return "#"
		}
	}

	return template.URL(raw)
}
