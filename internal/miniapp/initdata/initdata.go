// Package initdata 요청으로부터 호스트가 전달한 세션 토큰(init data)을 찾아냅니다.
//
// 토큰은 검증하지 않고 불투명한 값으로만 다룹니다. 검증은 원격 서비스의 책임입니다.
package initdata

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/tidwall/gjson"
)

const (
	// HeaderInitData 웹뷰 쪽 스크립트가 호스트 브리지로부터 받은 토큰을 실어 보내는 헤더입니다.
	HeaderInitData = "X-Telegram-Init-Data"

	// QueryInitData 토큰을 전달하는 대체 쿼리 파라미터입니다.
	QueryInitData = "initData"

	// QueryWebAppData 호스트 클라이언트가 실행 URL에 붙이는 이름으로, QueryInitData의 별칭으로 취급합니다.
	QueryWebAppData = "tgWebAppData"
)

// Source 토큰을 찾을 위치입니다.
type Source struct {
	Host   string     // 호스트가 직접 전달한 토큰
	Params url.Values // 페이지 URL의 쿼리 (또는 폼) 파라미터
}

// FromRequest 헤더와 쿼리/폼 파라미터로 Source를 구성합니다.
func FromRequest(r *http.Request) Source {
	params := r.URL.Query()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			for k, vs := range r.PostForm {
				for _, v := range vs {
					params.Add(k, v)
				}
			}
		}
	}

	return Source{
		Host:   r.Header.Get(HeaderInitData),
		Params: params,
	}
}

// Resolve 호스트 토큰을 우선하고, 없으면 쿼리 파라미터로 대체합니다. 실패하지 않으며 부수 효과가 없습니다.
func Resolve(src Source) model.InitContext {
	if token := strings.TrimSpace(src.Host); token != "" {
		return model.InitContext{Token: token, Present: true, Source: model.InitSourceHost}
	}

	for _, name := range []string{QueryInitData, QueryWebAppData} {
		if token := strings.TrimSpace(src.Params.Get(name)); token != "" {
			return model.InitContext{Token: token, Present: true, Source: model.InitSourceQuery}
		}
	}

	return model.InitContext{Source: model.InitSourceNone}
}

// HostLanguage 토큰에 포함된 사용자 정보(user 필드의 JSON)에서 language_code를 꺼냅니다.
func HostLanguage(token string) string {
	if token == "" {
		return ""
	}

	values, err := url.ParseQuery(token)
	if err != nil {
		return ""
	}

	user := values.Get("user")
	if user == "" || !gjson.Valid(user) {
		return ""
	}

	return gjson.Get(user, "language_code").String()
}
