// Package auth 요청에서 찾아낸 미니앱 초기화 토큰 정보를 echo.Context에 보관하고 꺼내는 기능을 제공합니다.
//
// 토큰의 서명 검증은 원격 서비스의 책임이므로 이 패키지는 토큰을 불투명한 값으로만 다룹니다.
package auth

import (
	"fmt"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/initdata"
	"github.com/darkkaiser/miniapp-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// contextKeySource 초기화 토큰 위치 정보 저장용 Context 키
const contextKeySource = "darkkaiser/miniapp-server/api/auth/InitDataSource"

// SetSource 요청의 초기화 토큰 위치 정보를 Context에 저장합니다.
func SetSource(c echo.Context, src initdata.Source) {
	c.Set(contextKeySource, src)
}

// GetSource Context에서 초기화 토큰 위치 정보를 조회합니다.
func GetSource(c echo.Context) (initdata.Source, error) {
	val := c.Get(contextKeySource)
	if val == nil {
		return initdata.Source{}, ErrSourceMissingInContext
	}

	src, ok := val.(initdata.Source)
	if !ok {
		return initdata.Source{}, ErrSourceTypeMismatch
	}

	return src, nil
}

// MustGetSource InitData 미들웨어를 통과하여 정보가 반드시 존재한다고 보장될 때 사용합니다.
// 조회에 실패하면 panic이 발생합니다.
func MustGetSource(c echo.Context) initdata.Source {
	src, err := GetSource(c)
	if err != nil {
		panic(fmt.Sprintf(constants.PanicMsgAuthContextSourceNotFound, err))
	}
	return src
}

// SourceOf Context에 저장된 정보가 있으면 그것을, 없으면 요청에서 직접 찾아 반환합니다.
func SourceOf(c echo.Context) initdata.Source {
	if src, err := GetSource(c); err == nil {
		return src
	}
	return initdata.FromRequest(c.Request())
}
