// Package cronx 서버 전체에서 같은 형식의 Cron 표현식을 쓰도록 파서를 한 곳에서 정의합니다.
package cronx

import "github.com/robfig/cron/v3"

// StandardParser 초 단위를 포함한 6개 필드(초 분 시 일 월 요일)와 @every 같은 설명자를 해석합니다.
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식을 StandardParser로 해석할 수 있는지 확인합니다.
func Validate(spec string) error {
	_, err := StandardParser().Parse(spec)
	return err
}
