// Package middleware 미니앱 HTTP 서버를 위한 Echo 미들웨어를 제공합니다.
//
// 제공되는 미들웨어:
//
//   - PanicRecovery: 패닉 복구 및 에러 로깅
//   - HTTPLogger: HTTP 요청/응답 로깅 (초기화 토큰 등 민감 정보 마스킹)
//   - RateLimit: IP 기반 요청 속도 제한
//   - InitData / RequireInitData: 초기화 토큰 위치를 Context에 저장하고, 필요한 경로에서 토큰을 요구
//   - Metrics: 라우트별 요청 수와 처리 시간 기록
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 연결
//
// 사용 예시:
//
//	e := echo.New()
//	e.Use(middleware.PanicRecovery())
//	e.Use(middleware.HTTPLogger())
//	e.Use(middleware.RateLimit(10, 20))
package middleware
