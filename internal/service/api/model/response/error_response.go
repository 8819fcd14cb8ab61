package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 401, 502)
	ResultCode int `json:"result_code" example:"401"`

	// Message 에러 메시지
	Message string `json:"message" example:"초기화 토큰(initData)이 필요합니다. 텔레그램 앱 안에서 열어주세요"`
}
