package response

import "github.com/darkkaiser/miniapp-server/internal/miniapp/view"

// PaymentResponse 결제 생성 결과입니다. 실패한 경우에도 버튼 상태와 안내 문구가 채워집니다.
type PaymentResponse struct {
	// PaymentURL 새 창(또는 호스트의 외부 링크 열기)으로 열어야 할 결제 페이지 주소
	PaymentURL string `json:"payment_url,omitempty" example:"https://pay.example.com/checkout/abc"`

	// Button 결제 버튼의 다음 상태
	Button view.PaymentButton `json:"button"`

	// Message 사용자에게 보여줄 실패 안내 문구
	Message string `json:"message,omitempty" example:"Не удалось создать платёж: gateway down"`
}
