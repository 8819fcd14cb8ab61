// Package service 서버를 구성하는 장기 실행 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service main에서 시작하고 종료 신호로 함께 멈추는 구성 요소입니다.
//
// Start는 serviceStopWG.Add(1)이 호출된 상태를 전제로 하며, 서비스가 완전히 종료되면
// (시작에 실패한 경우도 포함) 정확히 한 번 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
