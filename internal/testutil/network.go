// Package testutil 여러 패키지의 테스트가 함께 사용하는 도우미를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// GetFreePort 테스트용으로 사용 가능한 임의의 포트를 반환합니다.
func GetFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

// WaitForHTTP url이 응답할 때까지 대기합니다. 상태 코드는 검사하지 않습니다.
func WaitForHTTP(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: 200 * time.Millisecond}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}

	return fmt.Errorf("%s 가 %v 안에 응답하지 않았습니다", url, timeout)
}
