package log

// silentFormatter 기본 출력 경로(io.Discard)에서의 불필요한 포맷팅을 막습니다. 실제 포맷팅은 hook에서 수행합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, nil
}
