package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"6개 필드", "0 */5 * * * *", false},
		{"@every", "@every 5m", false},
		{"@hourly", "@hourly", false},
		{"5개 필드는 지원하지 않음", "*/5 * * * *", true},
		{"빈 문자열", "", true},
		{"잘못된 값", "61 * * * * *", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	schedule, err := StandardParser().Parse("30 0 * * * *")
	require.NoError(t, err)

	from := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 1, 12, 0, 30, 0, time.UTC), schedule.Next(from))
}
