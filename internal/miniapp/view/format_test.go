package view

import (
	"fmt"
	"testing"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		minor  model.Optional[int64]
		symbol string
		want   string
	}{
		{"일반", model.Some(int64(123456)), "₽", "1234.56 ₽"},
		{"0", model.Some(int64(0)), "₽", "0.00 ₽"},
		{"1코펙", model.Some(int64(5)), "₽", "0.05 ₽"},
		{"음수", model.Some(int64(-30000)), "₽", "-300.00 ₽"},
		{"기본 통화 기호", model.Some(int64(100)), "", "1.00 ₽"},
		{"다른 통화 기호", model.Some(int64(100)), "$", "1.00 $"},
		{"값 없음", model.None[int64](), "₽", Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.minor, tt.symbol))
		})
	}
}

func TestFormatAmount_MatchesIntegerDivision(t *testing.T) {
	for _, m := range []int64{0, 1, 9, 10, 99, 100, 101, 999, 1000, 123456, 99999999, 1 << 40} {
		want := fmt.Sprintf("%d.%02d ₽", m/100, m%100)
		assert.Equal(t, want, FormatAmount(model.Some(m), "₽"), "m=%d", m)
	}
}

func TestMajorUnits(t *testing.T) {
	assert.Equal(t, "100.00", MajorUnits(10000))
	assert.Equal(t, "0.01", MajorUnits(1))
	assert.Equal(t, "150.50", MajorUnits(15050))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		lang string
		want string
	}{
		{"RFC3339 러시아어", "2026-10-02T12:00:00Z", "ru", "2 окт. 2026 г., 12:00"},
		{"RFC3339 영어", "2026-10-02T12:00:00Z", "en", "Oct 2, 2026, 12:00 PM"},
		{"지역 태그", "2026-05-09T08:30:00+03:00", "ru-RU", "9 мая 2026 г., 08:30"},
		{"소수점 초", "2026-01-15T21:07:09.123456", "en", "Jan 15, 2026, 9:07 PM"},
		{"공백 구분", "2026-10-02 09:05:00", "en", "Oct 2, 2026, 9:05 AM"},
		{"날짜만", "2026-12-31", "ru", "31 дек. 2026 г."},
		{"알 수 없는 언어", "2026-10-02T12:00:00Z", "xx-invalid-tag", "Oct 2, 2026, 12:00 PM"},
		{"해석 불가", "tomorrow", "en", "tomorrow"},
		{"빈 값", "", "en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.raw, tt.lang))
		})
	}
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeLight, ParseTheme("Light", ThemeDark))
	assert.Equal(t, ThemeDark, ParseTheme("dark", ThemeLight))
	assert.Equal(t, ThemeDark, ParseTheme("", ThemeDark))
	assert.Equal(t, ThemeLight, ParseTheme("sepia", ThemeLight))
}
