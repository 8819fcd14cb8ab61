package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/miniapp-server/internal/miniapp/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const (
	// Placeholder 알 수 없는 스칼라 값 대신 표시하는 문자열입니다.
	Placeholder = "—"

	DefaultCurrencySymbol = "₽"
)

// FormatAmount 최소 화폐 단위 금액을 "1234.56 ₽" 형식으로 변환합니다. 값이 없으면 Placeholder입니다.
func FormatAmount(minor model.Optional[int64], symbol string) string {
	m, ok := minor.Get()
	if !ok {
		return Placeholder
	}
	if symbol = strings.TrimSpace(symbol); symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return MajorUnits(m) + " " + symbol
}

// MajorUnits 최소 화폐 단위를 소수점 두 자리의 주 화폐 단위 문자열로 변환합니다. (12345 -> "123.45")
func MajorUnits(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

const dateOnlyLayout = "2006-01-02"

var ruMonths = [...]string{"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."}

// FormatDate 날짜 문자열을 언어에 맞는 중간 길이 날짜와 짧은 시간으로 변환합니다.
// 해석할 수 없는 입력은 그대로 반환합니다.
//
//	ru: "2 окт. 2026 г., 12:00"
//	en: "Oct 2, 2026, 12:00 PM"
func FormatDate(raw, lang string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}

	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return formatDay(t, lang)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatDay(t, lang) + ", " + formatClock(t, lang)
		}
	}

	return raw
}

func isRussian(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	ru, _ := language.Russian.Base()
	return base == ru
}

func formatDay(t time.Time, lang string) string {
	if isRussian(lang) {
		return strconv.Itoa(t.Day()) + " " + ruMonths[t.Month()-1] + " " + strconv.Itoa(t.Year()) + " г."
	}
	return t.Format("Jan 2, 2006")
}

func formatClock(t time.Time, lang string) string {
	if isRussian(lang) {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}
