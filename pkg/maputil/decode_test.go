package maputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Embedded struct {
	Currency string `json:"currency"`
}

type sample struct {
	Embedded `json:",squash"`

	Name    string        `json:"name"`
	Amount  int64         `json:"amount"`
	Enabled bool          `json:"enabled"`
	Limit   *int64        `json:"limit"`
	Delay   time.Duration `json:"delay"`
	Links   []string      `json:"links"`
}

func TestDecode_WeakTyping(t *testing.T) {
	input := map[string]any{
		"name":     "  card  ",
		"amount":   "12345",
		"enabled":  1,
		"currency": "RUB",
		"delay":    "1500ms",
		"links":    []any{"https://a", "https://b"},
		"unknown":  "ignored",
	}

	got, err := Decode[sample](input)
	require.NoError(t, err)

	assert.Equal(t, "card", got.Name)
	assert.Equal(t, int64(12345), got.Amount)
	assert.True(t, got.Enabled)
	assert.Equal(t, "RUB", got.Currency)
	assert.Equal(t, 1500*time.Millisecond, got.Delay)
	assert.Equal(t, []string{"https://a", "https://b"}, got.Links)
	assert.Nil(t, got.Limit, "누락된 필드는 nil로 남아야 합니다")
}

func TestDecode_FloatToInt(t *testing.T) {
	got, err := Decode[sample](map[string]any{"amount": float64(123456), "limit": float64(5000)})
	require.NoError(t, err)

	assert.Equal(t, int64(123456), got.Amount)
	require.NotNil(t, got.Limit)
	assert.Equal(t, int64(5000), *got.Limit)
}

func TestDecode_StrictTyping(t *testing.T) {
	_, err := Decode[sample](map[string]any{"amount": "abc"})
	assert.Error(t, err)
}

func TestDecode_StringToSliceHook(t *testing.T) {
	got, err := Decode[sample](
		map[string]any{"links": "https://a, ,https://b"},
		WithDecodeHook(StringToSliceHookFunc(",")),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, got.Links)
}

func TestDecodeTo_NilOutput(t *testing.T) {
	var out *sample
	assert.Error(t, decodeTo(map[string]any{}, out))
}
