package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	some := Some(int64(42))
	none := None[int64]()

	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	assert.True(t, some.IsPresent())
	assert.Equal(t, int64(42), some.OrElse(7))

	_, ok = none.Get()
	assert.False(t, ok)
	assert.Equal(t, int64(7), none.OrElse(7))

	s := "x"
	assert.Equal(t, Some("x"), FromPtr(&s))
	assert.False(t, FromPtr[string](nil).IsPresent())
}

func TestOptional_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Optional[int]    `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some(1)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"a":1,"b":null}`, string(b))
}

func TestPaymentMethod_Interactive(t *testing.T) {
	assert.False(t, PaymentMethod{ID: "stars"}.Interactive())
	assert.True(t, PaymentMethod{ID: "card", RequiresAmount: true}.Interactive())
	assert.True(t, PaymentMethod{ID: "crypto", Options: []PaymentOption{{ID: "usdt"}}}.Interactive())
}
