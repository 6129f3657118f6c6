package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number", input: `10.1`, want: "10.10"},
		{name: "string", input: `"10.10"`, want: "10.10"},
		{name: "integer", input: `250`, want: "250.00"},
		{name: "null", input: `null`, want: "0.00"},
		{name: "empty string", input: `""`, want: "0.00"},
		{name: "unparseable string", input: `"ten kroner"`, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m domain.Money
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))
			assert.Equal(t, tt.want, m.StringFixed(2))
		})
	}
}

func TestMoneyUnparseableQuantityDefaultsToZero(t *testing.T) {
	var item domain.CreatePurchaseOrderItemRequest
	err := json.Unmarshal([]byte(`{"description":"Primer","quantity":"abc","unitPrice":"5.00"}`), &item)
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsZero())
	assert.Equal(t, "5.00", item.UnitPrice.StringFixed(2))
}

func TestMoneyMarshalRoundTrip(t *testing.T) {
	// "10.10" must not collapse to 10.1 on the way back out
	var m domain.Money
	require.NoError(t, json.Unmarshal([]byte(`"10.10"`), &m))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"10.10"`, string(out))
}

func TestMoneyMarshalKeepsExtraPrecision(t *testing.T) {
	var m domain.Money
	require.NoError(t, json.Unmarshal([]byte(`"10.105"`), &m))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"10.105"`, string(out))
}

func TestMoneyArithmetic(t *testing.T) {
	qty := domain.NewMoney(decimal.NewFromInt(3))
	price := domain.MoneyFromFloat(19.99)

	total := qty.Mul(price)
	assert.Equal(t, "59.97", total.StringFixed(2))

	sum := total.Add(domain.MoneyFromFloat(0.03))
	assert.Equal(t, "60.00", sum.StringFixed(2))
}
