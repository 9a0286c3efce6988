package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"0", 0},
		{"120000", 12000000},
		{"15000.5", 1500050},
		{"19.999", 2000},
		{"0.005", 1},
		{"-3.25", -325},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MoneyFromDecimal(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: 35000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":350.00}`, string(raw))

	var fromNumber, fromString, fromNull Money
	require.NoError(t, json.Unmarshal([]byte(`250.5`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"100"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`null`), &fromNull))
	assert.Equal(t, Money(25050), fromNumber)
	assert.Equal(t, Money(10000), fromString)
	assert.Equal(t, Money(0), fromNull)

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"ten"`), &bad))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "1.05", Money(105).String())
	assert.Equal(t, "-9.50", Money(-950).String())
	assert.InDelta(t, 120000.0, Money(12000000).Float(), 1e-9)
}

func TestSale_CloneAndCount(t *testing.T) {
	s := Sale{Items: []SaleItem{{Quantity: 2}, {Quantity: 3}}}
	c := s.Clone()
	c.Items[0].Quantity = 99

	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, 5, s.ItemCount())
}

func TestProduct_Helpers(t *testing.T) {
	p := Product{Variants: []Variant{{ID: "a", Stock: 3}, {ID: "b", Stock: 4}}}
	assert.Equal(t, 1, p.FindVariant("b"))
	assert.Equal(t, -1, p.FindVariant("z"))
	assert.Equal(t, 7, p.TotalStock())

	clones := CloneProducts([]Product{p})
	clones[0].Variants[0].Stock = 0
	assert.Equal(t, 3, p.Variants[0].Stock)
}
