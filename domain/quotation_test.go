package domain_test

import (
	"testing"

	"github.com/legendiguess/invest-trade-bot/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuotationToDecimal(t *testing.T) {
	assert.Equal(t, "100.5", domain.QuotationToDecimal(domain.Quotation{Units: 100, Nano: 500000000}).String())
	assert.Equal(t, "0.000000001", domain.QuotationToDecimal(domain.Quotation{Units: 0, Nano: 1}).String())
	assert.Equal(t, "-1.5", domain.QuotationToDecimal(domain.Quotation{Units: -1, Nano: -500000000}).String())
}

func TestDecimalToQuotationRoundTrip(t *testing.T) {
	values := []string{
		"0",
		"1",
		"100.5",
		"251.37",
		"0.000000001",
		"123456789.987654321",
		"-1.5",
		"-0.000000009",
	}

	eps := decimal.New(1, -10)

	for _, value := range values {
		px := decimal.RequireFromString(value)

		quotation, err := domain.DecimalToQuotation(px)
		assert.Nil(t, err, value)

		back := domain.QuotationToDecimal(quotation)
		assert.True(t, px.Sub(back).Abs().LessThan(eps), "%s round-tripped to %s", px, back)
	}
}

func TestDecimalToQuotationTooPrecise(t *testing.T) {
	_, err := domain.DecimalToQuotation(decimal.RequireFromString("0.0000000001"))
	assert.NotNil(t, err)
}
