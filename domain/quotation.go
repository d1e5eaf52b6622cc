package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quotation is the broker's fixed-point price representation: integer units
// plus a nano fraction with the same sign.
type Quotation struct {
	Units int64 `json:"units"`
	Nano  int32 `json:"nano"`
}

var (
	nanoFactor   = decimal.New(1, 9)
	roundTripEps = decimal.New(1, -10)
)

func QuotationToDecimal(quotation Quotation) decimal.Decimal {
	units := decimal.NewFromInt(quotation.Units)
	nano := decimal.New(int64(quotation.Nano), -9)
	return units.Add(nano)
}

// DecimalToQuotation converts an exact decimal back to the broker's
// fixed-point form. Values with more than nine fractional digits cannot be
// represented and are rejected.
func DecimalToQuotation(value decimal.Decimal) (Quotation, error) {
	units := value.IntPart()
	nano := value.Sub(decimal.NewFromInt(units)).Mul(nanoFactor).IntPart()

	quotation := Quotation{Units: units, Nano: int32(nano)}

	if value.Sub(QuotationToDecimal(quotation)).Abs().GreaterThanOrEqual(roundTripEps) {
		return Quotation{}, fmt.Errorf("quotation cannot represent %s", value)
	}
	return quotation, nil
}
