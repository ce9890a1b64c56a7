package payment

import "github.com/shopspring/decimal"

// CommissionRate is the fraction of the order price owed by the driver
// to the operator per completed delivery (2.5%).
var CommissionRate = decimal.NewFromFloat(0.025)

// CommissionFor computes the commission amount for an order price,
// rounded to two decimal places.
func CommissionFor(price decimal.Decimal) decimal.Decimal {
	return price.Mul(CommissionRate).Round(2)
}
