// Package money implements integer minor-currency-unit arithmetic. Amounts
// stay in minor units (cents) end to end; division by 100 happens only when
// formatting for display, never mid-computation.
package money

import "fmt"

// Minor is an amount in minor currency units.
type Minor int64

func (m Minor) Add(other Minor) Minor {
	return m + other
}

func (m Minor) Subtract(other Minor) Minor {
	return m - other
}

func (m Minor) MultiplyByQuantity(qty int) Minor {
	return m * Minor(qty)
}

// ApplyPercentage returns the given fraction of the amount, truncated toward
// zero. Amounts and fractions are non-negative here, so truncation rounds
// down and the result never exceeds the stated percentage.
func (m Minor) ApplyPercentage(fraction float64) Minor {
	return Minor(int64(float64(m) * fraction))
}

var currencySymbols = map[string]string{
	"AUD": "$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
}

// Display renders the amount in major units with two decimal places,
// prefixed with the symbol for the given ISO currency code. Unknown codes
// fall back to "<code> <amount>".
func (m Minor) Display(currencyCode string) string {
	sign := ""
	v := int64(m)

	if v < 0 {
		sign = "-"
		v = -v
	}

	symbol, ok := currencySymbols[currencyCode]
	if !ok {
		return fmt.Sprintf("%s %s%d.%02d", currencyCode, sign, v/100, v%100)
	}

	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, v/100, v%100)
}
