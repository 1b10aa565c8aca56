package output

import (
	"strconv"

	"github.com/mulasense/finance-core/pkg/decimal"
	stddec "github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as $1234.57 (negative as -$1234.57).
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string { return decimal.FormatFloat(amount) }

// FormatPercentage formats a value already expressed in percent with 2 decimals.
func FormatPercentage(pct float64) string { return stddec.NewFromFloat(pct).StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.25) as a percentage (25.00%).
func FormatRate(rate float64) string {
	return stddec.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// FormatChange renders a whole-percent change with an explicit sign.
func FormatChange(pct int) string {
	if pct > 0 {
		return "+" + intToString(pct) + "%"
	}
	return intToString(pct) + "%"
}

func amountString(v float64) string { return decimal.NewMoney(v).String() }
func intToString(v int) string      { return strconv.Itoa(v) }
func boolToString(v bool) string    { return strconv.FormatBool(v) }
