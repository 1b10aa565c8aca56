package decimal

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is a monetary amount as it crosses the system boundary: parsed from
// backend records (decimal strings or bare numbers) and rendered for display.
// Calculations themselves run on float64; see Float64.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyExact converts value using its exact binary expansion rather than
// the shortest decimal that round-trips, so 1.005 stays 1.00499999... and
// String rounds it the way JavaScript's toFixed does.
func NewMoneyExact(value float64) Money {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	frac, exp := math.Frexp(value)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return Money{decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)}
	}
	// mant * 2^exp == mant * 5^-exp * 10^exp
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return Money{decimal.NewFromBigInt(pow.Mul(pow, mant), int32(exp))}
}

// NewMoneyFromString parses a decimal string such as "1250.00".
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{d}, nil
}

// ParseAmount accepts the shapes the backend uses for amounts: a decimal
// string, a float or an integer.
func ParseAmount(v any) (Money, error) {
	switch x := v.(type) {
	case nil:
		return Zero(), nil
	case string:
		return NewMoneyFromString(x)
	case float64:
		return NewMoney(x), nil
	case float32:
		return NewMoney(float64(x)), nil
	case int:
		return Money{decimal.NewFromInt(int64(x))}, nil
	case int64:
		return Money{decimal.NewFromInt(x)}, nil
	case Money:
		return x, nil
	default:
		return Money{}, fmt.Errorf("unsupported amount type %T", v)
	}
}

// UnmarshalYAML reads either a quoted decimal string or a plain number.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", value.Line)
	}
	if value.Value == "" || value.Tag == "!!null" {
		*m = Zero()
		return nil
	}
	parsed, err := NewMoneyFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}

// MarshalYAML writes the amount as a fixed two-decimal string.
func (m Money) MarshalYAML() (any, error) {
	return m.String(), nil
}

// Float64 converts to the float64 the calculation engine works in.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Sum totals a list of amounts.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with a dollar sign, negative amounts as -$12.00.
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2)
	}
	return "$" + m.String()
}

// FormatFloat renders a float64 amount the same way Format does.
func FormatFloat(value float64) string {
	return NewMoney(value).Format()
}
