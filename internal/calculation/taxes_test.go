package calculation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/mulasense/finance-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

// TestPAYECalculation checks the full payroll breakdown against hand-worked figures.
func TestPAYECalculation(t *testing.T) {
	tests := []struct {
		name        string
		gross       float64
		nssa        float64
		taxable     float64
		paye        float64
		description string
	}{
		{
			name:        "Zero salary",
			gross:       0,
			description: "Every component is zero",
		},
		{
			name:        "Tax-free band",
			gross:       100,
			nssa:        4.5,
			taxable:     95.5,
			paye:        0,
			description: "Taxable income stays inside the 0% band",
		},
		{
			name:        "Second band",
			gross:       300,
			nssa:        13.5,
			taxable:     286.5,
			paye:        (286.5 - 100.01) * 0.20,
			description: "Only the 20% band applies",
		},
		{
			name:        "NSSA ceiling reached",
			gross:       700,
			nssa:        31.5,
			taxable:     668.5,
			paye:        199.99*0.20 + (668.5-300.01)*0.25,
			description: "Contribution capped exactly at the ceiling",
		},
		{
			name:        "Into the 30% band",
			gross:       1100,
			nssa:        31.5,
			taxable:     1068.5,
			paye:        199.99*0.20 + 699.99*0.25 + (1068.5-1000.01)*0.30,
			description: "Bands 0%, 20%, 25% full and 30% partial",
		},
		{
			name:        "Top band",
			gross:       5000,
			nssa:        31.5,
			taxable:     4968.5,
			paye:        199.99*0.20 + 699.99*0.25 + 999.99*0.30 + 999.99*0.35 + (4968.5-3000.01)*0.40,
			description: "Every band contributes",
		},
	}

	calculator := NewPAYECalculator2025()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calculator.Calculate(tt.gross)

			assert.Equal(t, tt.gross, res.Gross)
			assert.InDelta(t, tt.nssa, res.NSSA, epsilon, tt.description)
			assert.InDelta(t, tt.taxable, res.TaxableIncome, epsilon, tt.description)
			assert.InDelta(t, tt.paye, res.PAYE, epsilon, tt.description)
			assert.InDelta(t, tt.paye*0.03, res.AIDSLevy, epsilon, tt.description)
			assert.InDelta(t, tt.gross-tt.nssa-tt.paye-tt.paye*0.03, res.NetPay, epsilon, tt.description)
			assert.LessOrEqual(t, res.NetPay, res.Gross)
			assert.GreaterOrEqual(t, res.PAYE, 0.0)
		})
	}
}

func TestPAYEZeroSalaryIsAllZero(t *testing.T) {
	assert.Equal(t, domain.PAYEResult{}, CalculatePAYE(0))
}

func TestPAYEMonotonic(t *testing.T) {
	prev := CalculatePAYE(0)
	for g := 0.0; g <= 8000; g += 3.7 {
		cur := CalculatePAYE(g)
		require.GreaterOrEqual(t, cur.PAYE, prev.PAYE, "PAYE decreased between %.2f and %.2f", prev.Gross, g)
		prev = cur
	}
	// Around the one-cent gaps between bands.
	for _, edge := range []float64{100, 300, 1000, 2000, 3000} {
		below := NewPAYECalculator2025().BracketTax(edge)
		inGap := NewPAYECalculator2025().BracketTax(edge + 0.005)
		above := NewPAYECalculator2025().BracketTax(edge + 0.02)
		assert.LessOrEqual(t, below, inGap)
		assert.LessOrEqual(t, inGap, above)
	}
}

func TestNSSACap(t *testing.T) {
	for _, gross := range []float64{700, 700.01, 1500, 25000} {
		assert.Equal(t, 31.5, CalculatePAYE(gross).NSSA, "gross %.2f", gross)
	}
	assert.InDelta(t, 699.99*0.045, CalculatePAYE(699.99).NSSA, epsilon)
}

func TestBracketContributionsSumToPAYE(t *testing.T) {
	calculator := NewPAYECalculator2025()
	res := calculator.Calculate(1100)

	contributions := calculator.Contributions(res.TaxableIncome)
	require.Len(t, contributions, 4)

	var sum float64
	for _, c := range contributions {
		sum += c.Tax
	}
	assert.InDelta(t, res.PAYE, sum, epsilon)
	assert.InDelta(t, 0.0, contributions[0].Tax, epsilon)
	assert.InDelta(t, 39.998, contributions[1].Tax, epsilon)
	assert.InDelta(t, 174.9975, contributions[2].Tax, epsilon)
	assert.InDelta(t, (1068.5-1000.01)*0.30, contributions[3].Tax, epsilon)
	assert.True(t, contributions[3].Marginal)
	assert.False(t, contributions[2].Marginal)

	assert.Empty(t, calculator.Contributions(0))
}

func TestBracketContributionsMarshalTopBand(t *testing.T) {
	contributions := NewPAYECalculator2025().Contributions(5000)
	require.Len(t, contributions, 6)
	require.True(t, math.IsInf(contributions[5].Bracket.Max, 1))

	data, err := json.Marshal(contributions)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rate":0.4`)
	assert.NotContains(t, string(data), "bracket")
}

func TestNegativeSalaryFlowsThroughMechanically(t *testing.T) {
	res := CalculatePAYE(-200)
	assert.InDelta(t, -9.0, res.NSSA, epsilon)
	assert.InDelta(t, -191.0, res.TaxableIncome, epsilon)
	assert.Equal(t, 0.0, res.PAYE)
	assert.InDelta(t, -191.0, res.NetPay, epsilon)
}

func TestPAYECalculatorWithConfig(t *testing.T) {
	calculator := NewPAYECalculator(domain.TaxRules{
		NSSACeiling: 1000,
		PAYEBrackets: []domain.TaxBracket{
			{Min: 0, Max: 500, Rate: 0},
			{Min: 500, Max: math.Inf(1), Rate: 0.10},
		},
	})
	assert.Equal(t, 0.045, calculator.NSSARate, "unset rate falls back to default")
	assert.Equal(t, 0.03, calculator.AIDSLevyRate)

	res := calculator.Calculate(2000)
	assert.InDelta(t, 45.0, res.NSSA, epsilon)
	assert.InDelta(t, (1955.0-500)*0.10, res.PAYE, epsilon)
}

func TestCalculateCorporateTax(t *testing.T) {
	assert.InDelta(t, 257.5, CalculateCorporateTax(1000), epsilon)
	assert.InDelta(t, 1000*0.25*1.03, CalculateCorporateTax(1000), epsilon)
	assert.Equal(t, 0.0, CalculateCorporateTax(0))

	for _, profit := range []float64{1, 1234.56, 98765.4321} {
		b := CalculateTaxBreakdown(profit, 0, 0)
		assert.InDelta(t, CalculateCorporateTax(profit), b.CorporateTax, epsilon, "profit %.4f", profit)
	}
}

func TestCheckVATStatus(t *testing.T) {
	assert.False(t, CheckVATStatus(0))
	assert.False(t, CheckVATStatus(25000))
	assert.True(t, CheckVATStatus(25000.01))
	assert.True(t, CheckVATStatus(1_000_000))
}

func TestCalculateTaxBreakdown(t *testing.T) {
	tests := []struct {
		name       string
		netProfit  float64
		turnover   float64
		salaries   float64
		registered bool
		vat        float64
	}{
		{"Below VAT threshold", 5000, 20000, 0, false, 0},
		{"At VAT threshold", 5000, 25000, 800, false, 0},
		{"Above VAT threshold", 10000, 30000, 2000, true, 4500},
		{"Loss making", -1000, 50000, 0, true, 7500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CalculateTaxBreakdown(tt.netProfit, tt.turnover, tt.salaries)
			payeResult := CalculatePAYE(tt.salaries)

			assert.Equal(t, tt.registered, b.VATRegistered)
			assert.InDelta(t, tt.vat, b.VAT, epsilon)
			assert.InDelta(t, tt.netProfit*0.25*0.03, b.AIDSLevy, epsilon)
			assert.InDelta(t, tt.netProfit*0.25*1.03, b.CorporateTax, epsilon)
			assert.InDelta(t, payeResult.PAYE+payeResult.AIDSLevy, b.PAYE, epsilon)
			assert.InDelta(t, b.CorporateTax+b.VAT+b.PAYE, b.TotalTax, epsilon)
			assert.Equal(t, 25.75, b.EffectiveCorporateRate)
		})
	}
}

func TestTaxBreakdownComponentsNonNegative(t *testing.T) {
	for profit := 0.0; profit <= 50000; profit += 4999.5 {
		for turnover := 0.0; turnover <= 60000; turnover += 7500.25 {
			b := CalculateTaxBreakdown(profit, turnover, profit/10)
			assert.GreaterOrEqual(t, b.CorporateTax, 0.0)
			assert.GreaterOrEqual(t, b.VAT, 0.0)
			assert.GreaterOrEqual(t, b.PAYE, 0.0)
			assert.InDelta(t, b.CorporateTax+b.VAT+b.PAYE, b.TotalTax, epsilon)
		}
	}
}

// TestEstimatedTaxBillScenario follows the two-stage PAYE chain: PAYE on the
// salary, then PAYE again on that PAYE total inside the breakdown.
func TestEstimatedTaxBillScenario(t *testing.T) {
	b := GetEstimatedTaxBill(domain.FinancialData{NetProfit: 10000, AnnualRevenue: 30000, GrossSalary: 2000})

	assert.True(t, b.VATRegistered)
	assert.InDelta(t, 4500.0, b.VAT, epsilon)
	assert.InDelta(t, 2575.0, b.CorporateTax, epsilon)
	assert.InDelta(t, 75.0, b.AIDSLevy, epsilon)

	first := CalculatePAYE(2000)
	assert.InDelta(t, 505.5425, first.PAYE, epsilon)
	second := CalculatePAYE(first.PAYE + first.AIDSLevy)
	assert.InDelta(t, second.PAYE+second.AIDSLevy, b.PAYE, epsilon)
	assert.InDelta(t, 91.99416163218748, b.PAYE, epsilon)
	assert.InDelta(t, 7166.994161632188, b.TotalTax, 1e-8)
}

func TestEstimatedTaxBillDefaultsMissingFields(t *testing.T) {
	b := GetEstimatedTaxBill(domain.FinancialData{})
	assert.Equal(t, domain.TaxBreakdown{EffectiveCorporateRate: 25.75}, b)

	onlyProfit := GetEstimatedTaxBill(domain.FinancialData{NetProfit: 4000})
	assert.InDelta(t, 1030.0, onlyProfit.TotalTax, epsilon)
	assert.False(t, onlyProfit.VATRegistered)
}

func TestMonthlyTaxLiabilityAnnualises(t *testing.T) {
	monthly := CalculateMonthlyTaxLiability(domain.FinancialData{NetProfit: 1000, AnnualRevenue: 3000, GrossSalary: 500})
	annual := GetEstimatedTaxBill(domain.FinancialData{NetProfit: 12000, AnnualRevenue: 36000, GrossSalary: 6000})
	assert.Equal(t, annual, monthly)
	assert.True(t, monthly.VATRegistered)
}

func TestTaxEstimatorWithCustomRules(t *testing.T) {
	rules := DefaultTaxRules()
	rules.VATThreshold = 40000
	estimator := NewTaxEstimator(NewTaxBreakdownCalculator(rules))
	estimator.SetLogger(nil)

	b := estimator.EstimatedTaxBill(domain.FinancialData{AnnualRevenue: 30000})
	assert.False(t, b.VATRegistered)
	assert.Equal(t, 0.0, b.VAT)
}
