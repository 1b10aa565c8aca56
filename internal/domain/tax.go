package domain

// TaxBracket is one band of a progressive schedule. Income above Min and up to
// Max is taxed at Rate. The top band uses +Inf (".inf" in YAML) as its Max.
type TaxBracket struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// TaxRules holds every rate and threshold used by the tax calculators.
// Zero-valued fields are replaced by the built-in defaults when a calculator is constructed.
type TaxRules struct {
	NSSARate     float64      `yaml:"nssa_rate" json:"nssa_rate"`           // Default: 0.045
	NSSACeiling  float64      `yaml:"nssa_ceiling" json:"nssa_ceiling"`     // Default: 700 (monthly insurable earnings cap)
	AIDSLevyRate float64      `yaml:"aids_levy_rate" json:"aids_levy_rate"` // Default: 0.03
	PAYEBrackets []TaxBracket `yaml:"paye_brackets" json:"-"`

	CorporateRate          float64 `yaml:"corporate_rate" json:"corporate_rate"`                     // Default: 0.25
	EffectiveCorporateRate float64 `yaml:"effective_corporate_rate" json:"effective_corporate_rate"` // Default: 25.75 (reported, not derived)

	VATRate      float64 `yaml:"vat_rate" json:"vat_rate"`           // Default: 0.15
	VATThreshold float64 `yaml:"vat_threshold" json:"vat_threshold"` // Default: 25000 (strictly greater registers)
}

// PAYEResult is the payroll breakdown for a single gross salary figure.
type PAYEResult struct {
	Gross         float64 `json:"gross" yaml:"gross"`
	NSSA          float64 `json:"nssa" yaml:"nssa"`
	TaxableIncome float64 `json:"taxable_income" yaml:"taxable_income"`
	PAYE          float64 `json:"paye" yaml:"paye"`
	AIDSLevy      float64 `json:"aids_levy" yaml:"aids_levy"`
	NetPay        float64 `json:"net_pay" yaml:"net_pay"`
}

// TotalTax is PAYE plus its AIDS levy.
func (r PAYEResult) TotalTax() float64 {
	return r.PAYE + r.AIDSLevy
}

// TaxBreakdown aggregates corporate tax, VAT and payroll tax for a business.
type TaxBreakdown struct {
	CorporateTax           float64 `json:"corporate_tax" yaml:"corporate_tax"`
	AIDSLevy               float64 `json:"aids_levy" yaml:"aids_levy"` // component of CorporateTax
	VAT                    float64 `json:"vat" yaml:"vat"`
	PAYE                   float64 `json:"paye" yaml:"paye"`
	TotalTax               float64 `json:"total_tax" yaml:"total_tax"`
	EffectiveCorporateRate float64 `json:"effective_corporate_rate" yaml:"effective_corporate_rate"`
	VATRegistered          bool    `json:"vat_registered" yaml:"vat_registered"`
}

// FinancialData is the input to the tax estimate. Missing values are zero.
type FinancialData struct {
	NetProfit     float64 `json:"net_profit" yaml:"net_profit"`
	AnnualRevenue float64 `json:"annual_revenue" yaml:"annual_revenue"`
	GrossSalary   float64 `json:"gross_salary" yaml:"gross_salary"`
}

// Annualized scales monthly figures to a full year.
func (f FinancialData) Annualized() FinancialData {
	return FinancialData{
		NetProfit:     f.NetProfit * 12,
		AnnualRevenue: f.AnnualRevenue * 12,
		GrossSalary:   f.GrossSalary * 12,
	}
}
