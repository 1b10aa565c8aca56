package calculation

import (
	"math"

	"github.com/mulasense/finance-core/internal/domain"
)

// Score bands shared by the rating, loan limit and loan pricing.
const (
	excellentScore = 80
	goodScore      = 60
	fairScore      = 40
)

// defaultLoanMonths is used when a request does not specify a duration.
const defaultLoanMonths = 12

// RatingFor maps a health score to its qualitative band.
func RatingFor(score int) domain.Rating {
	switch {
	case score >= excellentScore:
		return domain.RatingExcellent
	case score >= goodScore:
		return domain.RatingGood
	case score >= fairScore:
		return domain.RatingFair
	default:
		return domain.RatingPoor
	}
}

// LoanLimit caps borrowing at a multiple of recent income: 3x, 2x, 1x or 0.5x by score band.
func LoanLimit(score int, income float64) float64 {
	switch {
	case score >= excellentScore:
		return income * 3
	case score >= goodScore:
		return income * 2
	case score >= fairScore:
		return income * 1
	default:
		return income * 0.5
	}
}

// InterestRateFor returns the annual rate in percent and whether the band is approved.
func InterestRateFor(score int) (float64, bool) {
	switch {
	case score >= excellentScore:
		return 3.5, true
	case score >= goodScore:
		return 5.0, true
	case score >= fairScore:
		return 7.5, true
	default:
		return 10.0, false
	}
}

// MonthlyPayment is the level amortised payment for principal over months at
// annualRatePct. A zero rate splits the principal evenly.
func MonthlyPayment(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal * (r * growth) / (growth - 1)
}

// OfferLoan prices a loan request from the applicant's health score.
// income is the applicant's recent income used for the informational limit.
func OfferLoan(score int, income, amount float64, months int) domain.LoanOffer {
	if months <= 0 {
		months = defaultLoanMonths
	}
	rate, approved := InterestRateFor(score)
	offer := domain.LoanOffer{
		AmountRequested: amount,
		InterestRate:    rate,
		DurationMonths:  months,
		Status:          domain.LoanRejected,
		HealthScore:     score,
		LoanLimit:       LoanLimit(score, income),
	}
	if approved {
		offer.Status = domain.LoanApproved
		offer.AmountApproved = amount
		offer.MonthlyPayment = MonthlyPayment(amount, rate, months)
	}
	return offer
}
