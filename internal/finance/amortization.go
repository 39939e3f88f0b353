package finance

import "math"

// MonthlyExpense is a named recurring monthly cost, e.g. lawn care
type MonthlyExpense struct {
	Name   string
	Amount float64
}

// FinancingTerms are the seller-financing inputs for a listing.
// All money fields are dollars.
type FinancingTerms struct {
	Price              float64
	DownPaymentAmount  float64 // fixed amount; takes precedence when > 0
	DownPaymentPercent float64 // used when no fixed amount is given
	AnnualRatePercent  float64
	TermYears          int
	PropertyTaxAnnual  float64
	InsuranceAnnual    float64
	HOAMonthly         float64
	OtherExpenses      []MonthlyExpense
}

// MonthlyBreakdown is the full monthly cost of carrying a financed listing.
type MonthlyBreakdown struct {
	Principal          float64 `json:"principal"`
	DownPayment        float64 `json:"down_payment"`
	InterestRate       float64 `json:"interest_rate"`
	TermYears          int     `json:"term_years"`
	MonthlyPI          float64 `json:"monthly_pi"` // principal + interest
	MonthlyTax         float64 `json:"monthly_tax"`
	MonthlyInsurance   float64 `json:"monthly_insurance"`
	MonthlyHOA         float64 `json:"monthly_hoa"`
	OtherExpensesTotal float64 `json:"other_expenses_total"`
	TotalMonthly       float64 `json:"total_monthly"`
}

// DownPayment resolves the effective down payment for the terms: a fixed
// amount wins over a percentage, and the result is clamped to [0, price].
func (t FinancingTerms) DownPayment() float64 {
	down := t.DownPaymentAmount
	if down <= 0 {
		down = t.Price * t.DownPaymentPercent / 100
	}
	if down < 0 {
		down = 0
	}
	if down > t.Price {
		down = t.Price
	}
	return down
}

// MonthlyPayment computes the monthly principal+interest payment and the
// aggregate monthly cost breakdown for the given terms. It is a pure
// function; both the listing page and the offer dialog call it.
func MonthlyPayment(t FinancingTerms) MonthlyBreakdown {
	termYears := t.TermYears
	if termYears <= 0 {
		termYears = 1
	}

	downPayment := t.DownPayment()
	principal := t.Price - downPayment
	monthlyRate := t.AnnualRatePercent / 100 / 12
	numPayments := float64(termYears * 12)

	var monthlyPI float64
	if monthlyRate == 0 {
		monthlyPI = principal / numPayments
	} else {
		pow := math.Pow(1+monthlyRate, numPayments)
		monthlyPI = principal * (monthlyRate * pow) / (pow - 1)
	}
	if math.IsNaN(monthlyPI) || math.IsInf(monthlyPI, 0) {
		monthlyPI = 0
	}

	monthlyTax := t.PropertyTaxAnnual / 12
	monthlyInsurance := t.InsuranceAnnual / 12

	var otherTotal float64
	for _, e := range t.OtherExpenses {
		otherTotal += e.Amount
	}

	return MonthlyBreakdown{
		Principal:          principal,
		DownPayment:        downPayment,
		InterestRate:       t.AnnualRatePercent,
		TermYears:          termYears,
		MonthlyPI:          monthlyPI,
		MonthlyTax:         monthlyTax,
		MonthlyInsurance:   monthlyInsurance,
		MonthlyHOA:         t.HOAMonthly,
		OtherExpensesTotal: otherTotal,
		TotalMonthly:       monthlyPI + monthlyTax + monthlyInsurance + t.HOAMonthly + otherTotal,
	}
}
