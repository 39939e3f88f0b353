package finance

import "math"

// Cents is an amount in minor currency units. All amounts crossing the
// payment provider boundary are Cents.
type Cents int64

// Dollars is an amount in whole currency units, used for display math
// and the amortization formula.
type Dollars float64

// Credits is the internal unit of account: 1 credit = $1 = 100 cents.
type Credits int32

const (
	CentsPerDollar Cents = 100
	CentsPerCredit Cents = 100
)

// Dollars converts cents to dollars.
func (c Cents) Dollars() Dollars {
	return Dollars(c) / Dollars(CentsPerDollar)
}

// Cents converts dollars to cents, rounding to the nearest cent.
func (d Dollars) Cents() Cents {
	return Cents(math.Round(float64(d) * float64(CentsPerDollar)))
}

// Credits converts cents to whole credits, truncating any remainder.
func (c Cents) Credits() Credits {
	return Credits(c / CentsPerCredit)
}

// Cents converts credits to their cent value.
func (cr Credits) Cents() Cents {
	return Cents(cr) * CentsPerCredit
}
