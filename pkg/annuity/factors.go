// Package annuity calculates the economic efficiency of a technical
// installation using the annuity method of VDI 2067 Part 1. A System
// owns a set of Parts and named CostGroups; CalcAnnuities produces the
// categorized annuity breakdown from which investment, amortization
// and net present value metrics are derived.
package annuity

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// AnnuityFactor converts a one-time cash value into an equivalent
// constant annual payment over an observation period of years at
// interest factor q (VDI 2067 section 8.1.1, equation 4).
//
// years <= 0 disables discounting and returns 1, the basis of the
// simplified per-part calculation mode. q == 1 means zero interest
// and returns 1/years.
func AnnuityFactor(years int, q decimal.Decimal) (decimal.Decimal, error) {
	if years <= 0 {
		return one, nil
	}
	if q.Equal(one) {
		return one.Div(decimal.NewFromInt(int64(years))), nil
	}
	qT := q.Pow(decimal.NewFromInt(int64(years)))
	if qT.IsZero() {
		return decimal.Decimal{}, &DomainError{Years: years, Q: q}
	}
	denom := one.Sub(one.Div(qT))
	if denom.IsZero() {
		return decimal.Decimal{}, &DomainError{Years: years, Q: q}
	}
	return q.Sub(one).Div(denom), nil
}

// CashValueFactor discounts a price-escalating annual payment stream
// to a single present value, given price-change factor r and interest
// factor q (VDI 2067 section 8.1.1, equation 5).
//
// years <= 0 returns 1. Well-defined for all r, q > 0.
func CashValueFactor(years int, r, q decimal.Decimal) decimal.Decimal {
	if years <= 0 {
		return one
	}
	if r.Equal(q) {
		return decimal.NewFromInt(int64(years)).Div(q)
	}
	ratioT := r.Div(q).Pow(decimal.NewFromInt(int64(years)))
	return one.Sub(ratioT).Div(q.Sub(r))
}
