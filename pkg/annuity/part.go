package annuity

import (
	"github.com/shopspring/decimal"
)

// Part represents one component of the installation. It stores the
// static cost attributes and the values computed by its own annuity
// methods. Computed fields are only valid for the observation period
// and interest factor of the most recent calculation.
type Part struct {
	Name string
	Size decimal.NullDecimal // installed size, informational
	Unit string              // reference unit of Size, informational

	Invest            decimal.Decimal // A_0, investment amount
	ServiceLife       int             // T_N in years; 0 marks a one-time expense
	MaintenanceFactor decimal.Decimal // f_Inst, fraction of Invest per year
	InspectionFactor  decimal.Decimal // f_W_Insp, fraction of Invest per year
	OperationEffort   decimal.Decimal // f_Op in hours per year
	Funding           decimal.Decimal // funded fraction of the first-year investment, in [0,1]

	// Computed by CalcCapitalAnnuity.
	CashValues     []decimal.Decimal // discounted cash values of all procurements
	Replacements   int               // n, replacements within the observation period
	ResidualValue  decimal.Decimal   // R_W
	CapitalAnnuity decimal.Decimal   // A_N_K, negative for a net cost

	// Computed by CalcOperationAnnuity.
	OperationAnnuity decimal.Decimal // A_N_B, negative for a net cost
}

// NewPart creates a validated part without funding.
func NewPart(name string, invest decimal.Decimal, serviceLifeYears int,
	maintFactor, inspFactor, opEffort decimal.Decimal) (*Part, error) {
	return NewFundedPart(name, invest, serviceLifeYears, maintFactor, inspFactor, opEffort, decimal.Zero)
}

// NewFundedPart creates a validated part whose first-year investment
// is reduced by the funding fraction fund. Funding is not part of
// VDI 2067: it applies only to the first procurement, never to
// replacements, the residual value or the operation-related costs.
func NewFundedPart(name string, invest decimal.Decimal, serviceLifeYears int,
	maintFactor, inspFactor, opEffort, fund decimal.Decimal) (*Part, error) {
	p := &Part{
		Name:              name,
		Invest:            invest,
		ServiceLife:       serviceLifeYears,
		MaintenanceFactor: maintFactor,
		InspectionFactor:  inspFactor,
		OperationEffort:   opEffort,
		Funding:           fund,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Part) validate() error {
	if p.Name == "" {
		return &InputError{Field: "part name", Reason: "cannot be empty"}
	}
	if p.Invest.IsNegative() {
		return &InputError{Field: "part " + p.Name + ": investment amount", Reason: "cannot be negative, got " + p.Invest.String()}
	}
	if p.ServiceLife < 0 {
		return &InputError{Field: "part " + p.Name + ": service life", Reason: "cannot be negative"}
	}
	if p.MaintenanceFactor.IsNegative() {
		return &InputError{Field: "part " + p.Name + ": maintenance factor", Reason: "cannot be negative"}
	}
	if p.InspectionFactor.IsNegative() {
		return &InputError{Field: "part " + p.Name + ": inspection factor", Reason: "cannot be negative"}
	}
	if p.OperationEffort.IsNegative() {
		return &InputError{Field: "part " + p.Name + ": operation effort", Reason: "cannot be negative"}
	}
	if p.Funding.IsNegative() || p.Funding.GreaterThan(one) {
		return &InputError{Field: "part " + p.Name + ": funding factor", Reason: "must be within [0,1], got " + p.Funding.String()}
	}
	return nil
}

// effectivePeriod returns the observation period the part is evaluated
// over. years <= 0 selects the simplified mode, where each part is
// evaluated over its own service life. That mode is a documented
// deviation from VDI 2067, which demands T > 0.
func (p *Part) effectivePeriod(years int) int {
	if years <= 0 {
		return p.ServiceLife
	}
	return years
}

// CalcCapitalAnnuity computes the capital-related annuity A_N_K for
// the observation period, interest factor q and capital price-change
// factor r (VDI 2067 section 8.1.1). It stores the discounted cash
// values of all procurements, the replacement count, the residual
// value and the annuity on the part.
func (p *Part) CalcCapitalAnnuity(years int, q, r decimal.Decimal) error {
	eff := p.effectivePeriod(years)

	a, err := AnnuityFactor(eff, q)
	if err != nil {
		return err
	}

	// Replacements procured within the observation period. A part with
	// ServiceLife == 0 is a one-time expense and is never replaced.
	n := 0
	if p.ServiceLife > 0 {
		n = (eff+p.ServiceLife-1)/p.ServiceLife - 1
	}

	cash := make([]decimal.Decimal, 0, n+1)
	for i := 0; i <= n; i++ {
		exp := decimal.NewFromInt(int64(i * p.ServiceLife))
		cv := p.Invest.Mul(r.Pow(exp)).Div(q.Pow(exp))
		cash = append(cash, cv)
	}

	// Residual value: straight-line depreciation of the last procured
	// unit, priced at its procurement date and discounted back to the
	// start of the observation period.
	rw := decimal.Zero
	if p.ServiceLife > 0 {
		life := decimal.NewFromInt(int64(p.ServiceLife))
		remaining := decimal.NewFromInt(int64((n+1)*p.ServiceLife - eff))
		rw = p.Invest.
			Mul(r.Pow(decimal.NewFromInt(int64(n * p.ServiceLife)))).
			Mul(remaining).Div(life).
			Div(q.Pow(decimal.NewFromInt(int64(eff))))
	}

	// Funding reduces the first procurement only. Invest stays
	// untouched so replacements, the residual value and the
	// operation-related costs are based on the full amount.
	if p.Funding.IsPositive() {
		cash[0] = cash[0].Mul(one.Sub(p.Funding))
	}

	sum := decimal.Zero
	for _, cv := range cash {
		sum = sum.Add(cv)
	}

	p.CashValues = cash
	p.Replacements = n
	p.ResidualValue = rw
	p.CapitalAnnuity = sum.Sub(rw).Mul(a).Neg()
	return nil
}

// CalcOperationAnnuity computes the operation-related annuity A_N_B
// from the operation effort and the maintenance and inspection
// factors (VDI 2067 section 8.1.3). rOperation escalates the labor
// cost, rMaintenance the maintenance and inspection cost; priceOp is
// the labor price per hour.
func (p *Part) CalcOperationAnnuity(years int, q, rOperation, rMaintenance, priceOp decimal.Decimal) error {
	eff := p.effectivePeriod(years)

	a, err := AnnuityFactor(eff, q)
	if err != nil {
		return err
	}

	maint := p.Invest.Mul(p.MaintenanceFactor.Add(p.InspectionFactor)) // first-year maintenance + inspection
	labor := p.OperationEffort.Mul(priceOp)                            // first-year operation

	bOp := CashValueFactor(eff, rOperation, q)
	bMaint := CashValueFactor(eff, rMaintenance, q)

	p.OperationAnnuity = labor.Mul(a).Mul(bOp).Add(maint.Mul(a).Mul(bMaint)).Neg()
	return nil
}
