package annuity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default category names of the part-derived annuities.
const (
	DefaultCapitalCategory   = "Capital-related costs"
	DefaultOperationCategory = "Operation-related costs"
)

// Params holds the inputs of a full annuity calculation. Empty
// category names select the defaults; the Omit flags drop the
// corresponding category from the breakdown.
type Params struct {
	Years int             // T, observation period; <= 0 selects the simplified per-part mode
	Q     decimal.Decimal // interest factor

	RCapital     decimal.Decimal     // r_K, price-change factor for capital costs
	ROperation   decimal.Decimal     // r_B, price-change factor for operation labor
	RMaintenance decimal.Decimal     // r_I, price-change factor for maintenance and inspection
	RAll         decimal.NullDecimal // overrides every other price-change factor when valid and >= 0

	PriceOp decimal.Decimal // operation labor price per hour

	Groups []*CostGroup // named cost groups, calculated in order

	CapitalCategory   string
	OperationCategory string
	OmitCapital       bool
	OmitOperation     bool
}

// DefaultParams returns the parameters of the VDI 2067 Table B1
// example: 30 years at q = 1.07, with the table's price-change
// factors and a labor price of 30 per hour.
func DefaultParams() Params {
	return Params{
		Years:        30,
		Q:            decimal.NewFromFloat(1.07),
		RCapital:     decimal.NewFromFloat(1.03),
		ROperation:   decimal.NewFromFloat(1.02),
		RMaintenance: decimal.NewFromFloat(1.03),
		PriceOp:      decimal.NewFromInt(30),
	}
}

// Category is one named line of the categorized annuity result.
type Category struct {
	Name    string          `json:"name"`
	Annuity decimal.Decimal `json:"annuity"`
}

// Breakdown is the ordered, categorized annuity result of a system
// calculation: capital, operation, then the cost groups in caller
// order. Costs are negative, proceeds positive.
type Breakdown struct {
	Categories []Category `json:"categories"`
}

// Annuity returns the annuity of a named category.
func (b *Breakdown) Annuity(name string) (decimal.Decimal, bool) {
	for _, c := range b.Categories {
		if c.Name == name {
			return c.Annuity, true
		}
	}
	return decimal.Decimal{}, false
}

// Total sums the annuities of all categories in the breakdown.
func (b *Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.Annuity)
	}
	return total
}

// Amortization relates the invested capital to the yearly return on
// investment. Years is invalid when the return is not positive: such
// a system never amortizes, which is a reported outcome, not an
// error.
type Amortization struct {
	TotalInvest    decimal.Decimal     `json:"total_invest"`
	ReturnOnInvest decimal.Decimal     `json:"return_on_invest"`
	Years          decimal.NullDecimal `json:"years"`
}

// System owns the ordered collection of parts and produces the
// categorized annuity result. Results and part-level computed fields
// are only valid relative to the most recent CalcAnnuities call;
// adding or removing parts invalidates them until recalculated.
// A System is not safe for concurrent use.
type System struct {
	parts []*Part

	calculated bool
	years      int
	q          decimal.Decimal
	capital    decimal.Decimal // capital annuity over all parts, including omitted categories
	operation  decimal.Decimal // operation annuity over all parts
	total      decimal.Decimal // capital + operation + all group totals
	breakdown  Breakdown
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{}
}

// AddPart appends a part to the system and invalidates any previously
// calculated results.
func (s *System) AddPart(p *Part) error {
	if p == nil {
		return &InputError{Field: "part", Reason: "cannot be nil"}
	}
	if err := p.validate(); err != nil {
		return err
	}
	s.parts = append(s.parts, p)
	s.calculated = false
	return nil
}

// RemovePart removes the first part with the given name and reports
// whether one was found. Removal invalidates calculated results.
func (s *System) RemovePart(name string) bool {
	for i, p := range s.parts {
		if p.Name == name {
			s.parts = append(s.parts[:i], s.parts[i+1:]...)
			s.calculated = false
			return true
		}
	}
	return false
}

// Parts returns the parts of the system in insertion order.
func (s *System) Parts() []*Part {
	return s.parts
}

// CalcAnnuities runs the full annuity calculation (VDI 2067 section
// 8): the capital- and operation-related annuity of every part, then
// every cost group, merged into one categorized breakdown. The
// breakdown and the parameters are stored on the system for the
// derived metrics. Any part- or group-level error aborts the
// calculation and leaves the system without a valid result.
func (s *System) CalcAnnuities(params Params) (*Breakdown, error) {
	s.calculated = false

	override := params.RAll
	if override.Valid && override.Decimal.IsNegative() {
		// A negative override means "ignore", like an unset value.
		override = decimal.NullDecimal{}
	}

	rCapital := params.RCapital
	rOperation := params.ROperation
	rMaintenance := params.RMaintenance
	if override.Valid {
		rCapital = override.Decimal
		rOperation = override.Decimal
		rMaintenance = override.Decimal
	}

	capital := decimal.Zero
	operation := decimal.Zero
	for _, p := range s.parts {
		if err := p.CalcCapitalAnnuity(params.Years, params.Q, rCapital); err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}
		if err := p.CalcOperationAnnuity(params.Years, params.Q, rOperation, rMaintenance, params.PriceOp); err != nil {
			return nil, fmt.Errorf("part %q: %w", p.Name, err)
		}
		capital = capital.Add(p.CapitalAnnuity)
		operation = operation.Add(p.OperationAnnuity)
	}

	total := capital.Add(operation)

	categories := make([]Category, 0, len(params.Groups)+2)
	if !params.OmitCapital {
		name := params.CapitalCategory
		if name == "" {
			name = DefaultCapitalCategory
		}
		categories = append(categories, Category{Name: name, Annuity: capital})
	}
	if !params.OmitOperation {
		name := params.OperationCategory
		if name == "" {
			name = DefaultOperationCategory
		}
		categories = append(categories, Category{Name: name, Annuity: operation})
	}

	for _, g := range params.Groups {
		if err := g.calc(params.Years, params.Q, override); err != nil {
			return nil, err
		}
		categories = append(categories, Category{Name: g.Name, Annuity: g.Total})
		total = total.Add(g.Total)
	}

	s.years = params.Years
	s.q = params.Q
	s.capital = capital
	s.operation = operation
	s.total = total
	s.breakdown = Breakdown{Categories: categories}
	s.calculated = true
	return &s.breakdown, nil
}

// CalcAnnuity is a wrapper around CalcAnnuities returning the total
// annuity of the system (VDI 2067 section 8.3).
func (s *System) CalcAnnuity(params Params) (decimal.Decimal, error) {
	if _, err := s.CalcAnnuities(params); err != nil {
		return decimal.Decimal{}, err
	}
	return s.total, nil
}

// CalcInvestment sums the investment amounts of all parts. With
// includeFunding the funded fraction of each part is deducted first.
func (s *System) CalcInvestment(includeFunding bool) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range s.parts {
		if includeFunding {
			sum = sum.Add(p.Invest.Mul(one.Sub(p.Funding)))
		} else {
			sum = sum.Add(p.Invest)
		}
	}
	return sum
}

// CalcAmortization derives the amortization time from the last
// calculated annuities. The total-annuity and capital-annuity values
// used include categories omitted from the breakdown.
func (s *System) CalcAmortization() (Amortization, error) {
	if !s.calculated {
		return Amortization{}, &InputError{Field: "amortization", Reason: "annuities have not been calculated"}
	}
	totalInvest := s.capital.Neg().Mul(decimal.NewFromInt(int64(s.years)))
	returnOnInvest := s.total.Sub(s.capital)

	am := Amortization{TotalInvest: totalInvest, ReturnOnInvest: returnOnInvest}
	if returnOnInvest.IsPositive() {
		am.Years = decimal.NullDecimal{Decimal: totalInvest.Div(returnOnInvest), Valid: true}
	}
	return am, nil
}

// CalcNPV derives the net present value of the total annuity over the
// observation period of the last CalcAnnuities call.
func (s *System) CalcNPV() (decimal.Decimal, error) {
	if !s.calculated {
		return decimal.Decimal{}, &InputError{Field: "net present value", Reason: "annuities have not been calculated"}
	}
	a, err := AnnuityFactor(s.years, s.q)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return s.total.Div(a), nil
}
