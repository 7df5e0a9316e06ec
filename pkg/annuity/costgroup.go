package annuity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostRow is one (quantity, price) position inside a cost group. The
// sign of the price carries the direction: negative prices are costs,
// positive prices are proceeds.
type CostRow struct {
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	PriceChange decimal.NullDecimal // r, required for every row

	// Computed by the group calculation.
	AnnuityFactor   decimal.Decimal // a
	CashValueFactor decimal.Decimal // b
	Annuity         decimal.Decimal // Quantity * Price * a * b
}

// CostGroup is a named, ordered set of cost rows, e.g. demand-related
// costs, other one-off costs or proceeds. The calculation is the same
// for every group; the name only labels the category in the result.
type CostGroup struct {
	Name  string
	Rows  []CostRow
	Total decimal.Decimal // computed by the group calculation
}

// NewCostGroup creates a named cost group from its rows.
func NewCostGroup(name string, rows ...CostRow) *CostGroup {
	return &CostGroup{Name: name, Rows: rows}
}

// Calc annotates every row with its annuity factor, cash-value factor
// and annuity contribution, and stores the sum on the group. A row
// without a price-change factor is an input error.
func (g *CostGroup) Calc(years int, q decimal.Decimal) error {
	return g.calc(years, q, decimal.NullDecimal{})
}

func (g *CostGroup) calc(years int, q decimal.Decimal, override decimal.NullDecimal) error {
	for i := range g.Rows {
		if !override.Valid && !g.Rows[i].PriceChange.Valid {
			return &InputError{
				Field:  fmt.Sprintf("cost group %q row %d", g.Name, i),
				Reason: "missing price-change factor",
			}
		}
	}

	a, err := AnnuityFactor(years, q)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for i := range g.Rows {
		row := &g.Rows[i]
		r := row.PriceChange.Decimal
		if override.Valid {
			r = override.Decimal
		}
		b := CashValueFactor(years, r, q)
		row.AnnuityFactor = a
		row.CashValueFactor = b
		row.Annuity = row.Quantity.Mul(row.Price).Mul(a).Mul(b)
		total = total.Add(row.Annuity)
	}
	g.Total = total
	return nil
}
