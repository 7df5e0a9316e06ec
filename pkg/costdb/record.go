// Package costdb supplies annuity parts from a cost database: a keyed
// table of component records whose investment cost scales with the
// installed size through a fitted regression, the way spreadsheet
// cost databases in heating-system planning are organized.
package costdb

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mkessler/annuity/pkg/annuity"
)

// Key identifies a database record.
type Key struct {
	Technology string
	Variant    string
	Component  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Technology, k.Variant, k.Component)
}

// Record is one cost database entry. The investment cost of a
// component of a given size follows the regression
// A_0 = Factor * size^Exponent * size, fitted over sizes within
// [MinSize, MaxSize].
type Record struct {
	Technology string
	Variant    string
	Component  string

	Factor   float64 // regression factor
	Exponent float64 // regression exponent
	MinSize  float64 // lower validity bound of the regression
	MaxSize  float64 // upper validity bound of the regression
	Unit     string  // reference unit of the size, e.g. kW or kWh

	ServiceLife       int             // T_N in years
	MaintenanceFactor decimal.Decimal // f_Inst
	InspectionFactor  decimal.Decimal // f_W_Insp
	OperationEffort   decimal.Decimal // f_Op in h/a
}

// Key returns the lookup key of the record.
func (rec *Record) Key() Key {
	return Key{Technology: rec.Technology, Variant: rec.Variant, Component: rec.Component}
}

// SizeInRange reports whether the regression is valid for the given
// size. Size zero is always acceptable: it marks a cost-free
// placeholder.
func (rec *Record) SizeInRange(size float64) bool {
	if size <= 0 {
		return true
	}
	return size >= rec.MinSize && size <= rec.MaxSize
}

// Invest evaluates the cost regression for the given size. A size of
// zero or below yields zero cost.
func (rec *Record) Invest(size float64) decimal.Decimal {
	if size <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(rec.Factor * math.Pow(size, rec.Exponent) * size)
}

// NewPart builds a part from the record for a component of the given
// size, with the funding fraction applied. A size of zero builds a
// cost-free placeholder part.
func (rec *Record) NewPart(size float64, fund decimal.Decimal) (*annuity.Part, error) {
	opEffort := rec.OperationEffort
	if size <= 0 {
		opEffort = decimal.Zero
	}

	p, err := annuity.NewFundedPart(rec.Key().String(), rec.Invest(size), rec.ServiceLife,
		rec.MaintenanceFactor, rec.InspectionFactor, opEffort, fund)
	if err != nil {
		return nil, err
	}
	p.Size = decimal.NullDecimal{Decimal: decimal.NewFromFloat(size), Valid: true}
	p.Unit = rec.Unit
	return p, nil
}
