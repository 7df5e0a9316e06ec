package costdb

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkessler/annuity/pkg/annuity"
)

// NotFoundError reports a lookup key with no database record.
type NotFoundError struct {
	Key Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cost database record not found: %s", e.Key)
}

// Database is an in-memory cost database with keyed lookup.
type Database struct {
	records []Record
	index   map[Key]int
}

// New creates an empty database.
func New() *Database {
	return &Database{index: make(map[Key]int)}
}

// Add stores a record; a duplicate key is an error.
func (db *Database) Add(rec Record) error {
	key := rec.Key()
	if _, exists := db.index[key]; exists {
		return fmt.Errorf("duplicate cost database record: %s", key)
	}
	db.index[key] = len(db.records)
	db.records = append(db.records, rec)
	return nil
}

// Lookup returns the record for a (technology, variant, component)
// key.
func (db *Database) Lookup(technology, variant, component string) (*Record, error) {
	key := Key{Technology: technology, Variant: variant, Component: component}
	i, exists := db.index[key]
	if !exists {
		return nil, &NotFoundError{Key: key}
	}
	return &db.records[i], nil
}

// Records returns all records in insertion order.
func (db *Database) Records() []Record {
	return db.records
}

// Len returns the number of records.
func (db *Database) Len() int {
	return len(db.records)
}

// NewPart looks up a record and builds a part of the given size from
// it.
func (db *Database) NewPart(technology, variant, component string, size float64, fund decimal.Decimal) (*annuity.Part, error) {
	rec, err := db.Lookup(technology, variant, component)
	if err != nil {
		return nil, err
	}
	return rec.NewPart(size, fund)
}

// Selection names one database record together with the installed
// size and funding of the planned component.
type Selection struct {
	Technology string
	Variant    string
	Component  string
	Size       float64
	Fund       decimal.Decimal
}

// BuildParts resolves selections against the database in order. In
// strict mode a missing record fails the whole build. Otherwise
// missing records are skipped and reported in the returned warning
// list, alongside sizes outside a record's validity range (which
// never fail the build).
func (db *Database) BuildParts(selections []Selection, strict bool) ([]*annuity.Part, []string, error) {
	parts := make([]*annuity.Part, 0, len(selections))
	var warnings []string

	for _, sel := range selections {
		rec, err := db.Lookup(sel.Technology, sel.Variant, sel.Component)
		if err != nil {
			if strict {
				return nil, nil, err
			}
			warnings = append(warnings, fmt.Sprintf("skipped: %v", err))
			continue
		}

		if !rec.SizeInRange(sel.Size) {
			warnings = append(warnings, fmt.Sprintf(
				"size %v %s of %s is outside the validity range [%v, %v]",
				sel.Size, rec.Unit, rec.Key(), rec.MinSize, rec.MaxSize))
		}

		p, err := rec.NewPart(sel.Size, sel.Fund)
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, p)
	}
	return parts, warnings, nil
}
