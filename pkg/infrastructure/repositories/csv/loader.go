// Package csv loads annuity scenarios from CSV files: directly
// specified parts, cost-group rows and cost database selections.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkessler/annuity/pkg/annuity"
	"github.com/mkessler/annuity/pkg/costdb"
)

// Loader handles loading annuity scenario data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadParts loads directly specified parts from a CSV file.
func (l *Loader) LoadParts(filename string) ([]*annuity.Part, error) {
	expectedHeader := []string{"name", "invest", "service_life", "f_inst", "f_w_insp", "f_op", "fund"}
	records, err := readAll(filename, "parts", expectedHeader)
	if err != nil {
		return nil, err
	}

	var parts []*annuity.Part
	for i, record := range records {
		part, err := parsePart(record)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// LoadCostGroups loads cost-group rows from a CSV file. Rows are
// grouped under their group name, keeping the order in which group
// names first appear. An empty price_change field leaves the factor
// unset, which the calculation rejects unless a global override is
// given.
func (l *Loader) LoadCostGroups(filename string) ([]*annuity.CostGroup, error) {
	expectedHeader := []string{"group", "quantity", "price", "price_change"}
	records, err := readAll(filename, "cost groups", expectedHeader)
	if err != nil {
		return nil, err
	}

	var groups []*annuity.CostGroup
	index := make(map[string]int)
	for i, record := range records {
		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("cost groups CSV row %d: group name cannot be empty", i+2)
		}

		row, err := parseCostRow(record)
		if err != nil {
			return nil, fmt.Errorf("cost groups CSV row %d: %w", i+2, err)
		}

		gi, exists := index[name]
		if !exists {
			gi = len(groups)
			index[name] = gi
			groups = append(groups, annuity.NewCostGroup(name))
		}
		groups[gi].Rows = append(groups[gi].Rows, row)
	}
	return groups, nil
}

// LoadSelections loads cost database selections from a CSV file.
func (l *Loader) LoadSelections(filename string) ([]costdb.Selection, error) {
	expectedHeader := []string{"technology", "variant", "component", "size", "fund"}
	records, err := readAll(filename, "selections", expectedHeader)
	if err != nil {
		return nil, err
	}

	var selections []costdb.Selection
	for i, record := range records {
		sel, err := parseSelection(record)
		if err != nil {
			return nil, fmt.Errorf("selections CSV row %d: %w", i+2, err)
		}
		selections = append(selections, sel)
	}
	return selections, nil
}

// readAll opens a CSV file, validates its header and returns the data
// rows.
func readAll(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}

func parsePart(record []string) (*annuity.Part, error) {
	invest, err := decimal.NewFromString(record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid invest %q: %w", record[1], err)
	}
	serviceLife, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid service_life %q: %w", record[2], err)
	}
	fInst, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid f_inst %q: %w", record[3], err)
	}
	fWInsp, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid f_w_insp %q: %w", record[4], err)
	}
	fOp, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid f_op %q: %w", record[5], err)
	}
	fund := decimal.Zero
	if strings.TrimSpace(record[6]) != "" {
		fund, err = decimal.NewFromString(record[6])
		if err != nil {
			return nil, fmt.Errorf("invalid fund %q: %w", record[6], err)
		}
	}
	return annuity.NewFundedPart(strings.TrimSpace(record[0]), invest, serviceLife, fInst, fWInsp, fOp, fund)
}

func parseCostRow(record []string) (annuity.CostRow, error) {
	quantity, err := decimal.NewFromString(record[1])
	if err != nil {
		return annuity.CostRow{}, fmt.Errorf("invalid quantity %q: %w", record[1], err)
	}
	price, err := decimal.NewFromString(record[2])
	if err != nil {
		return annuity.CostRow{}, fmt.Errorf("invalid price %q: %w", record[2], err)
	}

	row := annuity.CostRow{Quantity: quantity, Price: price}
	if strings.TrimSpace(record[3]) != "" {
		r, err := decimal.NewFromString(record[3])
		if err != nil {
			return annuity.CostRow{}, fmt.Errorf("invalid price_change %q: %w", record[3], err)
		}
		row.PriceChange = decimal.NullDecimal{Decimal: r, Valid: true}
	}
	return row, nil
}

func parseSelection(record []string) (costdb.Selection, error) {
	size, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return costdb.Selection{}, fmt.Errorf("invalid size %q: %w", record[3], err)
	}
	fund := decimal.Zero
	if strings.TrimSpace(record[4]) != "" {
		fund, err = decimal.NewFromString(record[4])
		if err != nil {
			return costdb.Selection{}, fmt.Errorf("invalid fund %q: %w", record[4], err)
		}
	}
	return costdb.Selection{
		Technology: strings.TrimSpace(record[0]),
		Variant:    strings.TrimSpace(record[1]),
		Component:  strings.TrimSpace(record[2]),
		Size:       size,
		Fund:       fund,
	}, nil
}
