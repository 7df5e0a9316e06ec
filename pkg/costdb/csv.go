package costdb

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"technology", "variant", "component",
	"factor", "exponent", "min_size", "max_size", "unit",
	"service_life", "f_inst", "f_w_insp", "f_op",
}

// LoadCSV loads a cost database from a CSV file.
func LoadCSV(filename string) (*Database, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open cost database %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read cost database CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("cost database CSV must have header and at least one data row")
	}
	if !headerMatches(records[0], csvHeader) {
		return nil, fmt.Errorf("cost database CSV header mismatch. Expected: %v, Got: %v", csvHeader, records[0])
	}

	db := New()
	for i, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("cost database CSV row %d: expected %d columns, got %d", i+2, len(csvHeader), len(record))
		}
		rec, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("cost database CSV row %d: %w", i+2, err)
		}
		if err := db.Add(rec); err != nil {
			return nil, fmt.Errorf("cost database CSV row %d: %w", i+2, err)
		}
	}
	return db, nil
}

func headerMatches(header, expected []string) bool {
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

func parseRecord(record []string) (Record, error) {
	factor, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid factor %q: %w", record[3], err)
	}
	exponent, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid exponent %q: %w", record[4], err)
	}
	minSize, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid min_size %q: %w", record[5], err)
	}
	maxSize, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid max_size %q: %w", record[6], err)
	}
	serviceLife, err := strconv.Atoi(record[8])
	if err != nil {
		return Record{}, fmt.Errorf("invalid service_life %q: %w", record[8], err)
	}
	fInst, err := decimal.NewFromString(record[9])
	if err != nil {
		return Record{}, fmt.Errorf("invalid f_inst %q: %w", record[9], err)
	}
	fWInsp, err := decimal.NewFromString(record[10])
	if err != nil {
		return Record{}, fmt.Errorf("invalid f_w_insp %q: %w", record[10], err)
	}
	fOp, err := decimal.NewFromString(record[11])
	if err != nil {
		return Record{}, fmt.Errorf("invalid f_op %q: %w", record[11], err)
	}

	return Record{
		Technology:        strings.TrimSpace(record[0]),
		Variant:           strings.TrimSpace(record[1]),
		Component:         strings.TrimSpace(record[2]),
		Factor:            factor,
		Exponent:          exponent,
		MinSize:           minSize,
		MaxSize:           maxSize,
		Unit:              strings.TrimSpace(record[7]),
		ServiceLife:       serviceLife,
		MaintenanceFactor: fInst,
		InspectionFactor:  fWInsp,
		OperationEffort:   fOp,
	}, nil
}
