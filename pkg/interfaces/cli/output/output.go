// Package output renders annuity calculation results as text, JSON or
// CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/mkessler/annuity/pkg/annuity"
)

// Result bundles everything a single calculation run produced.
type Result struct {
	Parts              []*annuity.Part      `json:"parts"`
	Breakdown          *annuity.Breakdown   `json:"breakdown"`
	Invest             decimal.Decimal      `json:"invest"`
	InvestAfterFunding decimal.Decimal      `json:"invest_after_funding"`
	Amortization       annuity.Amortization `json:"amortization"`
	NPV                decimal.Decimal      `json:"npv"`
	Warnings           []string             `json:"warnings,omitempty"`
}

// Generate writes the result in the requested format.
func Generate(w io.Writer, result *Result, format string) error {
	switch format {
	case "text":
		return generateText(w, result)
	case "json":
		return generateJSON(w, result)
	case "csv":
		return generateCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func generateText(w io.Writer, result *Result) error {
	fmt.Fprintf(w, "------------- List of parts -------------\n")
	fmt.Fprintf(w, "%-28s %14s %5s %3s %14s %14s %14s\n",
		"Part", "Invest", "Life", "n", "Residual", "Capital", "Operation")
	for _, p := range result.Parts {
		fmt.Fprintf(w, "%-28s %14s %5d %3d %14s %14s %14s\n",
			p.Name,
			FormatEUR(p.Invest),
			p.ServiceLife,
			p.Replacements,
			FormatEUR(p.ResidualValue),
			FormatEUR(p.CapitalAnnuity),
			FormatEUR(p.OperationAnnuity))
	}
	fmt.Fprintf(w, "-----------------------------------------\n")
	fmt.Fprintf(w, "Total investment costs:    %s\n", FormatEUR(result.Invest))
	if !result.InvestAfterFunding.Equal(result.Invest) {
		fmt.Fprintf(w, "Investment after funding:  %s\n", FormatEUR(result.InvestAfterFunding))
	}

	fmt.Fprintf(w, "--------------- Annuities ---------------\n")
	for _, c := range result.Breakdown.Categories {
		fmt.Fprintf(w, "%-28s %14s\n", c.Name+":", FormatEUR(c.Annuity))
	}
	fmt.Fprintf(w, "-----------------------------------------\n")
	fmt.Fprintf(w, "Total annuity:             %s\n", FormatEUR(result.Breakdown.Total()))
	fmt.Fprintf(w, "Net present value:         %s\n", FormatEUR(result.NPV))
	if result.Amortization.Years.Valid {
		fmt.Fprintf(w, "Amortization time:         %s years\n", result.Amortization.Years.Decimal.StringFixed(1))
	} else {
		fmt.Fprintf(w, "Amortization time:         undefined (no positive return)\n")
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	return nil
}

func generateJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func generateCSV(w io.Writer, result *Result) error {
	writer := csv.NewWriter(w)

	records := make([][]string, 0, len(result.Breakdown.Categories)+6)
	records = append(records, []string{"name", "value"})
	for _, c := range result.Breakdown.Categories {
		records = append(records, []string{c.Name, c.Annuity.StringFixed(2)})
	}
	records = append(records,
		[]string{"Total annuity", result.Breakdown.Total().StringFixed(2)},
		[]string{"Total investment", result.Invest.StringFixed(2)},
		[]string{"Investment after funding", result.InvestAfterFunding.StringFixed(2)},
		[]string{"Net present value", result.NPV.StringFixed(2)},
	)
	if result.Amortization.Years.Valid {
		records = append(records, []string{"Amortization time", result.Amortization.Years.Decimal.StringFixed(2)})
	} else {
		records = append(records, []string{"Amortization time", "undefined"})
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
