// Package commands wires scenario loading, the annuity calculation
// and result output into the CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/mkessler/annuity/pkg/annuity"
	"github.com/mkessler/annuity/pkg/costdb"
	"github.com/mkessler/annuity/pkg/infrastructure/repositories/csv"
	"github.com/mkessler/annuity/pkg/interfaces/cli/output"
)

// Config holds configuration for the annuity command.
type Config struct {
	PartsFile      string // directly specified parts
	GroupsFile     string // cost-group rows
	CostDBFile     string // cost database
	SelectionsFile string // cost database selections

	Years   int     // observation period; 0 selects the simplified per-part mode
	Q       float64 // interest factor
	RAll    float64 // global price-change override; negative means unset
	PriceOp float64 // operation labor price per hour

	PlanningShare float64 // one-time planning cost as a share of the total investment
	OtherShare    float64 // other one-time costs as a share of the total investment

	Format    string
	OutputVia io.Writer // defaults to stdout
	NonStrict bool
	Verbose   bool
	Help      bool
}

// AnnuityCommand handles the main calculation flow.
type AnnuityCommand struct {
	config Config
}

// NewAnnuityCommand creates a new annuity command with the given
// configuration.
func NewAnnuityCommand(config Config) *AnnuityCommand {
	if config.OutputVia == nil {
		config.OutputVia = os.Stdout
	}
	return &AnnuityCommand{config: config}
}

// Execute runs the annuity command.
func (c *AnnuityCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	parts, warnings, err := c.loadParts()
	if err != nil {
		return err
	}

	loader := csv.NewLoader()
	var groups []*annuity.CostGroup
	if c.config.GroupsFile != "" {
		groups, err = loader.LoadCostGroups(c.config.GroupsFile)
		if err != nil {
			return fmt.Errorf("error loading cost groups: %w", err)
		}
	}

	system := annuity.NewSystem()
	for _, p := range parts {
		if err := system.AddPart(p); err != nil {
			return fmt.Errorf("error adding part: %w", err)
		}
	}

	if err := c.addOverheadParts(system); err != nil {
		return err
	}

	params := annuity.DefaultParams()
	params.Years = c.config.Years
	params.Q = decimal.NewFromFloat(c.config.Q)
	params.PriceOp = decimal.NewFromFloat(c.config.PriceOp)
	params.Groups = groups
	if c.config.RAll >= 0 {
		params.RAll = decimal.NullDecimal{Decimal: decimal.NewFromFloat(c.config.RAll), Valid: true}
	}

	breakdown, err := system.CalcAnnuities(params)
	if err != nil {
		return fmt.Errorf("annuity calculation failed: %w", err)
	}
	amortization, err := system.CalcAmortization()
	if err != nil {
		return err
	}
	npv, err := system.CalcNPV()
	if err != nil {
		return err
	}

	result := &output.Result{
		Parts:              system.Parts(),
		Breakdown:          breakdown,
		Invest:             system.CalcInvestment(false),
		InvestAfterFunding: system.CalcInvestment(true),
		Amortization:       amortization,
		NPV:                npv,
		Warnings:           warnings,
	}
	return output.Generate(c.config.OutputVia, result, c.config.Format)
}

// loadParts collects parts from the direct parts file and from cost
// database selections.
func (c *AnnuityCommand) loadParts() ([]*annuity.Part, []string, error) {
	loader := csv.NewLoader()
	var parts []*annuity.Part
	var warnings []string

	if c.config.PartsFile != "" {
		direct, err := loader.LoadParts(c.config.PartsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading parts: %w", err)
		}
		parts = append(parts, direct...)
	}

	if c.config.SelectionsFile != "" {
		db, err := costdb.LoadCSV(c.config.CostDBFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading cost database: %w", err)
		}
		selections, err := loader.LoadSelections(c.config.SelectionsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading selections: %w", err)
		}
		fromDB, dbWarnings, err := db.BuildParts(selections, !c.config.NonStrict)
		if err != nil {
			return nil, nil, fmt.Errorf("error building parts from cost database: %w", err)
		}
		parts = append(parts, fromDB...)
		warnings = append(warnings, dbWarnings...)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.OutputVia, "Loaded %d parts\n", len(parts))
		for _, warning := range warnings {
			fmt.Fprintf(c.config.OutputVia, "Warning: %s\n", warning)
		}
	}
	return parts, warnings, nil
}

// addOverheadParts adds percentage-based one-time parts for planning
// and other costs, derived from the investment of the loaded parts.
func (c *AnnuityCommand) addOverheadParts(system *annuity.System) error {
	invest := system.CalcInvestment(false)

	add := func(name string, share float64) error {
		if share <= 0 {
			return nil
		}
		p, err := annuity.NewPart(name, invest.Mul(decimal.NewFromFloat(share)), 0,
			decimal.Zero, decimal.Zero, decimal.Zero)
		if err != nil {
			return fmt.Errorf("error adding %s overhead: %w", name, err)
		}
		return system.AddPart(p)
	}

	if err := add("Planning", c.config.PlanningShare); err != nil {
		return err
	}
	return add("Other", c.config.OtherShare)
}

func (c *AnnuityCommand) validateInputs() error {
	if c.config.PartsFile == "" && c.config.SelectionsFile == "" {
		return fmt.Errorf("either a parts file or a selections file is required")
	}
	if c.config.SelectionsFile != "" && c.config.CostDBFile == "" {
		return fmt.Errorf("selections require a cost database file")
	}
	if c.config.Years < 0 {
		return fmt.Errorf("observation period cannot be negative, got %d", c.config.Years)
	}
	if c.config.Q <= 0 {
		return fmt.Errorf("interest factor must be positive, got %v", c.config.Q)
	}
	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	return nil
}

func (c *AnnuityCommand) showHelp() {
	fmt.Fprint(c.config.OutputVia, `annuity - economic efficiency calculation after VDI 2067

The system is assembled from parts given directly (-parts) and/or
selected from a cost database (-costdb together with -selections).
Demand-related costs, other costs and proceeds are given as cost-group
rows (-groups). The categorized annuities, investment totals,
amortization time and net present value are written in the chosen
format.

Input files:
  -parts file.csv       columns: name,invest,service_life,f_inst,f_w_insp,f_op,fund
  -groups file.csv      columns: group,quantity,price,price_change
  -costdb file.csv      columns: technology,variant,component,factor,exponent,
                        min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op
  -selections file.csv  columns: technology,variant,component,size,fund

Calculation:
  -T years              observation period (0: evaluate each part over
                        its own service life, a deviation from VDI 2067)
  -q factor             interest factor, e.g. 1.07
  -r-all factor         override every price-change factor (negative: off)
  -price-op price       operation labor price per hour
  -planning-share s     add one-time planning costs as a share of the investment
  -other-share s        add other one-time costs as a share of the investment

Output:
  -format text|json|csv
  -non-strict           skip selections without a database record
  -verbose
`)
}
