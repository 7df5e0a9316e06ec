package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mkessler/annuity/pkg/interfaces/cli/commands"
)

func main() {
	var (
		partsFile      = flag.String("parts", "", "Path to parts CSV file")
		groupsFile     = flag.String("groups", "", "Path to cost-group rows CSV file")
		costDBFile     = flag.String("costdb", "", "Path to cost database CSV file")
		selectionsFile = flag.String("selections", "", "Path to cost database selections CSV file")

		years         = flag.Int("T", 30, "Observation period in years (0: simplified per-part mode)")
		q             = flag.Float64("q", 1.07, "Interest factor")
		rAll          = flag.Float64("r-all", -1, "Override all price-change factors (negative: disabled)")
		priceOp       = flag.Float64("price-op", 30, "Operation labor price per hour")
		planningShare = flag.Float64("planning-share", 0, "One-time planning costs as share of the investment")
		otherShare    = flag.Float64("other-share", 0, "Other one-time costs as share of the investment")

		format    = flag.String("format", "text", "Output format: text, json, csv")
		nonStrict = flag.Bool("non-strict", false, "Skip selections without a cost database record")
		verbose   = flag.Bool("verbose", false, "Enable verbose output")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		PartsFile:      *partsFile,
		GroupsFile:     *groupsFile,
		CostDBFile:     *costDBFile,
		SelectionsFile: *selectionsFile,
		Years:          *years,
		Q:              *q,
		RAll:           *rAll,
		PriceOp:        *priceOp,
		PlanningShare:  *planningShare,
		OtherShare:     *otherShare,
		Format:         *format,
		NonStrict:      *nonStrict,
		Verbose:        *verbose,
		Help:           *help,
	}

	cmd := commands.NewAnnuityCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
