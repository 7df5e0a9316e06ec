package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	parts := writeFile(t, dir, "parts.csv", `name,invest,service_life,f_inst,f_w_insp,f_op,fund
oil boiler,6045,20,0.01,0.025,10,
burner,2000,12,0.12,0,0,
`)
	groups := writeFile(t, dir, "groups.csv", `group,quantity,price,price_change
Demand-related costs,14012,-0.06,1.03
Demand-related costs,417,-0.20,1.03
`)

	return Config{
		PartsFile:  parts,
		GroupsFile: groups,
		Years:      30,
		Q:          1.07,
		RAll:       -1,
		PriceOp:    30,
		Format:     "text",
	}
}

func TestAnnuityCommand_Execute(t *testing.T) {
	var buf bytes.Buffer
	config := testConfig(t)
	config.OutputVia = &buf

	cmd := NewAnnuityCommand(config)
	require.NoError(t, cmd.Execute(context.Background()))

	text := buf.String()
	assert.Contains(t, text, "oil boiler")
	assert.Contains(t, text, "Capital-related costs:")
	assert.Contains(t, text, "Demand-related costs:")
	assert.Contains(t, text, "Total annuity:")
}

func TestAnnuityCommand_Execute_JSON(t *testing.T) {
	var buf bytes.Buffer
	config := testConfig(t)
	config.Format = "json"
	config.OutputVia = &buf

	cmd := NewAnnuityCommand(config)
	require.NoError(t, cmd.Execute(context.Background()))
	assert.Contains(t, buf.String(), `"breakdown"`)
}

func TestAnnuityCommand_Execute_CostDatabase(t *testing.T) {
	dir := t.TempDir()
	costDB := writeFile(t, dir, "costdb.csv", `technology,variant,component,factor,exponent,min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op
heat pump,air-water,complete,1200,-0.4,10,500,kW,18,0.015,0.01,5
`)
	selections := writeFile(t, dir, "selections.csv", `technology,variant,component,size,fund
heat pump,air-water,complete,50,0.3
electrolysis,PEM,stack,100,
`)
	groups := writeFile(t, dir, "groups.csv", `group,quantity,price,price_change
Demand-related costs,5410,-20,1.03
`)

	config := Config{
		CostDBFile:     costDB,
		SelectionsFile: selections,
		GroupsFile:     groups,
		Years:          20,
		Q:              1.03,
		RAll:           -1,
		PriceOp:        30,
		PlanningShare:  0.15,
		Format:         "text",
	}

	// Strict mode fails on the unknown electrolysis record.
	var buf bytes.Buffer
	config.OutputVia = &buf
	cmd := NewAnnuityCommand(config)
	require.Error(t, cmd.Execute(context.Background()))

	// Non-strict mode skips it and reports a warning.
	buf.Reset()
	config.NonStrict = true
	cmd = NewAnnuityCommand(config)
	require.NoError(t, cmd.Execute(context.Background()))

	text := buf.String()
	assert.Contains(t, text, "heat pump/air-water/complete")
	assert.Contains(t, text, "Planning")
	assert.Contains(t, text, "Warning:")
	assert.Contains(t, text, "Investment after funding", "funded selection must show the funded total")
}

func TestAnnuityCommand_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"no inputs", func(c *Config) { c.PartsFile = ""; c.SelectionsFile = "" }, "parts file or a selections file"},
		{"selections without db", func(c *Config) { c.SelectionsFile = "sel.csv"; c.CostDBFile = "" }, "cost database"},
		{"negative period", func(c *Config) { c.Years = -1 }, "observation period"},
		{"zero interest factor", func(c *Config) { c.Q = 0 }, "interest factor"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "output format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := testConfig(t)
			config.OutputVia = &bytes.Buffer{}
			tc.mutate(&config)

			err := NewAnnuityCommand(config).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestAnnuityCommand_Help(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewAnnuityCommand(Config{Help: true, OutputVia: &buf})
	require.NoError(t, cmd.Execute(context.Background()))
	assert.Contains(t, buf.String(), "VDI 2067")
}
