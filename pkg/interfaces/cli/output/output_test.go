package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkessler/annuity/pkg/annuity"
)

func TestFormatEUR(t *testing.T) {
	testCases := []struct {
		value float64
		want  string
	}{
		{0, "0.00"},
		{5632.5449, "5 632.54"},
		{-5632.5449, "-5 632.54"},
		{1234567.891, "1 234 567.89"},
		{-0.061, "-0.06"},
		{999.999, "1 000.00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatEUR(decimal.NewFromFloat(tc.value)), "value %v", tc.value)
	}
}

func testResult(t *testing.T) *Result {
	t.Helper()
	s := annuity.NewSystem()
	p, err := annuity.NewPart("oil boiler", decimal.NewFromInt(6045), 20,
		decimal.NewFromFloat(0.01), decimal.NewFromFloat(0.025), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, s.AddPart(p))

	params := annuity.DefaultParams()
	params.Groups = []*annuity.CostGroup{
		annuity.NewCostGroup("Demand-related costs", annuity.CostRow{
			Quantity:    decimal.NewFromInt(14012),
			Price:       decimal.NewFromFloat(-0.06),
			PriceChange: decimal.NullDecimal{Decimal: decimal.NewFromFloat(1.03), Valid: true},
		}),
	}

	breakdown, err := s.CalcAnnuities(params)
	require.NoError(t, err)
	am, err := s.CalcAmortization()
	require.NoError(t, err)
	npv, err := s.CalcNPV()
	require.NoError(t, err)

	return &Result{
		Parts:              s.Parts(),
		Breakdown:          breakdown,
		Invest:             s.CalcInvestment(false),
		InvestAfterFunding: s.CalcInvestment(true),
		Amortization:       am,
		NPV:                npv,
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, testResult(t), "text"))

	text := buf.String()
	assert.Contains(t, text, "oil boiler")
	assert.Contains(t, text, "Capital-related costs:")
	assert.Contains(t, text, "Total annuity:")
	assert.Contains(t, text, "undefined (no positive return)")
	// No funding anywhere: the funded figure is omitted.
	assert.NotContains(t, text, "Investment after funding")
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, testResult(t), "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "breakdown")
	assert.Contains(t, decoded, "npv")
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, testResult(t), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "name,value", lines[0])
	assert.Contains(t, buf.String(), "Capital-related costs")
	assert.Contains(t, buf.String(), "Amortization time,undefined")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, testResult(t), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
