package costdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() Record {
	return Record{
		Technology:        "heat pump",
		Variant:           "air-water",
		Component:         "complete",
		Factor:            1200,
		Exponent:          -0.4,
		MinSize:           10,
		MaxSize:           500,
		Unit:              "kW",
		ServiceLife:       18,
		MaintenanceFactor: decimal.NewFromFloat(0.015),
		InspectionFactor:  decimal.NewFromFloat(0.01),
		OperationEffort:   decimal.NewFromInt(5),
	}
}

func TestRecord_Invest(t *testing.T) {
	rec := testRecord()

	// A_0 = factor * size^exponent * size
	assert.InDelta(t, 12547.674631095279, rec.Invest(50).InexactFloat64(), 1e-6)
	assert.True(t, rec.Invest(0).IsZero(), "size 0 must be cost-free")
	assert.True(t, rec.Invest(-1).IsZero())
}

func TestRecord_SizeInRange(t *testing.T) {
	rec := testRecord()

	assert.True(t, rec.SizeInRange(10))
	assert.True(t, rec.SizeInRange(500))
	assert.True(t, rec.SizeInRange(0), "placeholder size is always in range")
	assert.False(t, rec.SizeInRange(5))
	assert.False(t, rec.SizeInRange(501))
}

func TestRecord_NewPart(t *testing.T) {
	rec := testRecord()

	p, err := rec.NewPart(50, decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	assert.Equal(t, "heat pump/air-water/complete", p.Name)
	assert.Equal(t, 18, p.ServiceLife)
	assert.InDelta(t, 12547.674631095279, p.Invest.InexactFloat64(), 1e-6)
	assert.True(t, p.Funding.Equal(decimal.NewFromFloat(0.5)))
	require.True(t, p.Size.Valid)
	assert.True(t, p.Size.Decimal.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "kW", p.Unit)
}

func TestRecord_NewPart_Placeholder(t *testing.T) {
	rec := testRecord()

	p, err := rec.NewPart(0, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, p.Invest.IsZero())
	assert.True(t, p.OperationEffort.IsZero(), "placeholders have no operation effort")
	// Maintenance factors stay on the part but apply to a zero invest.
	assert.True(t, p.MaintenanceFactor.Equal(rec.MaintenanceFactor))
}

func TestDatabase_Lookup(t *testing.T) {
	db := New()
	require.NoError(t, db.Add(testRecord()))

	rec, err := db.Lookup("heat pump", "air-water", "complete")
	require.NoError(t, err)
	assert.Equal(t, "heat pump", rec.Technology)

	_, err = db.Lookup("heat pump", "brine-water", "complete")
	require.Error(t, err)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "brine-water", notFound.Key.Variant)
}

func TestDatabase_Add_Duplicate(t *testing.T) {
	db := New()
	require.NoError(t, db.Add(testRecord()))
	require.Error(t, db.Add(testRecord()))
	assert.Equal(t, 1, db.Len())
}

func TestDatabase_BuildParts(t *testing.T) {
	db := New()
	require.NoError(t, db.Add(testRecord()))

	selections := []Selection{
		{Technology: "heat pump", Variant: "air-water", Component: "complete", Size: 50},
		{Technology: "heat pump", Variant: "air-water", Component: "complete", Size: 800}, // out of range
		{Technology: "electrolysis", Variant: "PEM", Component: "stack", Size: 100},       // unknown
	}

	// Strict mode fails on the unknown record.
	_, _, err := db.BuildParts(selections, true)
	require.Error(t, err)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))

	// Non-strict mode skips it and reports both findings.
	parts, warnings, err := db.BuildParts(selections, false)
	require.NoError(t, err)
	assert.Len(t, parts, 2)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "validity range")
	assert.Contains(t, warnings[1], "skipped")
}

func TestLoadCSV(t *testing.T) {
	content := `technology,variant,component,factor,exponent,min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op
heat pump,air-water,complete,1200,-0.4,10,500,kW,18,0.015,0.01,5
solar thermal,flat plate,collector,950,-0.2,5,200,m2,20,0.01,0.005,0
`
	path := writeTempCSV(t, content)

	db, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	rec, err := db.Lookup("solar thermal", "flat plate", "collector")
	require.NoError(t, err)
	assert.Equal(t, 20, rec.ServiceLife)
	assert.Equal(t, "m2", rec.Unit)
	assert.True(t, rec.OperationEffort.IsZero())
}

func TestLoadCSV_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errPart string
	}{
		{
			"wrong header",
			"tech,variant,component\nx,y,z\n",
			"header mismatch",
		},
		{
			"missing data rows",
			"technology,variant,component,factor,exponent,min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op\n",
			"at least one data row",
		},
		{
			"bad number",
			"technology,variant,component,factor,exponent,min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op\n" +
				"a,b,c,oops,-0.4,10,500,kW,18,0.015,0.01,5\n",
			"row 2",
		},
		{
			"duplicate key",
			"technology,variant,component,factor,exponent,min_size,max_size,unit,service_life,f_inst,f_w_insp,f_op\n" +
				"a,b,c,1,1,1,2,kW,10,0,0,0\n" +
				"a,b,c,1,1,1,2,kW,10,0,0,0\n",
			"duplicate",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCSV(writeTempCSV(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "costdb.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
