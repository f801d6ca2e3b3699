package report_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotreat/portal-api/internal/application/report"
	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
)

const biogasPayload = `{
	"flow": 100,
	"scod": 5000,
	"efficiency": 80,
	"fuelType": "Diesel",
	"results": {
		"biogasGen": 320.4,
		"removedKgDay": 400,
		"totalKcal": 1500000,
		"fuelSavings": 128.5,
		"fuelUnit": "L",
		"fuelName": "Diesel"
	}
}`

func decodeResult(t *testing.T, payload string) report.CalculatorResult {
	t.Helper()
	var res report.CalculatorResult
	require.NoError(t, json.Unmarshal([]byte(payload), &res))
	return res
}

// tableOf returns the table block of a section that is laid out as
// [heading, table].
func tableOf(t *testing.T, sec entity.Section) [][]entity.Cell {
	t.Helper()
	require.Len(t, sec.Blocks, 2)
	assert.Equal(t, entity.BlockHeading, sec.Blocks[0].Kind)
	require.Equal(t, entity.BlockTable, sec.Blocks[1].Kind)
	return sec.Blocks[1].Table
}

func cellText(table [][]entity.Cell, row int) (label, value string) {
	return table[row][0].Text, table[row][1].Text
}

func TestBuildModel_Biogas(t *testing.T) {
	res := decodeResult(t, biogasPayload)

	model, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)

	assert.Equal(t, "Biogas Generation Report", model.Title)
	require.Len(t, model.Sections, 2)

	inputs := tableOf(t, model.Sections[0])
	assert.Equal(t, "Input Parameters", model.Sections[0].Blocks[0].Text)
	require.Len(t, inputs, 5, "header band plus four input rows")
	assert.True(t, inputs[0][0].Header)
	assert.True(t, inputs[0][1].Header)

	label, value := cellText(inputs, 1)
	assert.Equal(t, "Effluent Flow", label)
	assert.Equal(t, "100.0 m³/day", value)
	_, value = cellText(inputs, 2)
	assert.Equal(t, "5000 mg/L", value)
	_, value = cellText(inputs, 3)
	assert.Equal(t, "80 %", value)
	label, value = cellText(inputs, 4)
	assert.Equal(t, "Fuel Replaced", label)
	assert.Equal(t, "Diesel", value)

	results := tableOf(t, model.Sections[1])
	assert.Equal(t, "Calculated Results", model.Sections[1].Blocks[0].Text)
	require.Len(t, results, 5)

	_, value = cellText(results, 1)
	assert.Equal(t, "320.4 m³/day", value)
	_, value = cellText(results, 2)
	assert.Equal(t, "400 kg/day", value)
	_, value = cellText(results, 3)
	assert.Equal(t, "1500000 kcal/day", value)

	// The fuel row pulls both its unit and its label qualifier from siblings.
	label, value = cellText(results, 4)
	assert.Equal(t, "Fuel Savings (Diesel)", label)
	assert.Equal(t, "128.5 L", value)
}

func TestBuildModel_NutrientDosing(t *testing.T) {
	res := report.CalculatorResult{
		Params: map[string]report.Value{
			"flow":       report.Num(250),
			"cod":        report.Num(1800),
			"nitrogen":   report.Num(12.5),
			"phosphorus": report.Num(3.2),
		},
		Results: map[string]report.Value{
			"ureaKgDay":   report.Num(41.7),
			"dapKgDay":    report.Num(9.3),
			"aclKgDay":    report.Num(73.05),
			"dapAltKgDay": report.Num(9.3),
		},
	}

	model, err := report.BuildModel(report.KindNutrientDosing, res)
	require.NoError(t, err)

	assert.Equal(t, "Nutrient Dosing Report", model.Title)
	require.Len(t, model.Sections, 3, "inputs plus one section per dosing option")
	assert.Equal(t, "Dosing Option 1 — Urea + DAP", model.Sections[1].Blocks[0].Text)
	assert.Equal(t, "Dosing Option 2 — Ammonium Chloride + DAP", model.Sections[2].Blocks[0].Text)

	option2 := tableOf(t, model.Sections[2])
	_, value := cellText(option2, 1)
	assert.Equal(t, "73.1 kg/day", value, "values are rounded to the row precision")
}

func TestBuildModel_Deterministic(t *testing.T) {
	res := decodeResult(t, biogasPayload)

	first, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)
	second, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildModel_WithoutResultsRendersInputsOnly(t *testing.T) {
	res := decodeResult(t, `{"flow": 100, "scod": 5000, "efficiency": 80, "fuelType": "Diesel"}`)

	model, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)
	require.Len(t, model.Sections, 1)
	assert.Equal(t, "Input Parameters", model.Sections[0].Blocks[0].Text)
}

func TestBuildModel_MissingValuesRenderPlaceholder(t *testing.T) {
	res := decodeResult(t, `{"flow": 100}`)

	model, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)

	inputs := tableOf(t, model.Sections[0])
	_, value := cellText(inputs, 2)
	assert.Equal(t, "-", value, "missing scod")
	_, value = cellText(inputs, 4)
	assert.Equal(t, "-", value, "missing fuelType")
}

func TestBuildModel_StringInNumericRowShownRaw(t *testing.T) {
	res := report.CalculatorResult{
		Params: map[string]report.Value{"flow": report.Str("n/a")},
	}

	model, err := report.BuildModel(report.KindBiogas, res)
	require.NoError(t, err)

	inputs := tableOf(t, model.Sections[0])
	_, value := cellText(inputs, 1)
	assert.Equal(t, "n/a", value)
}

func TestBuildModel_UnknownKind(t *testing.T) {
	_, err := report.BuildModel("solar-roi", report.CalculatorResult{})
	assert.ErrorIs(t, err, domain.ErrUnknownReportKind)
}

func TestCalculatorResult_RejectsNonValueTypes(t *testing.T) {
	cases := map[string]string{
		"bool parameter":    `{"flow": true}`,
		"array parameter":   `{"flow": [1, 2]}`,
		"object parameter":  `{"flow": {"v": 1}}`,
		"bool result":       `{"flow": 1, "results": {"biogasGen": false}}`,
		"non-object payload": `[1, 2, 3]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var res report.CalculatorResult
			err := json.Unmarshal([]byte(payload), &res)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCalculatorResult_NullValueIsUnset(t *testing.T) {
	res := decodeResult(t, `{"flow": null, "results": null}`)
	assert.False(t, res.Params["flow"].IsSet())
	assert.False(t, res.HasResults())
}

func TestFilename_FixedPerKind(t *testing.T) {
	name, ok := report.Filename(report.KindBiogas)
	require.True(t, ok)
	assert.Equal(t, "Biogas_Generation_Report.pdf", name)

	name, ok = report.Filename(report.KindNutrientDosing)
	require.True(t, ok)
	assert.Equal(t, "Nutrient_Dosing_Report.pdf", name)

	_, ok = report.Filename("solar-roi")
	assert.False(t, ok)
}
