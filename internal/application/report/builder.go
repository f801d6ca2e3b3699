package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
)

// placeholder rendered for missing or undefined values. Never an empty cell,
// never an error.
const placeholder = "-"

// BuildModel deterministically transforms a calculator result into a report
// model using the fixed template for the kind. The "Input Parameters" section
// is always present; result groups appear only when the calculator produced
// derived values.
func BuildModel(kind string, res CalculatorResult) (*entity.ReportModel, error) {
	tpl, ok := templates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReportKind, kind)
	}

	model := &entity.ReportModel{
		Title:      tpl.title,
		PageHeader: tpl.header,
	}

	var inputs entity.Section
	inputs.Heading(2, "Input Parameters")
	inputs.AddTable(buildTable(tpl.inputs, res.Params))
	model.Sections = append(model.Sections, inputs)

	if !res.HasResults() {
		return model, nil
	}
	for _, group := range tpl.groups {
		var sec entity.Section
		sec.Heading(2, group.title)
		sec.AddTable(buildTable(group.rows, res.Results))
		model.Sections = append(model.Sections, sec)
	}
	return model, nil
}

// buildTable renders the declarative rows against a value map. The first row
// is the header band.
func buildTable(rows []rowSpec, values map[string]Value) [][]entity.Cell {
	table := make([][]entity.Cell, 0, len(rows)+1)
	table = append(table, []entity.Cell{
		{Text: "Parameter", Header: true},
		{Text: "Value", Header: true},
	})
	for _, spec := range rows {
		table = append(table, []entity.Cell{
			{Text: rowLabel(spec, values)},
			{Text: rowValue(spec, values)},
		})
	}
	return table
}

func rowLabel(spec rowSpec, values map[string]Value) string {
	if spec.labelKey == "" {
		return spec.label
	}
	if s, ok := values[spec.labelKey].Text(); ok && s != "" {
		return spec.label + " (" + s + ")"
	}
	return spec.label
}

func rowValue(spec rowSpec, values map[string]Value) string {
	v, ok := values[spec.key]
	if !ok || !v.IsSet() {
		return placeholder
	}
	if spec.text {
		if s, ok := v.Text(); ok && s != "" {
			return s
		}
		return placeholder
	}
	f, ok := v.Number()
	if !ok {
		// A string slipped into a numeric row; show it untouched rather
		// than failing the export.
		s, _ := v.Text()
		if s == "" {
			return placeholder
		}
		return s
	}
	out := decimal.NewFromFloat(f).StringFixed(spec.decimals)
	if unit := rowUnit(spec, values); unit != "" {
		out += " " + unit
	}
	return out
}

func rowUnit(spec rowSpec, values map[string]Value) string {
	if spec.unitKey != "" {
		if s, ok := values[spec.unitKey].Text(); ok {
			return s
		}
		return ""
	}
	return spec.unit
}
