// Package pdf serializes report models to the downloadable PDF artifact.
//
// A4 page layout:
//
//	┌──────────────────────────────────────────────┐
//	│  PAGE HEADER: company line                    │
//	│  TITLE: report title                          │
//	│  ───────────────────────────────────────────  │
//	│  SECTION heading                              │
//	│  TABLE: header band + bordered value rows     │
//	│  ... further sections ...                     │
//	│  FOOTER: Page N of M                          │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ecotreat/portal-api/internal/application/report"
	"github.com/ecotreat/portal-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ report.Renderer = (*MarotoRenderer)(nil)

// MarotoRenderer implements report.Renderer using Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer builds the renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render serializes the model: one page-header line, the ordered sections, a
// "Page N of M" footer. The whole document is produced in memory.
func (g *MarotoRenderer) Render(_ context.Context, model *entity.ReportModel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{Pattern: "Page {current} of {total}", Place: props.Bottom}).
		WithTitle(model.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(model))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, section := range model.Sections {
		for _, block := range section.Blocks {
			switch block.Kind {
			case entity.BlockHeading:
				m.AddRows(headingRow(block))
			case entity.BlockParagraph:
				m.AddRows(paragraphRow(block))
			case entity.BlockTable:
				for _, r := range tableRows(block.Table) {
					m.AddRows(r)
				}
			}
		}
		m.AddRows(row.New(3))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: page-header line plus the report title.
func headerRow(model *entity.ReportModel) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(model.PageHeader, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(model.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 6,
			}),
		),
	)
}

func headingRow(block entity.Block) core.Row {
	size := 13.0 - float64(block.Level)
	if size < 9 {
		size = 9
	}
	return row.New(9).Add(
		col.New(12).Add(
			text.New(block.Text, props.Text{
				Style: fontstyle.Bold, Size: size, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func paragraphRow(block entity.Block) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New(block.Text, props.Text{Size: 9, Top: 1}),
		),
	)
}

// tableRows renders a table with a colored one-row header band and single-line
// borders on every cell edge.
func tableRows(table [][]entity.Cell) []core.Row {
	result := make([]core.Row, 0, len(table))
	for _, cells := range table {
		if len(cells) == 0 {
			continue
		}
		r := row.New(7)
		widths := columnWidths(len(cells))
		for i, cell := range cells {
			r.Add(tableCol(cell, widths[i]))
		}
		result = append(result, r)
	}
	return result
}

func tableCol(cell entity.Cell, width int) core.Col {
	style := &props.Cell{
		BorderType:  border.Full,
		BorderColor: colorGray,
	}
	textProps := props.Text{Size: 9, Top: 1.5, Left: 2, Align: align.Left}
	if cell.Header {
		style.BackgroundColor = colorPrimary
		textProps.Style = fontstyle.Bold
		textProps.Color = colorWhite
	}
	return col.New(width).Add(text.New(cell.Text, textProps)).WithStyle(style)
}

// columnWidths spreads the 12-unit grid across n columns, giving the first
// column any remainder.
func columnWidths(n int) []int {
	widths := make([]int, n)
	base := 12 / n
	rest := 12 % n
	for i := range widths {
		widths[i] = base
	}
	widths[0] += rest
	return widths
}
