// Package pdf renderiza los reportes tabulares del nodo como PDF A4:
// encabezado con título y tenant, tabla de columnas fijas y pie con la fecha
// de generación.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/jcastano/erp-nodo-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appreport.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate renderiza el reporte y devuelve los bytes del PDF.
func (g *MarotoReportGenerator) Generate(doc *appreport.Doc) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(doc.Columns))
	for _, r := range tableRows(doc) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: título (izq) + tenant (der).
func headerRow(doc *appreport.Doc) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(doc.Tenant, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla; las columnas se reparten el ancho.
func tableHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(colSpan(len(columns), i)).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
			}),
		))
	}
	return row.New(8).Add(cols...)
}

// tableRows: una fila por registro.
func tableRows(doc *appreport.Doc) []core.Row {
	result := make([]core.Row, 0, len(doc.Rows))
	for _, cells := range doc.Rows {
		cols := make([]core.Col, 0, len(cells))
		for i, cell := range cells {
			cols = append(cols, col.New(colSpan(len(cells), i)).Add(
				text.New(cell, props.Text{Size: 7.5, Top: 1, Left: 1}),
			))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

// footerRow: conteo de registros.
func footerRow(doc *appreport.Doc) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d registros", len(doc.Rows)), props.Text{
			Size: 7.5, Color: colorGray, Top: 2,
		}),
	))
}

// colSpan reparte las 12 columnas de la grilla entre n celdas; el resto se lo
// lleva la primera (normalmente el ID, la celda más larga).
func colSpan(n, idx int) int {
	if n == 0 {
		return 12
	}
	base := 12 / n
	if idx == 0 {
		return base + 12%n
	}
	return base
}
