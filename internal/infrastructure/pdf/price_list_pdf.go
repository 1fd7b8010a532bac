// Package pdf implementa la generación de la lista de precios por rol en PDF
// (exportación administrativa).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de precios — rol                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Precio estándar | Precio del rol    │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ catalog.PriceListGenerator = (*MarotoPriceListGenerator)(nil)

// MarotoPriceListGenerator implementa catalog.PriceListGenerator usando
// Maroto v2.
type MarotoPriceListGenerator struct{}

// NewMarotoPriceListGenerator construye el generador.
func NewMarotoPriceListGenerator() *MarotoPriceListGenerator { return &MarotoPriceListGenerator{} }

// GeneratePriceList genera el PDF y devuelve sus bytes.
func (g *MarotoPriceListGenerator) GeneratePriceList(_ context.Context, role entity.Role, rows []catalog.PriceListRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Lista de precios — %s", role), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(role))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(role entity.Role) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Lista de precios", props.Text{Size: 14, Style: fontstyle.Bold, Color: colorPrimary}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Rol: %s", role), props.Text{Size: 10, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(8).Add(
		col.New(2).Add(text.New("SKU", header)),
		col.New(6).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Estándar", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
		col.New(2).Add(text.New("Rol", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
	)
}

func tableRow(r catalog.PriceListRow) core.Row {
	cell := props.Text{Size: 8}
	money := props.Text{Size: 8, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.SKU, cell)),
		col.New(6).Add(text.New(r.Name, cell)),
		col.New(2).Add(text.New(r.StandardPrice.StringFixed(2), money)),
		col.New(2).Add(text.New(r.RolePrice.StringFixed(2), money)),
	)
}
