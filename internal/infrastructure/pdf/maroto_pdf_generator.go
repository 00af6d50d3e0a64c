// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Negocio          │  N° Comprobante  │
//	│  ─────────────────────────────────────────── │
//	│  CLIENTE: Nombre / Pago / Estado             │
//	│  TABLA: Cant | Producto | P.Unit | Total     │
//	│  TOTAL A PAGAR                               │
//	│  COMPOSICIÓN: materiales de la receta        │
//	│  FOOTER: QR con el N° de comprobante         │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/evodia-api/internal/application/sales"
	"github.com/jhoicas/evodia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 84, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ sales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSaleReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSaleReceipt(_ context.Context, receipt sales.Receipt) ([]byte, error) {
	order := receipt.Order
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+order.ReceiptID, true).
		WithAuthor(nonEmpty(receipt.Business, "Evodia"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	if len(receipt.Components) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(compositionRows(receipt.Components, order.ProductQuantity)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° de comprobante + fecha (der).
func headerRow(receipt sales.Receipt) core.Row {
	order := receipt.Order
	fecha := "-"
	if !order.Date.IsZero() {
		fecha = order.Date.Format(entity.DateTimeLayout)
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New(nonEmpty(receipt.Business, "Evodia"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ReceiptID, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func clientRow(order entity.SalesOrder) core.Row {
	return row.New(13).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Pago: %s   |   Estado: %s",
				nonEmpty(order.PaymentMethod, "-"),
				nonEmpty(order.Status, "-"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func detailRow(order entity.SalesOrder) core.Row {
	unit := decimal.Zero
	if order.ProductQuantity > 0 {
		unit = order.TotalPurchase.DivRound(decimal.NewFromInt(int64(order.ProductQuantity)), 2)
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", order.ProductQuantity),
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(order.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(formatMoney(unit),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(formatMoney(order.TotalPurchase),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalRow(order entity.SalesOrder) core.Row {
	return row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(order.TotalPurchase), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// compositionRows: materiales usados según la receta vigente (por unidad x cantidad).
func compositionRows(components []entity.Component, quantity int) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("COMPOSICIÓN", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	q := decimal.NewFromInt(int64(quantity))
	for _, c := range components {
		rows = append(rows, row.New(5).Add(
			col.New(7).Add(text.New(fmt.Sprintf("%s (%s)", c.MaterialName, c.SupplierName),
				props.Text{Size: 7, Color: colorGray, Left: 2})),
			col.New(5).Add(text.New(c.QuantityNeeded.Mul(q).String(),
				props.Text{Size: 7, Color: colorGray, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func footerRow(order entity.SalesOrder) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(order.ReceiptID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Conserve este comprobante; el código QR\ncontiene su número de venta.", props.Text{
				Size: 7, Top: 13, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma.
// Ej: 25000 → "25.000", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	intPart := d.Truncate(0)
	s := intPart.String()
	n := len(s)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if frac := d.Sub(intPart); !frac.IsZero() {
		b.WriteString(",")
		b.WriteString(frac.StringFixed(2)[2:])
	}
	return sign + b.String()
}
