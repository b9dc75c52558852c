// Package pdf genera el comprobante de pedido en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda                │  N° Pedido + Fecha         │
//	│  CLIENTE: Nombre / Tel / Email / Dirección                  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/ucoffee-api/internal/application/ports"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

var _ ports.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 92, Green: 58, Blue: 33}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa ports.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	shopName string
	currency string
}

// NewReceiptGenerator construye el generador con el nombre de la tienda y el sufijo de moneda.
func NewReceiptGenerator(shopName, currency string) *ReceiptGenerator {
	return &ReceiptGenerator{shopName: shopName, currency: currency}
}

// GenerateOrderReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateOrderReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Pedido #%d", order.ID), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO #"+strconv.FormatInt(order.ID, 10), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+order.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s   |   Dirección: %s",
				order.Phone, order.Email, order.Address,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *ReceiptGenerator) itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.Price.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.LineTotal().StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *ReceiptGenerator) totalRow(order *entity.Order) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(g.money(order.TotalAmount.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func (g *ReceiptGenerator) money(amount string) string {
	if g.currency == "" {
		return amount
	}
	return amount + " " + g.currency
}
