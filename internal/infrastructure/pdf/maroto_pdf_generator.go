// Package pdf renders the two customer-facing documents with Maroto v2: the
// proforma invoice (PROFORMA FATURA) and the waybill (İRSALİYE).
//
// A4 layout shared by both:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Workshop name  │  Document title + No + Date       │
//	│  ───────────────────────────────────────────────────────── │
//	│  CUSTOMER: name + opaque info payload                       │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABLE: Qty | Product | Unit price | Line total             │
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTAL (proforma) / carrier block (waybill)                 │
//	└─────────────────────────────────────────────────────────────┘
//
// Turkish labels need a UTF-8 font. When the font files cannot be loaded the
// generator logs a warning and degrades to built-in helvetica; documents stay
// generable, only the Turkish glyphs render imperfectly.
package pdf

import (
	"fmt"
	"time"

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
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	fontrepo "github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/application/order"
	"github.com/atolyeos/atolye-api/internal/application/shipment"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/pkg/logger"
)

// Ensure Generator satisfies both document ports.
var _ order.ProformaGenerator = (*Generator)(nil)
var _ shipment.WaybillGenerator = (*Generator)(nil)

var (
	colorPrimary = &props.Color{Red: 33, Green: 53, Blue: 85}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const customFontFamily = "dejavu-sans"

// Generator renders workshop documents. workshopName appears in the header
// of every document.
type Generator struct {
	workshopName string
	fonts        []*marotoentity.CustomFont
	fontFamily   string
	log          *logger.Logger
}

// New builds the generator, loading the UTF-8 font from fontDir
// (<fontDir>/DejaVuSans.ttf and DejaVuSans-Bold.ttf). Missing fonts degrade
// to helvetica with a warning.
func New(workshopName, fontDir string, log *logger.Logger) *Generator {
	g := &Generator{workshopName: workshopName, fontFamily: "helvetica", log: log}

	fonts, err := fontrepo.New().
		AddUTF8Font(customFontFamily, fontstyle.Normal, fontDir+"/DejaVuSans.ttf").
		AddUTF8Font(customFontFamily, fontstyle.Bold, fontDir+"/DejaVuSans-Bold.ttf").
		Load()
	if err != nil {
		log.Warn().Err(err).Str("font_dir", fontDir).
			Msg("pdf font unavailable, falling back to helvetica")
		return g
	}
	g.fonts = fonts
	g.fontFamily = customFontFamily
	return g
}

// RenderingDegraded reports whether the generator is running without the
// UTF-8 font.
func (g *Generator) RenderingDegraded() bool {
	return g.fontFamily != customFontFamily
}

// GenerateProforma renders the proforma invoice for an order.
func (g *Generator) GenerateProforma(o *entity.Order) ([]byte, error) {
	m := maroto.New(g.pageConfig("Proforma Fatura"))

	m.AddRows(g.headerRow("PROFORMA FATURA", o.ID, o.CreatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(g.tableHeaderRow())
	for _, r := range g.itemRows(o.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(o.TotalAmount))
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Bu belge proforma faturadır, mali değeri yoktur.", props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate proforma: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateWaybill renders the waybill for a shipment. The shipment must
// carry its expanded order.
func (g *Generator) GenerateWaybill(s *entity.Shipment) ([]byte, error) {
	if s.Order == nil {
		return nil, fmt.Errorf("pdf: shipment %s has no order loaded", s.ID)
	}
	m := maroto.New(g.pageConfig("İrsaliye"))

	m.AddRows(g.headerRow("İRSALİYE", s.WaybillNumber, s.ShippedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(s.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(g.tableHeaderRow())
	for _, r := range g.itemRows(s.Order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New("TAŞIYICI / NAKLİYE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(nonEmpty(s.CarrierInfo, "—"), props.Text{Size: 9, Top: 7}),
	)))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Sevk tarihi: "+s.ShippedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate waybill: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func (g *Generator) pageConfig(title string) *marotoentity.Config {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: g.fontFamily, Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.workshopName, true)
	if len(g.fonts) > 0 {
		builder = builder.WithCustomFonts(g.fonts)
	}
	return builder.Build()
}

// headerRow: workshop name (left), document title + number + date (right).
func (g *Generator) headerRow(docTitle, number string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.workshopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Çelik Kapı İmalatı", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("No: "+shortID(number), props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
			text.New("Tarih: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// customerRow: buyer name plus the opaque info payload, verbatim.
func (g *Generator) customerRow(o *entity.Order) core.Row {
	info := "—"
	if len(o.CustomerInfo) > 0 {
		info = string(o.CustomerInfo)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("MÜŞTERİ", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(info, props.Text{Size: 7, Top: 12, Color: colorGray}),
		),
	)
}

func (g *Generator) tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Adet", 1, align.Center),
		h("Ürün", 6, align.Left),
		h("Birim Fiyat", 2, align.Right),
		h("Tutar", 3, align.Right),
	)
}

func (g *Generator) itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		if it.Product != nil {
			name = it.Product.Name
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2)+" TL",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				lineTotal.StringFixed(2)+" TL",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func (g *Generator) totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("GENEL TOPLAM:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(total.StringFixed(2)+" TL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID trims long identifiers (UUIDs) to a printable document number.
func shortID(s string) string {
	if len(s) > 13 {
		return s[:13]
	}
	return s
}
