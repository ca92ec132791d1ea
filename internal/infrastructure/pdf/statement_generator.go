// Package pdf genera el estado de cuenta de un proveedor con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + contacto │ ESTADO DE CUENTA + fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Detalle | Cargo | Abono | Saldo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO: total adeudado (o a favor)                           │
//	│  FOOTER: QR de referencia + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDebt    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ payable.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa payable.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	withQR bool
}

// NewMarotoPDFGenerator construye el generador. withQR agrega un QR con la referencia del estado de cuenta.
func NewMarotoPDFGenerator(withQR bool) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{withQR: withQR}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, st *payable.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta - "+st.Supplier.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(entryRows(st.Entries)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(st.Balance))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(st, g.withQR)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(st *payable.Statement) core.Row {
	s := st.Supplier
	return row.New(20).Add(
		col.New(7).Add(
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", deref(s.Phone), deref(s.Email)),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("Dirección: "+deref(s.Address), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+st.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Asientos: %d", len(st.Entries)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Detalle", 3, align.Left),
		h("Cargo", 2, align.Right),
		h("Abono", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// entryRows una fila por asiento con el saldo acumulado.
func entryRows(entries []*entity.PayableLedger) []core.Row {
	rows := make([]core.Row, 0, len(entries))
	running := decimal.Zero
	for _, e := range entries {
		running = running.Add(e.AmountDelta)
		var debit, credit string
		if e.AmountDelta.IsNegative() {
			credit = "$" + formatMoney(e.AmountDelta.Neg())
		} else {
			debit = "$" + formatMoney(e.AmountDelta)
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(7).Add(
			cell(e.CreatedAt.Format("02/01/2006"), 2, align.Left),
			cell(typeLabel(e.Type), 1, align.Left),
			cell(truncate(deref(e.Note), 40), 3, align.Left),
			cell(debit, 2, align.Right),
			cell(credit, 2, align.Right),
			cell("$"+formatMoney(running), 2, align.Right),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

func balanceRow(balance decimal.Decimal) core.Row {
	label := "SALDO POR PAGAR:"
	color := colorDebt
	if !balance.IsPositive() {
		label = "SALDO A FAVOR:"
		color = colorPrimary
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(balance.Abs()), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Top: 2, Right: 1,
		})),
	)
}

func footerRows(st *payable.Statement, withQR bool) []core.Row {
	legend := text.New(
		"Saldo calculado como la suma de todos los asientos registrados del proveedor. "+
			"Valores positivos son deuda con el proveedor; negativos, crédito a favor.",
		props.Text{Size: 6.5, Color: colorGray, Top: 2},
	)
	if !withQR {
		return []core.Row{row.New(8).Add(col.New(12).Add(legend))}
	}
	ref := statementReference(st)
	return []core.Row{
		row.New(36).Add(
			col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Referencia del estado de cuenta:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3}),
				text.New(ref, props.Text{Size: 6.5, Color: colorGray, Top: 9, Left: 3}),
			),
		),
		row.New(8).Add(col.New(12).Add(legend)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// statementReference texto del QR: proveedor|saldo|fecha.
func statementReference(st *payable.Statement) string {
	return strings.Join([]string{
		st.Supplier.ID,
		st.Balance.StringFixed(2),
		st.GeneratedAt.UTC().Format("20060102T150405Z"),
	}, "|")
}

func typeLabel(t entity.LedgerType) string {
	switch t {
	case entity.LedgerTypeBill:
		return "Factura"
	case entity.LedgerTypePayment:
		return "Pago"
	case entity.LedgerTypeAdjust:
		return "Ajuste"
	}
	return string(t)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// formatMoney formatea con puntos de miles y coma decimal (2 decimales).
// Ej: 25000 → "25.000,00", -1234.5 → "-1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() && !d.Round(2).IsZero() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
