package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockledger/internal/application/dto"
)

// demoCatalog productos usados cuando no se pasa un CSV.
const demoCatalog = `nombre;unidad;costo;venta
Tornillo 3/8;pcs;250;400
Cemento gris 50kg;bulto;28500;32000
Pintura blanca galón;gal;54000;69900
`

// parseProducts lee el CSV de productos (nombre;unidad;costo;venta, con encabezado).
// Las exportaciones de Excel suelen venir en ISO-8859-1; si el contenido no es UTF-8 válido se convierte.
func parseProducts(r io.Reader) ([]dto.CreateProductRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decodificar CSV: %w", err)
	}

	var out []dto.CreateProductRequest
	for i, rec := range records {
		if i == 0 || len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		p := dto.CreateProductRequest{Name: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			p.UnitCode = strings.TrimSpace(rec[1])
		}
		if p.CostPrice, err = priceAt(rec, 2); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		if p.SalePrice, err = priceAt(rec, 3); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// priceAt acepta coma decimal ("2,5").
func priceAt(rec []string, i int) (*decimal.Decimal, error) {
	if len(rec) <= i || strings.TrimSpace(rec[i]) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[i]), ",", "."))
	if err != nil {
		return nil, fmt.Errorf("precio inválido %q", rec[i])
	}
	return &d, nil
}
