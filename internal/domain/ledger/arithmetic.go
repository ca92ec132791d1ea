// Package ledger concentra la aritmética de signos de movimientos y cuentas por pagar.
// Es la única fuente de verdad para el signo de QtyDelta y AmountDelta: los casos de uso
// nunca niegan cantidades por su cuenta.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// DeriveQtyDelta convierte la magnitud positiva enviada por el cliente en el delta con signo.
// IN => +magnitud; OUT y ADJUST => -magnitud.
func DeriveQtyDelta(magnitude decimal.Decimal, reason entity.MoveReason) (decimal.Decimal, error) {
	if !magnitude.IsPositive() {
		return decimal.Zero, domain.Invalid("la cantidad debe ser positiva")
	}
	switch reason {
	case entity.MoveReasonIn:
		return magnitude, nil
	case entity.MoveReasonOut, entity.MoveReasonAdjust:
		return magnitude.Neg(), nil
	}
	return decimal.Zero, domain.Invalid("motivo de movimiento desconocido: " + string(reason))
}

// DeriveAmountDelta convierte la magnitud no negativa en el delta con signo.
// BILL => +magnitud; PAYMENT y ADJUST => -magnitud.
func DeriveAmountDelta(magnitude decimal.Decimal, typ entity.LedgerType) (decimal.Decimal, error) {
	if magnitude.IsNegative() {
		return decimal.Zero, domain.Invalid("el monto no puede ser negativo")
	}
	switch typ {
	case entity.LedgerTypeBill:
		return magnitude, nil
	case entity.LedgerTypePayment, entity.LedgerTypeAdjust:
		return magnitude.Neg(), nil
	}
	return decimal.Zero, domain.Invalid("tipo de asiento desconocido: " + string(typ))
}

// IsCreditBill indica si una entrada a crédito debe generar su factura (BILL) en la misma transacción.
func IsCreditBill(reason entity.MoveReason, payType *entity.PayType, unitPrice *decimal.Decimal) bool {
	return reason == entity.MoveReasonIn &&
		payType != nil && *payType == entity.PayTypeCredit &&
		unitPrice != nil
}

// BillAmount monto de la factura de una compra: |qtyDelta| * unitPrice.
func BillAmount(qtyDelta, unitPrice decimal.Decimal) decimal.Decimal {
	return qtyDelta.Abs().Mul(unitPrice)
}

// Fold suma el historial de deltas (del más antiguo al más reciente).
// Los deltas ya traen signo, por lo que el orden no altera el resultado.
func Fold(deltas []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deltas {
		total = total.Add(d)
	}
	return total
}
