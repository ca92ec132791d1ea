package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockledger/internal/domain"
)

func TestTypedErrors_UnwrapToSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", domain.NotFound(domain.EntityProduct), domain.ErrNotFound},
		{"invalid", domain.Invalid("cantidad debe ser positiva"), domain.ErrInvalidInput},
		{"conflict", domain.Conflict(domain.EntitySupplier), domain.ErrConflict},
		{"conflict con detalle", domain.ConflictWith(domain.EntityWarehouse, "en uso"), domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("capa superior: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestEntityOf(t *testing.T) {
	assert.Equal(t, domain.EntityStockMove, domain.EntityOf(fmt.Errorf("x: %w", domain.NotFound(domain.EntityStockMove))))
	assert.Equal(t, domain.EntityProduct, domain.EntityOf(domain.Conflict(domain.EntityProduct)))
	assert.Empty(t, domain.EntityOf(errors.New("otro")))
	assert.Empty(t, domain.EntityOf(domain.Invalid("x")))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "supplier no encontrado", domain.NotFound(domain.EntitySupplier).Error())
	assert.Equal(t, "product duplicado", domain.Conflict(domain.EntityProduct).Error())
	assert.Equal(t, "warehouse: en uso", domain.ConflictWith(domain.EntityWarehouse, "en uso").Error())
}
