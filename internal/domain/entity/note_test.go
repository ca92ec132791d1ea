package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNote(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.Nil(t, NormalizeNote(nil))
	assert.Nil(t, NormalizeNote(s("   ")))
	got := NormalizeNote(s("  pago parcial \n"))
	if assert.NotNil(t, got) {
		assert.Equal(t, "pago parcial", *got)
	}
}
