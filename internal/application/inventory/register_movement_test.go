package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseDate("2024-03-10", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDate("2024-03-10", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), *got)

	got, err = ParseDate("2024-03-10T12:00:00-05:00", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC), *got)

	_, err = ParseDate("10/03/2024", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMoveInputFromRequest(t *testing.T) {
	pt := "CREDIT"
	empty := ""
	in := moveInputFromRequest(dto.CreateStockMoveRequest{ProductID: "p", Reason: "IN", PayType: &pt})
	require.NotNil(t, in.PayType)
	assert.Equal(t, entity.PayTypeCredit, *in.PayType)
	assert.Equal(t, entity.MoveReasonIn, in.Reason)

	in = moveInputFromRequest(dto.CreateStockMoveRequest{ProductID: "p", Reason: "OUT", PayType: &empty})
	assert.Nil(t, in.PayType)
}
