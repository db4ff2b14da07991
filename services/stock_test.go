package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmStock_DecrementsStock(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	err := svc.ConfirmStock(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, productStock(t, db, a.ID))
}

func TestConfirmStock_InsufficientStock(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 2)

	err := svc.ConfirmStock(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 5},
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInsufficientStock))
	e := AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, 5, e.Requested)
	assert.Equal(t, 2, e.Available)
	assert.Equal(t, 2, productStock(t, db, a.ID))
}

func TestConfirmStock_BatchAllOrNothing(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)
	ok := seedProduct(t, db, "Silver Chain", "5.00", 10)
	low := seedProduct(t, db, "Pearl Earring", "10.00", 1)

	err := svc.ConfirmStock(testCtx, []TrustedLineItem{
		{ProductID: ok.ID, UnitPrice: mustDecimal(t, "5.00"), Quantity: 4},
		{ProductID: low.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 2},
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInsufficientStock))

	// The passing line was rolled back along with the failing one
	assert.Equal(t, 10, productStock(t, db, ok.ID))
	assert.Equal(t, 1, productStock(t, db, low.ID))
}

func TestConfirmStock_MissingProduct(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)

	err := svc.ConfirmStock(testCtx, []TrustedLineItem{
		{ProductID: 42, UnitPrice: mustDecimal(t, "10.00"), Quantity: 1},
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

// Two confirmations racing for the last unit: the conditional decrement lets
// exactly one through and stock never goes negative.
func TestConfirmStock_LastUnitConfirmedOnce(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)
	a := seedProduct(t, db, "Pearl Earring", "10.00", 1)

	items := []TrustedLineItem{{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 1}}

	first := svc.ConfirmStock(testCtx, items)
	second := svc.ConfirmStock(testCtx, items)

	require.NoError(t, first)
	require.Error(t, second)
	assert.True(t, IsKind(second, KindInsufficientStock))
	e := AsError(second)
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Requested)
	assert.Equal(t, 0, e.Available)
	assert.Equal(t, 0, productStock(t, db, a.ID))
}

func TestConfirmStock_RejectsEmptyAndInvalid(t *testing.T) {
	db := setupDB(t)
	svc := NewStockService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	err := svc.ConfirmStock(testCtx, nil)
	assert.True(t, IsKind(err, KindInvalid))

	err = svc.ConfirmStock(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 0},
	})
	assert.True(t, IsKind(err, KindInvalid))
	assert.Equal(t, 5, productStock(t, db, a.ID))
}
