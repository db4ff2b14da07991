package services

import (
	"testing"

	"github.com/aurelia-jewels/jewelry-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_FreezesPriceAtPurchase(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	orderID, err := svc.PlaceOrder(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 3},
	}, testBuyer())
	require.NoError(t, err)

	// The catalog price changes after the order was placed.
	require.NoError(t, db.Model(a).Update("price", mustDecimal(t, "12.00")).Error)

	order, err := svc.GetOrder(testCtx, orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Len(t, order.TrackingNumber, 12)
	require.Len(t, order.Items, 1)
	assert.Equal(t, a.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(mustDecimal(t, "10.00")),
		"price_at_purchase must not follow the current product price")
}

func TestPlaceOrder_GuestOrderHasNoUser(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	buyer := testBuyer()
	buyer.UserID = nil

	orderID, err := svc.PlaceOrder(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 1},
	}, buyer)
	require.NoError(t, err)

	order, err := svc.GetOrder(testCtx, orderID)
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "ada@example.com", order.Email)
}

func TestPlaceOrder_RejectsEmptyInput(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)

	_, err := svc.PlaceOrder(testCtx, nil, testBuyer())
	assert.True(t, IsKind(err, KindInvalid))

	buyer := testBuyer()
	buyer.Email = ""
	_, err = svc.PlaceOrder(testCtx, []TrustedLineItem{{ProductID: 1, Quantity: 1}}, buyer)
	assert.True(t, IsKind(err, KindInvalid))
}

func TestGetOrder_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)

	_, err := svc.GetOrder(testCtx, 12345)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGetUserOrders(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	uid := "user-1"
	require.NoError(t, db.Create(&models.User{ID: uid, Email: "u@example.com"}).Error)

	buyer := testBuyer()
	buyer.UserID = &uid
	items := []TrustedLineItem{{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 1}}

	_, err := svc.PlaceOrder(testCtx, items, buyer)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(testCtx, items, buyer)
	require.NoError(t, err)

	orders, err := svc.GetUserOrders(testCtx, uid)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestUpdateStatus(t *testing.T) {
	db := setupDB(t)
	svc := NewOrderService(db)
	a := seedProduct(t, db, "Gold Ring", "10.00", 5)

	orderID, err := svc.PlaceOrder(testCtx, []TrustedLineItem{
		{ProductID: a.ID, UnitPrice: mustDecimal(t, "10.00"), Quantity: 1},
	}, testBuyer())
	require.NoError(t, err)

	// Confirming a confirmed order is a no-op, not an error
	require.NoError(t, svc.UpdateStatus(testCtx, orderID, models.OrderStatusConfirmed))

	err = svc.UpdateStatus(testCtx, orderID, models.OrderStatus("shipped"))
	assert.True(t, IsKind(err, KindInvalid))
}

func TestTrackingNumbersAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := generateTrackingNumber()
		assert.Len(t, n, 12)
		assert.False(t, seen[n], "duplicate tracking number %s", n)
		seen[n] = true
	}
}
