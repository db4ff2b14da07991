package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

func newGuestCartFixture(t *testing.T) (*GuestCartService, *CatalogService) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	t.Cleanup(func() { client.Close() })

	catalog := NewCatalogService(setupDB(t))
	return NewGuestCartService(client, catalog, time.Minute), catalog
}

func TestGuestCart_RepeatedAddIncrementsQuantity(t *testing.T) {
	svc, catalog := newGuestCartFixture(t)
	a := seedProduct(t, catalog.db, "Gold Ring", "10.00", 5)
	sessionID := uuid.NewString()
	t.Cleanup(func() { svc.Clear(testCtx, sessionID) })

	require.NoError(t, svc.AddItem(testCtx, sessionID, a.ID, 1))
	require.NoError(t, svc.AddItem(testCtx, sessionID, a.ID, 2))

	views, err := svc.ListItems(testCtx, sessionID)
	require.NoError(t, err)
	require.Len(t, views, 1, "repeated add must not duplicate the line")
	assert.Equal(t, 3, views[0].Quantity)
	assert.Equal(t, "Gold Ring", views[0].Name)
}

func TestGuestCart_UnknownProduct(t *testing.T) {
	svc, _ := newGuestCartFixture(t)
	sessionID := uuid.NewString()

	err := svc.AddItem(testCtx, sessionID, 999, 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGuestCart_RemoveItem(t *testing.T) {
	svc, catalog := newGuestCartFixture(t)
	a := seedProduct(t, catalog.db, "Gold Ring", "10.00", 5)
	b := seedProduct(t, catalog.db, "Silver Chain", "5.00", 5)
	sessionID := uuid.NewString()
	t.Cleanup(func() { svc.Clear(testCtx, sessionID) })

	require.NoError(t, svc.AddItem(testCtx, sessionID, a.ID, 1))
	require.NoError(t, svc.AddItem(testCtx, sessionID, b.ID, 1))
	require.NoError(t, svc.RemoveItem(testCtx, sessionID, a.ID))

	views, err := svc.ListItems(testCtx, sessionID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, b.ID, views[0].ProductID)

	err = svc.RemoveItem(testCtx, sessionID, a.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestGuestCart_ClearDestroysSession(t *testing.T) {
	svc, catalog := newGuestCartFixture(t)
	a := seedProduct(t, catalog.db, "Gold Ring", "10.00", 5)
	sessionID := uuid.NewString()

	require.NoError(t, svc.AddItem(testCtx, sessionID, a.ID, 1))
	require.NoError(t, svc.Clear(testCtx, sessionID))

	lines, err := svc.Lines(testCtx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestGuestCart_ExpiredSessionReadsEmpty(t *testing.T) {
	svc, _ := newGuestCartFixture(t)

	views, err := svc.ListItems(testCtx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, views)
}
