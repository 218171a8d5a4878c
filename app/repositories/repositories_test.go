package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/internal/testdb"
)

func seed(t *testing.T, store repositories.Store) (models.User, models.Product) {
	t.Helper()
	ctx := context.Background()

	u := models.User{Username: "alice", Email: "a@x.io", Password: "hash"}
	require.NoError(t, store.Users().Create(ctx, &u))

	p := models.Product{Name: "Widget", Price: 100}
	require.NoError(t, store.Products().Create(ctx, &p))
	return u, p
}

func TestUserLookups(t *testing.T) {
	store := repositories.NewStore(testdb.New(t))
	ctx := context.Background()
	u, _ := seed(t, store)

	byName, err := store.Users().FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := store.Users().FindByLogin(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = store.Users().FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	ok, err := store.Users().EmailExists(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Users().UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderPreloadsAndOwnership(t *testing.T) {
	store := repositories.NewStore(testdb.New(t))
	ctx := context.Background()
	u, p := seed(t, store)

	bob := models.User{Username: "bob", Email: "b@x.io", Password: "hash"}
	require.NoError(t, store.Users().Create(ctx, &bob))

	o := models.Order{Quantity: 2, Status: models.StatusPending, UserID: u.ID, ProductID: p.ID}
	require.NoError(t, store.Orders().Create(ctx, &o))

	got, err := store.Orders().FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, int64(200), got.TotalPrice())

	_, err = store.Orders().FindByIDForUser(ctx, o.ID, bob.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mine, err := store.Orders().ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := store.Orders().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	n, err := store.Orders().CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeleteMissing(t *testing.T) {
	store := repositories.NewStore(testdb.New(t))
	ctx := context.Background()

	assert.ErrorIs(t, store.Orders().Delete(ctx, 99), repositories.ErrNotFound)
	assert.ErrorIs(t, store.Products().Delete(ctx, 99), repositories.ErrNotFound)
}

func TestWithinTx_RollsBack(t *testing.T) {
	store := repositories.NewStore(testdb.New(t))
	ctx := context.Background()
	_, p := seed(t, store)

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(r repositories.Repos) error {
		p.Name = "Gadget"
		if err := r.Products().Update(ctx, &p); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Products().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestAuditLogs(t *testing.T) {
	store := repositories.NewStore(testdb.New(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, store.AuditLogs().Create(ctx, models.AuditLog{
			ActorUserID:  1,
			Action:       models.AuditUpdateOrderStatus,
			ResourceType: models.AuditResourceOrder,
			ResourceID:   5,
		}))
	}

	logs, err := store.AuditLogs().ListByResource(ctx, models.AuditResourceOrder, 5)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Greater(t, logs[0].ID, logs[1].ID)
}
