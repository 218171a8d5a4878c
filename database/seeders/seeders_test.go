package seeders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/database/seeders"
	"github.com/shashiranjanraj/orderdesk/internal/testdb"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
)

func setStaffEnv(t *testing.T, username, email, password string) {
	t.Helper()
	config.Set("SEED_STAFF_USERNAME", username)
	config.Set("SEED_STAFF_EMAIL", email)
	config.Set("SEED_STAFF_PASSWORD", password)
	config.Set("BCRYPT_COST", "4")
	t.Cleanup(func() {
		for _, k := range []string{"SEED_STAFF_USERNAME", "SEED_STAFF_EMAIL", "SEED_STAFF_PASSWORD", "BCRYPT_COST"} {
			config.Set(k, "")
		}
	})
}

func TestRun_IsIdempotent(t *testing.T) {
	setStaffEnv(t, "root", "root@x.com", "s3cret!")
	db := testdb.New(t)
	store := repositories.NewStore(db)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seeders.Run(db, &out))
	require.NoError(t, seeders.Run(db, &out))
	assert.Contains(t, out.String(), "Running seeder: staff")

	root, err := store.Users().FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, root.IsStaff)

	ok, err := auth.NewPasswordHasher(bcrypt.MinCost).Check(root.Password, "s3cret!")
	require.NoError(t, err)
	assert.True(t, ok)

	products, err := store.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestSeedStaff_PromotesExisting(t *testing.T) {
	setStaffEnv(t, "alice", "", "")
	db := testdb.New(t)
	store := repositories.NewStore(db)
	ctx := context.Background()

	hash, err := auth.NewPasswordHasher(bcrypt.MinCost).Hash("pw12345")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: hash}))

	require.NoError(t, seeders.SeedStaff(db))

	alice, err := store.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, alice.IsStaff)
	assert.True(t, alice.IsActive)
}

func TestSeedStaff_RequiresCredentialsForNewUser(t *testing.T) {
	setStaffEnv(t, "root", "", "")
	assert.Error(t, seeders.SeedStaff(testdb.New(t)))
}

func TestSeedStaff_SkipsWhenUnset(t *testing.T) {
	setStaffEnv(t, "", "", "")
	assert.NoError(t, seeders.SeedStaff(testdb.New(t)))
}
