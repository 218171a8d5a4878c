package migration_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/internal/testdb"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testdb.New(t)

	var out bytes.Buffer
	n, err := migration.New(db, &out).Run()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "Nothing to migrate.")

	for _, table := range []string{"users", "products", "orders", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestStatusAndRollback(t *testing.T) {
	db := testdb.New(t)
	r := migration.New(db, nil)

	rows, err := r.Status()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, s := range rows {
		assert.True(t, s.Ran, s.Name)
		assert.Equal(t, 1, s.Batch)
	}

	n, err := r.Rollback()
	require.NoError(t, err)
	assert.Equal(t, len(rows), n)
	assert.False(t, db.Migrator().HasTable("orders"))

	n, err = r.Rollback()
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.Run()
	require.NoError(t, err)
	assert.Equal(t, len(rows), n)
	assert.True(t, db.Migrator().HasTable("orders"))
}
