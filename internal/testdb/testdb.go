// Package testdb opens a migrated in-memory SQLite database per test.
package testdb

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/orderdesk/database/migrations"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

var seq atomic.Int64

// New returns an isolated, fully migrated database closed on test cleanup.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err)
	return db
}
