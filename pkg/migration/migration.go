// Package migration provides a versioned schema migration runner.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and are driven from the CLI:
//
//	orderdesk migrate             // run all pending
//	orderdesk migrate:rollback    // rollback last batch
//	orderdesk migrate:status
package migration

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record is the row stored in the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

type entry struct {
	name string
	m    Migration
}

var (
	mu       sync.Mutex
	registry = map[string]Migration{}
)

// Register adds a migration to the global registry. name must be
// timestamp-prefixed; migrations run in lexical name order.
// Registering the same name twice panics.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic("migration: duplicate registration " + name)
	}
	registry[name] = m
}

func registered() []entry {
	mu.Lock()
	defer mu.Unlock()

	out := make([]entry, 0, len(registry))
	for name, m := range registry {
		out = append(out, entry{name: name, m: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner backed by db. Progress lines go to out (may be nil).
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]record, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// Run applies every pending migration in one new batch. Each migration and
// its tracking row commit together.
func (r *Runner) Run() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}

	done, err := r.ran()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch ran: %w", err)
	}

	var pending []entry
	for _, e := range registered() {
		if _, ok := done[e.name]; !ok {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch := r.maxBatch() + 1
	for _, e := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", e.name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&record{Name: e.name, Batch: batch}).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", e.name)
	}

	logger.Info("migrations applied", "count", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses the most recent batch, newest first.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}

	last := r.maxBatch()
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", last).Order("id desc").Find(&rows).Error; err != nil {
		return 0, err
	}

	mu.Lock()
	lookup := make(map[string]Migration, len(registry))
	for k, v := range registry {
		lookup[k] = v
	}
	mu.Unlock()

	for _, row := range rows {
		m, ok := lookup[row.Name]
		if !ok {
			return 0, fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", row.Name)
		row := row
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&row).Error
		})
		if err != nil {
			return 0, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
	}

	logger.Info("migrations rolled back", "count", len(rows), "batch", last)
	return len(rows), nil
}

// Status reports every registered migration in run order.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, e := range registered() {
		row, ok := done[e.name]
		out = append(out, Status{Name: e.name, Ran: ok, Batch: row.Batch})
	}
	return out, nil
}

func (r *Runner) maxBatch() int {
	var n struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&n)
	return n.Max
}
