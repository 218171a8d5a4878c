// Package seeders provides a registry of database seed functions.
//
// Seeders register themselves from init() and must be idempotent: running
// `orderdesk seed` twice leaves the same rows.
package seeders

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order, printing
// progress to stdout. It stops on the first error.
func RunAll(db *gorm.DB) error {
	return Run(db, os.Stdout)
}

// Run is RunAll with an explicit progress writer.
func Run(db *gorm.DB, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(db); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}
