// Package migrations contains the schema migrations. Each file registers
// itself from init(); importing this package for side effects is enough.
package migrations
