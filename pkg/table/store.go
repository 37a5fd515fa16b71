package table

import (
	"context"

	"github.com/google/uuid"
)

// Store persists tables under slash-separated paths such as
// "/Family/ResourceExchange/ExchangeArcs". Groups are path prefixes.
// Implementations return ReadOnlyError or ClosedError when writes are not
// possible.
type Store interface {
	// CreateGroup registers a group path together with its parents.
	CreateGroup(ctx context.Context, path string) error

	// Groups returns registered group paths in lexical order.
	Groups(ctx context.Context) ([]string, error)

	// CreateTable creates an empty table with a schema.
	CreateTable(ctx context.Context, path string, sch Schema) error

	// TableSchema returns the schema of a stored table. The boolean is
	// false when the table does not exist.
	TableSchema(ctx context.Context, path string) (Schema, bool, error)

	// Tables returns paths of tables under the prefix in lexical order.
	Tables(ctx context.Context, prefix string) ([]string, error)

	// Insert appends normalized rows to a table keeping their order.
	Insert(ctx context.Context, path string, sch Schema, rows []Row) error

	// SelectEq returns rows where a UUID column equals id, in insertion
	// order.
	SelectEq(ctx context.Context, path, col string, id uuid.UUID) ([]Row, error)

	// Scan calls fn for every row of a table in insertion order.
	Scan(ctx context.Context, path string, fn func(Row) error) error

	// Count returns the number of stored rows of a table.
	Count(ctx context.Context, path string) (int, error)

	// ReadOnly reports if the store rejects writes.
	ReadOnly() bool

	// Close releases the store.
	Close() error
}
