package table

import (
	"context"

	"github.com/google/uuid"
)

// DefaultTargetBytes is the default size of a table buffer.
const DefaultTargetBytes = 32 * 1024

// Table buffers rows of one schema and writes them to a Store in chunks.
// Rows that are still buffered are not visible to SelectEq and Scan.
type Table struct {
	path    string
	schema  Schema
	store   Store
	cap     int
	buf     []Row
	nWrites int
}

// NewTable creates a Table for an existing stored table. The buffer holds
// as many rows as fit into targetBytes, but at least one.
func NewTable(store Store, path string, sch Schema, targetBytes int) *Table {
	if targetBytes <= 0 {
		targetBytes = DefaultTargetBytes
	}
	c := sch.Capacity(targetBytes)
	return &Table{
		path:   path,
		schema: sch,
		store:  store,
		cap:    c,
		buf:    make([]Row, 0, c),
	}
}

func (t *Table) Path() string   { return t.path }
func (t *Table) Schema() Schema { return t.schema }
func (t *Table) Capacity() int  { return t.cap }
func (t *Table) Buffered() int  { return len(t.buf) }
func (t *Table) NWrites() int   { return t.nWrites }

// Append validates rows and adds them to the buffer. Whenever the buffer
// is full it is flushed, so a large batch may cause several writes.
// Validation happens before anything is buffered.
func (t *Table) Append(ctx context.Context, rows ...Row) error {
	norm := make([]Row, len(rows))
	for i := range rows {
		r, err := t.schema.Check(t.path, rows[i])
		if err != nil {
			return err
		}
		norm[i] = r
	}

	for len(norm) > 0 {
		space := t.cap - len(t.buf)
		if space == 0 {
			if err := t.Flush(ctx); err != nil {
				return err
			}
			continue
		}
		n := min(space, len(norm))
		t.buf = append(t.buf, norm[:n]...)
		norm = norm[n:]
	}
	return nil
}

// Flush writes buffered rows to the store. On failure the rows stay in
// the buffer.
func (t *Table) Flush(ctx context.Context) error {
	if len(t.buf) == 0 {
		return nil
	}
	if err := t.store.Insert(ctx, t.path, t.schema, t.buf); err != nil {
		return err
	}
	t.nWrites += len(t.buf)
	t.buf = make([]Row, 0, t.cap)
	return nil
}

// SelectEq returns stored rows where a UUID column equals id.
func (t *Table) SelectEq(ctx context.Context, col string, id uuid.UUID) ([]Row, error) {
	f, ok := t.schema.Field(col)
	if !ok {
		return nil, UnknownColumnError(t.path, col)
	}
	if f.Kind != UUID {
		return nil, FieldTypeError(t.path, col, UUID.String(), f.Kind.String())
	}
	return t.store.SelectEq(ctx, t.path, col, id)
}

// Scan calls fn for every stored row.
func (t *Table) Scan(ctx context.Context, fn func(Row) error) error {
	return t.store.Scan(ctx, t.path, fn)
}

// Count returns the number of stored rows.
func (t *Table) Count(ctx context.Context) (int, error) {
	return t.store.Count(ctx, t.path)
}
