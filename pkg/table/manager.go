package table

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
)

// Manager owns the tables and groups of one store. Tables and groups are
// created on first use unless the store is read-only. Close flushes every
// table once and closes the store.
type Manager struct {
	store       Store
	targetBytes int
	tables      map[string]*Table
	groups      map[string]struct{}
	closed      bool
}

// NewManager creates a Manager for a store. Tables get buffers of
// targetBytes, DefaultTargetBytes if it is not positive.
func NewManager(store Store, targetBytes int) *Manager {
	if targetBytes <= 0 {
		targetBytes = DefaultTargetBytes
	}
	return &Manager{
		store:       store,
		targetBytes: targetBytes,
		tables:      make(map[string]*Table),
		groups:      make(map[string]struct{}),
	}
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// ReadOnly reports if the store rejects writes.
func (m *Manager) ReadOnly() bool {
	return m.store.ReadOnly()
}

// Group makes sure a group exists.
func (m *Manager) Group(ctx context.Context, p string) error {
	if m.closed {
		return ClosedError(p)
	}
	p = Clean(p)
	if _, ok := m.groups[p]; ok {
		return nil
	}
	if err := m.store.CreateGroup(ctx, p); err != nil {
		return err
	}
	m.groups[p] = struct{}{}
	return nil
}

// Table returns the table at a path, creating it with the schema if it
// does not exist. An existing table with a different schema is an error.
func (m *Manager) Table(ctx context.Context, p string, sch Schema) (*Table, error) {
	if m.closed {
		return nil, ClosedError(p)
	}
	p = Clean(p)
	if t, ok := m.tables[p]; ok {
		if !t.schema.Equal(sch) {
			return nil, SchemaMismatchError(p)
		}
		return t, nil
	}

	stored, ok, err := m.store.TableSchema(ctx, p)
	if err != nil {
		return nil, err
	}
	if ok {
		if !stored.Equal(sch) {
			return nil, SchemaMismatchError(p)
		}
	} else {
		if dir := path.Dir(p); dir != "/" {
			if err = m.Group(ctx, dir); err != nil {
				return nil, err
			}
		}
		if err = m.store.CreateTable(ctx, p, sch); err != nil {
			return nil, err
		}
	}

	t := NewTable(m.store, p, sch, m.targetBytes)
	m.tables[p] = t
	return t, nil
}

// OpenTable returns an existing table using its stored schema.
func (m *Manager) OpenTable(ctx context.Context, p string) (*Table, error) {
	if m.closed {
		return nil, ClosedError(p)
	}
	p = Clean(p)
	if t, ok := m.tables[p]; ok {
		return t, nil
	}
	sch, ok, err := m.store.TableSchema(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundError(p)
	}
	t := NewTable(m.store, p, sch, m.targetBytes)
	m.tables[p] = t
	return t, nil
}

// HasTable reports if a table exists in the store.
func (m *Manager) HasTable(ctx context.Context, p string) (bool, error) {
	p = Clean(p)
	if _, ok := m.tables[p]; ok {
		return true, nil
	}
	_, ok, err := m.store.TableSchema(ctx, p)
	return ok, err
}

// Flush writes buffered rows of all tables in path order.
func (m *Manager) Flush(ctx context.Context) error {
	var errs []error
	for _, p := range m.paths() {
		if err := m.tables[p].Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NWrites returns the number of rows written by all tables.
func (m *Manager) NWrites() int {
	var res int
	for _, t := range m.tables {
		res += t.nWrites
	}
	return res
}

// Close flushes all tables and closes the store. Calling it again does
// nothing.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	var errs []error
	if !m.store.ReadOnly() {
		errs = append(errs, m.Flush(context.Background()))
	}
	errs = append(errs, m.store.Close())
	return errors.Join(errs...)
}

func (m *Manager) paths() []string {
	res := make([]string, 0, len(m.tables))
	for k := range m.tables {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Clean normalizes a table or group path to an absolute slash path.
func Clean(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Under reports if path p is the prefix itself or lies inside it. The
// prefix matches whole path elements only.
func Under(p, prefix string) bool {
	prefix = Clean(prefix)
	if prefix == "/" || p == prefix {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}
