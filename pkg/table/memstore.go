package table

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memTable struct {
	schema Schema
	rows   []Row
}

// MemStore keeps tables in memory. It backs dry runs and tests.
type MemStore struct {
	mu       sync.Mutex
	tables   map[string]*memTable
	groups   map[string]struct{}
	readOnly bool
	closed   bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		tables: make(map[string]*memTable),
		groups: make(map[string]struct{}),
	}
}

// SetReadOnly switches the store into or out of read-only mode.
func (s *MemStore) SetReadOnly(ro bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = ro
}

func (s *MemStore) writable(path string) error {
	if s.closed {
		return ClosedError(path)
	}
	if s.readOnly {
		return ReadOnlyError(path)
	}
	return nil
}

func (s *MemStore) CreateGroup(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(path); err != nil {
		return err
	}
	for p := Clean(path); p != "/"; p = parent(p) {
		s.groups[p] = struct{}{}
	}
	return nil
}

func (s *MemStore) Groups(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ClosedError("/")
	}
	res := make([]string, 0, len(s.groups))
	for k := range s.groups {
		res = append(res, k)
	}
	slices.Sort(res)
	return res, nil
}

func (s *MemStore) CreateTable(_ context.Context, path string, sch Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(path); err != nil {
		return err
	}
	if _, ok := s.tables[path]; ok {
		return nil
	}
	s.tables[path] = &memTable{schema: sch}
	return nil
}

func (s *MemStore) TableSchema(_ context.Context, path string) (Schema, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Schema{}, false, ClosedError(path)
	}
	t, ok := s.tables[path]
	if !ok {
		return Schema{}, false, nil
	}
	return t.schema, true, nil
}

func (s *MemStore) Tables(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ClosedError(prefix)
	}
	var res []string
	for k := range s.tables {
		if Under(k, prefix) {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res, nil
}

func (s *MemStore) Insert(_ context.Context, path string, _ Schema, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(path); err != nil {
		return err
	}
	t, ok := s.tables[path]
	if !ok {
		return NotFoundError(path)
	}
	for _, r := range rows {
		t.rows = append(t.rows, copyRow(r))
	}
	return nil
}

func (s *MemStore) SelectEq(
	_ context.Context,
	path, col string,
	id uuid.UUID,
) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ClosedError(path)
	}
	t, ok := s.tables[path]
	if !ok {
		return nil, NotFoundError(path)
	}
	var res []Row
	for _, r := range t.rows {
		if v, ok := r[col].(uuid.UUID); ok && v == id {
			res = append(res, copyRow(r))
		}
	}
	return res, nil
}

func (s *MemStore) Scan(_ context.Context, path string, fn func(Row) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ClosedError(path)
	}
	t, ok := s.tables[path]
	if !ok {
		s.mu.Unlock()
		return NotFoundError(path)
	}
	rows := make([]Row, len(t.rows))
	for i := range t.rows {
		rows[i] = copyRow(t.rows[i])
	}
	s.mu.Unlock()

	for _, r := range rows {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemStore) Count(_ context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ClosedError(path)
	}
	t, ok := s.tables[path]
	if !ok {
		return 0, NotFoundError(path)
	}
	return len(t.rows), nil
}

func (s *MemStore) ReadOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readOnly
}

func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func copyRow(r Row) Row {
	res := make(Row, len(r))
	for k, v := range r {
		if vec, ok := v.([]float64); ok {
			v = slices.Clone(vec)
		}
		res[k] = v
	}
	return res
}

func parent(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}
