package randreq

import (
	"context"
	"iter"
	"path"

	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

const (
	// Name of the species.
	Name = "RandomRequest"

	// PointsTable stores parameters of every point.
	PointsTable = "Points"
)

// Species generates random request-oriented resource exchanges.
type Species struct {
	family *resex.Family
	space  *problem.Space
}

// New creates the species with a default parameter space.
func New() *Species {
	return &Species{family: resex.New(), space: problem.NewSpace(params)}
}

var _ problem.Species = (*Species)(nil)

func (s *Species) Name() string {
	return Name
}

func (s *Species) Family() problem.Family {
	return s.family
}

func (s *Species) Prefix() string {
	return "/Species/" + Name
}

func (s *Species) pointsPath() string {
	return path.Join(s.Prefix(), PointsTable)
}

func (s *Species) pointsSchema() table.Schema {
	fields := []table.Field{
		table.UUIDField("paramid"),
		table.StringField("family", resex.NameWidth),
	}
	return table.NewSchema(append(fields, s.space.Schema()...)...)
}

func (s *Species) RegisterTables(ctx context.Context, m *table.Manager) error {
	_, err := m.Table(ctx, s.pointsPath(), s.pointsSchema())
	return err
}

func (s *Species) ReadSpace(raw map[string]any) error {
	return s.space.Read(raw)
}

// NPoints counts valid points of the space.
func (s *Species) NPoints() int {
	var res int
	for vals := range s.space.All() {
		if NewPoint(vals).Valid() {
			res++
		}
	}
	return res
}

// Points yields valid points only.
func (s *Species) Points() iter.Seq[problem.Point] {
	return func(yield func(problem.Point) bool) {
		for vals := range s.space.All() {
			p := NewPoint(vals)
			if !p.Valid() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (s *Species) RecordPoint(ctx context.Context, m *table.Manager, pnt problem.Point) error {
	p, ok := pnt.(*Point)
	if !ok {
		return problem.PointTypeError(Name, pnt)
	}
	row := table.Row{"paramid": p.ParamID(), "family": s.family.Name()}
	for _, prm := range s.space.Params() {
		row[prm.Name] = p.Values()[prm.Name]
	}
	t, err := m.Table(ctx, s.pointsPath(), s.pointsSchema())
	if err != nil {
		return err
	}
	return t.Append(ctx, row)
}

// GenInst draws an instance. The species keeps no per-arc data, so m is
// not used.
func (s *Species) GenInst(
	_ context.Context,
	pnt problem.Point,
	instID uuid.UUID,
	_ *table.Manager,
) (*exchange.Instance, error) {
	p, ok := pnt.(*Point)
	if !ok {
		return nil, problem.PointTypeError(Name, pnt)
	}
	groups, nodes, arcs, err := newBuilder(p).build()
	if err != nil {
		return nil, err
	}
	res := &exchange.Instance{
		InstID:  instID,
		ParamID: p.ParamID(),
		Groups:  groups,
		Nodes:   nodes,
		Arcs:    arcs,
	}
	if err = res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// PostProcess has nothing to add to family metrics.
func (s *Species) PostProcess(
	_ context.Context,
	_, _ *table.Manager,
	_ *exchange.Instance,
	_ *exchange.Solution,
) error {
	return nil
}
