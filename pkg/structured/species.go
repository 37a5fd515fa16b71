package structured

import (
	"context"
	"encoding/hex"
	"iter"
	"path"

	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// Names of species tables and groups.
const (
	PointsTable      = "Points"
	SummaryTable     = "Summary"
	ArcsGroup        = "Arcs"
	PostProcessTable = "PostProcess"
)

var (
	arcsSchema = table.NewSchema(
		table.IntField("arc_id"),
		table.IntField("commod"),
		table.FloatField("pref_c"),
		table.FloatField("pref_l"),
	)

	postProcessSchema = table.NewSchema(
		table.UUIDField("solnid"),
		table.FloatField("c_pref_flow"),
		table.FloatField("l_pref_flow"),
	)
)

// species holds what the request and supply species share: parameter
// space, point and summary tables, arc preference tables and
// post-processing.
type species struct {
	name     string
	family   *resex.Family
	space    *problem.Space
	withRepo bool
}

func newSpecies(name string, params []problem.Param, withRepo bool) species {
	return species{
		name:     name,
		family:   resex.New(),
		space:    problem.NewSpace(params),
		withRepo: withRepo,
	}
}

func (s *species) Name() string {
	return s.name
}

func (s *species) Family() problem.Family {
	return s.family
}

func (s *species) Prefix() string {
	return "/Species/" + s.name
}

// ReadSpace replaces default values of parameters by run-control values.
func (s *species) ReadSpace(raw map[string]any) error {
	return s.space.Read(raw)
}

func (s *species) NPoints() int {
	return s.space.N()
}

// Points yields a new point for every combination of parameter values.
func (s *species) Points() iter.Seq[problem.Point] {
	return func(yield func(problem.Point) bool) {
		for vals := range s.space.All() {
			if !yield(NewPoint(vals)) {
				return
			}
		}
	}
}

func (s *species) pointsSchema() table.Schema {
	fields := []table.Field{
		table.UUIDField("paramid"),
		table.StringField("family", resex.NameWidth),
	}
	fields = append(fields, s.space.Schema()...)
	return table.NewSchema(fields...)
}

func (s *species) summaryCols() []string {
	res := []string{"n_r_th", "n_r_f_mox", "n_r_f_thox",
		"n_s_uox", "n_s_th_mox", "n_s_f_mox", "n_s_f_thox"}
	if s.withRepo {
		res = append(res, "n_s_repo")
	}
	return res
}

func (s *species) summarySchema() table.Schema {
	fields := []table.Field{
		table.UUIDField("paramid"),
		table.StringField("family", resex.NameWidth),
	}
	for _, c := range s.summaryCols() {
		fields = append(fields, table.IntField(c))
	}
	return table.NewSchema(fields...)
}

func (s *species) path(name string) string {
	return path.Join(s.Prefix(), name)
}

// ArcsPath returns the path of the arc preference table of an instance.
func (s *species) ArcsPath(instID uuid.UUID) string {
	return path.Join(s.Prefix(), ArcsGroup, "id_"+hex.EncodeToString(instID[:]))
}

// RegisterTables creates point, summary and post-processing tables and
// the group of arc tables.
func (s *species) RegisterTables(ctx context.Context, m *table.Manager) error {
	if _, err := m.Table(ctx, s.path(PointsTable), s.pointsSchema()); err != nil {
		return err
	}
	if _, err := m.Table(ctx, s.path(SummaryTable), s.summarySchema()); err != nil {
		return err
	}
	if _, err := m.Table(ctx, s.path(PostProcessTable), postProcessSchema); err != nil {
		return err
	}
	return m.Group(ctx, s.path(ArcsGroup))
}

// RecordPoint stores parameters of a point and its facility breakdown.
func (s *species) RecordPoint(ctx context.Context, m *table.Manager, pnt problem.Point) error {
	p, ok := pnt.(*Point)
	if !ok {
		return problem.PointTypeError(s.name, pnt)
	}

	row := table.Row{"paramid": p.ParamID(), "family": s.family.Name()}
	for _, prm := range s.space.Params() {
		row[prm.Name] = p.Values()[prm.Name]
	}
	t, err := m.Table(ctx, s.path(PointsTable), s.pointsSchema())
	if err != nil {
		return err
	}
	if err = t.Append(ctx, row); err != nil {
		return err
	}

	rx := ReactorBreakdown(p)
	sup := SupportBreakdown(p, s.withRepo)
	counts := append(rx[:], sup[:len(s.summaryCols())-len(rx)]...)
	row = table.Row{"paramid": p.ParamID(), "family": s.family.Name()}
	for i, c := range s.summaryCols() {
		row[c] = counts[i]
	}
	t, err = m.Table(ctx, s.path(SummaryTable), s.summarySchema())
	if err != nil {
		return err
	}
	return t.Append(ctx, row)
}

// recordArcs writes preference components of generated arcs and flushes
// the table.
func (s *species) recordArcs(
	ctx context.Context,
	m *table.Manager,
	instID uuid.UUID,
	arcs []arcInfo,
) error {
	if m == nil {
		return nil
	}
	t, err := m.Table(ctx, s.ArcsPath(instID), arcsSchema)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(arcs))
	for i, a := range arcs {
		rows[i] = table.Row{
			"arc_id": a.id,
			"commod": int(a.commod),
			"pref_c": a.prefC,
			"pref_l": a.prefL,
		}
	}
	if err = t.Append(ctx, rows...); err != nil {
		return err
	}
	return t.Flush(ctx)
}

// PostProcess splits the preference-weighted flow of a solution into its
// commodity and location parts.
func (s *species) PostProcess(
	ctx context.Context,
	in, out *table.Manager,
	inst *exchange.Instance,
	soln *exchange.Solution,
) error {
	t, err := in.OpenTable(ctx, s.ArcsPath(inst.InstID))
	if err != nil {
		return err
	}
	var cFlow, lFlow float64
	err = t.Scan(ctx, func(r table.Row) error {
		f := soln.Flows[r.Int("arc_id")]
		cFlow += r.Float("pref_c") * f
		lFlow += r.Float("pref_l") * f
		return nil
	})
	if err != nil {
		return err
	}

	res, err := out.Table(ctx, s.path(PostProcessTable), postProcessSchema)
	if err != nil {
		return err
	}
	return res.Append(ctx, table.Row{
		"solnid":      soln.SolnID,
		"c_pref_flow": cFlow,
		"l_pref_flow": lFlow,
	})
}

// newInstance assembles an instance and checks it.
func newInstance(
	instID, paramID uuid.UUID,
	groups []exchange.Group,
	nodes []exchange.Node,
	arcs []exchange.Arc,
) (*exchange.Instance, error) {
	res := &exchange.Instance{
		InstID:  instID,
		ParamID: paramID,
		Groups:  groups,
		Nodes:   nodes,
		Arcs:    arcs,
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}
