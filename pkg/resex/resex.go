// Package resex implements the ResourceExchange problem family. Instances
// are bipartite exchange graphs stored in group, node and arc tables keyed
// by instance id. Solutions keep nonzero arc flows only.
package resex

import (
	"context"
	"time"

	cyclopts "github.com/gnames/cyclopts/pkg"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/solver"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// Name of the family.
const Name = "ResourceExchange"

// Family stores, reads and solves resource-exchange instances.
type Family struct{}

// New creates the ResourceExchange family.
func New() *Family {
	return &Family{}
}

var _ problem.Family = (*Family)(nil)

func (f *Family) Name() string {
	return Name
}

func (f *Family) Prefix() string {
	return "/Family/" + Name
}

func (f *Family) PropertyTable() string {
	return f.path(PropertiesTable)
}

// RegisterTables creates all family tables.
func (f *Family) RegisterTables(ctx context.Context, m *table.Manager) error {
	for _, name := range tableNames {
		if _, err := f.tbl(ctx, m, name); err != nil {
			return err
		}
	}
	return nil
}

var tableNames = []string{
	GroupsTable, NodesTable, ArcsTable, PropertiesTable,
	SolutionsTable, SolnPropertiesTable, PostProcessTable,
}

// RecordInst appends groups, nodes, arcs and properties of an instance.
func (f *Family) RecordInst(
	ctx context.Context,
	m *table.Manager,
	inst *exchange.Instance,
	species string,
) error {
	id := inst.InstID

	rows := make([]table.Row, len(inst.Groups))
	for i, g := range inst.Groups {
		rows[i] = table.Row{
			"instid": id, "id": g.ID, "kind": g.Kind,
			"qty": g.Qty, "caps": g.Caps,
		}
	}
	if err := f.append(ctx, m, GroupsTable, rows); err != nil {
		return err
	}

	rows = make([]table.Row, len(inst.Nodes))
	for i, n := range inst.Nodes {
		rows[i] = table.Row{
			"instid": id, "id": n.ID, "gid": n.GID, "kind": n.Kind,
			"qty": n.Qty, "excl": n.Excl, "excl_id": n.ExclID,
		}
	}
	if err := f.append(ctx, m, NodesTable, rows); err != nil {
		return err
	}

	rows = make([]table.Row, len(inst.Arcs))
	for i, a := range inst.Arcs {
		rows[i] = table.Row{
			"instid": id, "id": a.ID,
			"uid": a.UID, "ucaps": a.UCaps,
			"vid": a.VID, "vcaps": a.VCaps,
			"pref": a.Pref,
		}
	}
	if err := f.append(ctx, m, ArcsTable, rows); err != nil {
		return err
	}

	p := inst.Properties()
	row := table.Row{
		"instid":    id,
		"paramid":   inst.ParamID,
		"family":    Name,
		"species":   species,
		"n_arcs":    p.NArcs,
		"n_u_grps":  p.NUGrps,
		"n_v_grps":  p.NVGrps,
		"n_u_nodes": p.NUNodes,
		"n_v_nodes": p.NVNodes,
		"n_constrs": p.NConstrs,
		"excl_frac": p.ExclFrac,
	}
	return f.append(ctx, m, PropertiesTable, []table.Row{row})
}

// RecordSoln appends nonzero flows and properties of a solution.
func (f *Family) RecordSoln(
	ctx context.Context,
	m *table.Manager,
	inst *exchange.Instance,
	soln *exchange.Solution,
) error {
	var rows []table.Row
	for _, id := range inst.ArcIDs() {
		flow := soln.Flows[id]
		if flow == 0 {
			continue
		}
		rows = append(rows, table.Row{
			"solnid": soln.SolnID, "instid": inst.InstID,
			"arc_id": id, "flow": flow,
		})
	}
	if err := f.append(ctx, m, SolutionsTable, rows); err != nil {
		return err
	}

	row := table.Row{
		"solnid":           soln.SolnID,
		"instid":           inst.InstID,
		"problem":          Name,
		"solver":           soln.Solver,
		"soln_time":        soln.Time.Seconds(),
		"objective":        soln.Objective,
		"pref_flow":        exchange.PrefFlow(inst, soln),
		"cost_flow":        exchange.CostFlow(inst, soln),
		"cyclopts_version": version(),
		"timestamp":        time.Now().UTC().Format(TimestampLayout),
	}
	return f.append(ctx, m, SolnPropertiesTable, []table.Row{row})
}

// ReadInst reads an instance back from flushed rows.
func (f *Family) ReadInst(
	ctx context.Context,
	m *table.Manager,
	instID uuid.UUID,
) (*exchange.Instance, error) {
	props, err := f.selectEq(ctx, m, PropertiesTable, "instid", instID)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, InstanceNotFoundError(instID.String())
	}
	inst := &exchange.Instance{
		InstID:  instID,
		ParamID: props[0].UUID("paramid"),
	}

	rows, err := f.selectEq(ctx, m, GroupsTable, "instid", instID)
	if err != nil {
		return nil, err
	}
	inst.Groups = make([]exchange.Group, len(rows))
	for i, r := range rows {
		inst.Groups[i] = exchange.Group{
			ID:   r.Int("id"),
			Kind: r.Bool("kind"),
			Qty:  r.Float("qty"),
			Caps: r.Vector("caps"),
		}
	}

	rows, err = f.selectEq(ctx, m, NodesTable, "instid", instID)
	if err != nil {
		return nil, err
	}
	inst.Nodes = make([]exchange.Node, len(rows))
	for i, r := range rows {
		inst.Nodes[i] = exchange.Node{
			ID:     r.Int("id"),
			GID:    r.Int("gid"),
			Kind:   r.Bool("kind"),
			Qty:    r.Float("qty"),
			Excl:   r.Bool("excl"),
			ExclID: r.Int("excl_id"),
		}
	}

	rows, err = f.selectEq(ctx, m, ArcsTable, "instid", instID)
	if err != nil {
		return nil, err
	}
	inst.Arcs = make([]exchange.Arc, len(rows))
	for i, r := range rows {
		inst.Arcs[i] = exchange.Arc{
			ID:    r.Int("id"),
			UID:   r.Int("uid"),
			UCaps: r.Vector("ucaps"),
			VID:   r.Int("vid"),
			VCaps: r.Vector("vcaps"),
			Pref:  r.Float("pref"),
		}
	}
	return inst, nil
}

// RunInst solves an instance with a solver kind.
func (f *Family) RunInst(
	ctx context.Context,
	inst *exchange.Instance,
	kind string,
) (*exchange.Solution, error) {
	s, err := solver.New(kind)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, inst)
}

// Insts lists stored instances.
func (f *Family) Insts(ctx context.Context, m *table.Manager) ([]problem.InstRef, error) {
	var res []problem.InstRef
	err := f.scan(ctx, m, PropertiesTable, func(r table.Row) error {
		res = append(res, problem.InstRef{
			InstID:  r.UUID("instid"),
			ParamID: r.UUID("paramid"),
			Species: r.Text("species"),
		})
		return nil
	})
	return res, err
}

// Solns lists stored solutions.
func (f *Family) Solns(ctx context.Context, m *table.Manager) ([]problem.SolnRef, error) {
	var res []problem.SolnRef
	err := f.scan(ctx, m, SolnPropertiesTable, func(r table.Row) error {
		res = append(res, problem.SolnRef{
			SolnID: r.UUID("solnid"),
			InstID: r.UUID("instid"),
			Solver: r.Text("solver"),
		})
		return nil
	})
	return res, err
}

// ReadSoln reads flows and properties of a stored solution. A solution
// without a properties row is not found.
func (f *Family) ReadSoln(
	ctx context.Context,
	m *table.Manager,
	ref problem.SolnRef,
) (*exchange.Solution, error) {
	res := &exchange.Solution{
		SolnID: ref.SolnID,
		InstID: ref.InstID,
		Solver: ref.Solver,
		Flows:  make(map[int]float64),
	}
	props, err := f.selectEq(ctx, m, SolnPropertiesTable, "solnid", ref.SolnID)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, SolutionNotFoundError(ref.SolnID.String())
	}
	p := props[0]
	res.InstID = p.UUID("instid")
	res.Solver = p.Text("solver")
	res.Objective = p.Float("objective")
	res.Time = time.Duration(p.Float("soln_time") * float64(time.Second))

	rows, err := f.selectEq(ctx, m, SolutionsTable, "solnid", ref.SolnID)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		res.Flows[r.Int("arc_id")] = r.Float("flow")
	}
	return res, nil
}

// PostProcess writes family-level metrics of a solution to out.
func (f *Family) PostProcess(
	ctx context.Context,
	out *table.Manager,
	inst *exchange.Instance,
	soln *exchange.Solution,
) error {
	var nFlows int
	var total float64
	for _, id := range inst.ArcIDs() {
		if flow := soln.Flows[id]; flow > 0 {
			nFlows++
			total += flow
		}
	}
	row := table.Row{
		"solnid":     soln.SolnID,
		"instid":     inst.InstID,
		"pref_flow":  exchange.PrefFlow(inst, soln),
		"cost_flow":  exchange.CostFlow(inst, soln),
		"n_flows":    nFlows,
		"flow_total": total,
	}
	return f.append(ctx, out, PostProcessTable, []table.Row{row})
}

func (f *Family) append(
	ctx context.Context,
	m *table.Manager,
	name string,
	rows []table.Row,
) error {
	if len(rows) == 0 {
		return nil
	}
	t, err := f.tbl(ctx, m, name)
	if err != nil {
		return err
	}
	return t.Append(ctx, rows...)
}

func (f *Family) selectEq(
	ctx context.Context,
	m *table.Manager,
	name, col string,
	id uuid.UUID,
) ([]table.Row, error) {
	ok, err := m.HasTable(ctx, f.path(name))
	if err != nil || !ok {
		return nil, err
	}
	t, err := m.OpenTable(ctx, f.path(name))
	if err != nil {
		return nil, err
	}
	return t.SelectEq(ctx, col, id)
}

func (f *Family) scan(
	ctx context.Context,
	m *table.Manager,
	name string,
	fn func(table.Row) error,
) error {
	ok, err := m.HasTable(ctx, f.path(name))
	if err != nil || !ok {
		return err
	}
	t, err := m.OpenTable(ctx, f.path(name))
	if err != nil {
		return err
	}
	return t.Scan(ctx, fn)
}

// version trims the application version to the stored width.
func version() string {
	v := cyclopts.Version
	if len(v) > VersionWidth {
		v = v[:VersionWidth]
	}
	return v
}
