package resex

import (
	"context"
	"path"

	"github.com/gnames/cyclopts/pkg/table"
)

const (
	// NameWidth is the width of family, species and solver names.
	NameWidth = 30

	// VersionWidth is the width of version strings.
	VersionWidth = 12

	// TimestampWidth is the width of ISO-8601 timestamps.
	TimestampWidth = 26

	// CapsWidth is the number of capacity slots stored per group or arc.
	CapsWidth = 10

	// TimestampLayout formats timestamps to exactly TimestampWidth
	// characters.
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

// Names of family tables.
const (
	GroupsTable         = "ExchangeGroups"
	NodesTable          = "ExchangeNodes"
	ArcsTable           = "ExchangeArcs"
	PropertiesTable     = "ExchangeInstProperties"
	SolutionsTable      = "ExchangeInstSolutions"
	SolnPropertiesTable = "ExchangeInstSolutionProperties"
	PostProcessTable    = "PostProcess"
)

var (
	groupsSchema = table.NewSchema(
		table.UUIDField("instid"),
		table.IntField("id"),
		table.BoolField("kind"),
		table.FloatField("qty"),
		table.VectorField("caps", CapsWidth),
	)

	nodesSchema = table.NewSchema(
		table.UUIDField("instid"),
		table.IntField("id"),
		table.IntField("gid"),
		table.BoolField("kind"),
		table.FloatField("qty"),
		table.BoolField("excl"),
		table.IntField("excl_id"),
	)

	arcsSchema = table.NewSchema(
		table.UUIDField("instid"),
		table.IntField("id"),
		table.IntField("uid"),
		table.VectorField("ucaps", CapsWidth),
		table.IntField("vid"),
		table.VectorField("vcaps", CapsWidth),
		table.FloatField("pref"),
	)

	propertiesSchema = table.NewSchema(
		table.UUIDField("instid"),
		table.UUIDField("paramid"),
		table.StringField("family", NameWidth),
		table.StringField("species", NameWidth),
		table.IntField("n_arcs"),
		table.IntField("n_u_grps"),
		table.IntField("n_v_grps"),
		table.IntField("n_u_nodes"),
		table.IntField("n_v_nodes"),
		table.IntField("n_constrs"),
		table.FloatField("excl_frac"),
	)

	solutionsSchema = table.NewSchema(
		table.UUIDField("solnid"),
		table.UUIDField("instid"),
		table.IntField("arc_id"),
		table.FloatField("flow"),
	)

	solnPropertiesSchema = table.NewSchema(
		table.UUIDField("solnid"),
		table.UUIDField("instid"),
		table.StringField("problem", NameWidth),
		table.StringField("solver", NameWidth),
		table.FloatField("soln_time"),
		table.FloatField("objective"),
		table.FloatField("pref_flow"),
		table.FloatField("cost_flow"),
		table.StringField("cyclopts_version", VersionWidth),
		table.StringField("timestamp", TimestampWidth),
	)

	postProcessSchema = table.NewSchema(
		table.UUIDField("solnid"),
		table.UUIDField("instid"),
		table.FloatField("pref_flow"),
		table.FloatField("cost_flow"),
		table.IntField("n_flows"),
		table.FloatField("flow_total"),
	)
)

// Schemas returns schemas of family tables keyed by table name.
func Schemas() map[string]table.Schema {
	return map[string]table.Schema{
		GroupsTable:         groupsSchema,
		NodesTable:          nodesSchema,
		ArcsTable:           arcsSchema,
		PropertiesTable:     propertiesSchema,
		SolutionsTable:      solutionsSchema,
		SolnPropertiesTable: solnPropertiesSchema,
		PostProcessTable:    postProcessSchema,
	}
}

func (f *Family) path(name string) string {
	return path.Join(f.Prefix(), name)
}

func (f *Family) tbl(ctx context.Context, m *table.Manager, name string) (*table.Table, error) {
	return m.Table(ctx, f.path(name), Schemas()[name])
}
