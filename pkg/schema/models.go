// Package schema provides the catalog models of a cyclopts store and the
// SQL layout of its data tables.
//
// Every logical table (a slash path like
// "/Family/ResourceExchange/ExchangeArcs") lives in a physical table named
// after a UUID v5 of its path. The catalog maps paths to physical names and
// keeps the JSON schema of each table.
package schema

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// StoreTable is a catalog entry of one logical table.
type StoreTable struct {
	// Path is the slash-separated logical path of the table.
	Path string `db:"path" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`

	// Name is the physical table name.
	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"not null"`

	// SchemaJSON is the field list of the table.
	SchemaJSON string `db:"schema_json" ddl:"TEXT NOT NULL" gorm:"not null"`
}

// StoreGroup registers a group path.
type StoreGroup struct {
	Path string `db:"path" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
}

// StoreMeta keeps key-value metadata, such as the version of cyclopts
// that created the store.
type StoreMeta struct {
	Key   string `db:"key" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	Value string `db:"value" ddl:"TEXT NOT NULL" gorm:"not null"`
}

// VersionKey is the StoreMeta key of the store format version.
const VersionKey = "version"
