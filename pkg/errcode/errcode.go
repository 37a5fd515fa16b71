package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Run-control errors
	RunControlReadError
	RunControlParseError
	RunControlSpeciesError

	// Domain data errors
	DomainUnknownKindError
	DomainUnknownCommodityError

	// Parameter space errors
	ParamUnknownError
	ParamValueError
	ParamPointTypeError

	// Instance errors
	InstanceDuplicateIDError
	InstanceDanglingRefError
	InstanceCapsLengthError
	InstanceEmptyCapsError
	InstanceCommodityCoverageError

	// Table schema errors
	TableUnknownFieldError
	TableMissingFieldError
	TableFieldTypeError
	TableFieldWidthError
	TableUnknownColumnError
	TableSchemaMismatchError

	// Table I/O errors
	StoreOpenError
	StoreReadOnlyError
	StoreClosedError
	StoreCreateTableError
	StoreCreateGroupError
	StoreInsertError
	StoreQueryError
	StoreCatalogError
	StoreVersionError

	// Lookup errors
	InstanceNotFoundError
	SolutionNotFoundError
	TableNotFoundError
	FamilyUnknownError
	SpeciesUnknownError
	SolverUnknownError

	// Solver errors
	SolverFailedError

	// Analysis errors
	AnalysisBaseSolverError
	AnalysisFlowsError

	// Output errors
	OutputFormatError
)
