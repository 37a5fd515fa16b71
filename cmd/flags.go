package cmd

import (
	"context"
	"errors"

	"github.com/gnames/cyclopts/internal/iostore"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

func dbFlag(cmd *cobra.Command, db *string, usage string) {
	cmd.Flags().StringVarP(db, "db", "d", "", usage)
	_ = cmd.MarkFlagRequired("db")
}

func formatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(
		format, "format", "f", "csv",
		"output format: csv, tsv, compact or pretty",
	)
}

// openManager opens a store of the configured backend.
func openManager(
	ctx context.Context,
	location string,
	readOnly bool,
) (*table.Manager, error) {
	return iostore.OpenManager(ctx, cfg, location, readOnly)
}

// closeManager flushes and closes a manager keeping the first error.
func closeManager(m *table.Manager, err *error) {
	if cerr := m.Close(); cerr != nil {
		*err = errors.Join(*err, cerr)
	}
}

func parseFormat(s string) (gnfmt.Format, error) {
	f, err := gnfmt.NewFormat(s)
	if err != nil {
		return f, FormatError(s, err)
	}
	return f, nil
}
