package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gnames/cyclopts/pkg/analysis"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandFlags verifies flags and shorthands of
// subcommands.
func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		flags map[string]string
	}{
		{getConvertCmd(), map[string]string{"rc": "r", "db": "d", "ninst": "n"}},
		{getExecuteCmd(), map[string]string{
			"db": "d", "out": "o", "solvers": "s", "instids": "i", "jobs": "j",
		}},
		{getDumpCmd(), map[string]string{
			"db": "d", "table": "t", "format": "f", "list": "l",
		}},
		{getCombineCmd(), map[string]string{"out": "o"}},
		{getPostCmd(), map[string]string{"db": "d", "out": "o"}},
		{getRMSCmd(), map[string]string{
			"db": "d", "species": "p", "nsoln": "n", "base": "b", "format": "f",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotNil(t, tt.cmd.RunE)
			for name, short := range tt.flags {
				flag := tt.cmd.Flags().Lookup(name)
				require.NotNil(t, flag, "--%s flag should exist", name)
				assert.Equal(t, short, flag.Shorthand)
			}
		})
	}
}

// TestCombineCmd_Args verifies combine needs input stores.
func TestCombineCmd_Args(t *testing.T) {
	cmd := getCombineCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"a.sqlite"}))
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("tsv")
	require.Nil(t, err)
	assert.Equal(t, gnfmt.TSV, f)

	_, err = parseFormat("xml")
	assert.NotNil(t, err)
}

func TestDumpTable(t *testing.T) {
	ctx := context.Background()
	m := table.NewManager(table.NewMemStore(), 0)
	sch := table.NewSchema(
		table.UUIDField("instid"),
		table.IntField("id"),
		table.VectorField("caps", 3),
	)
	tbl, err := m.Table(ctx, "/T/rows", sch)
	require.Nil(t, err)
	id := uuid.New()
	require.Nil(t, tbl.Append(ctx, table.Row{
		"instid": id, "id": 7, "caps": []float64{1.5, 2},
	}))
	require.Nil(t, tbl.Flush(ctx))

	buf := new(bytes.Buffer)
	require.Nil(t, dumpTable(ctx, buf, tbl, gnfmt.TSV, nil))
	lines := nonEmptyLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "instid\tid\tcaps", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], id.String()+"\t7\t"))

	buf.Reset()
	require.Nil(t, dumpTable(ctx, buf, tbl, gnfmt.CompactJSON, nil))
	assert.Contains(t, buf.String(), `"id":7`)
	assert.Contains(t, buf.String(), id.String())

	buf.Reset()
	require.Nil(t, dumpTable(ctx, buf, tbl, gnfmt.CSV, []string{"id"}))
	assert.Equal(t, []string{"id", "7"}, nonEmptyLines(buf.String()))
}

func TestPrintReport(t *testing.T) {
	rep := &lifecycle.Report{
		NInsts:  1,
		Solvers: []string{"greedy"},
		Metrics: []analysis.Metrics{
			{Solver: "greedy", RMS: 2.5, WRMS: 1},
		},
	}

	buf := new(bytes.Buffer)
	require.Nil(t, printReport(buf, rep, gnfmt.CSV))
	lines := nonEmptyLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(reportHeader, ","), lines[0])
	assert.Contains(t, lines[1], ",greedy,2.5,1,0,0")

	buf.Reset()
	require.Nil(t, printReport(buf, rep, gnfmt.CompactJSON))
	assert.Contains(t, buf.String(), `"solvers":["greedy"]`)
	assert.Contains(t, buf.String(), `"rms":2.5`)
}

func nonEmptyLines(s string) []string {
	var res []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			res = append(res, l)
		}
	}
	return res
}
