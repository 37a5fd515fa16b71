/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getDumpCmd returns the dump command.
func getDumpCmd() *cobra.Command {
	var (
		db     string
		path   string
		format string
		list   bool
	)

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print tables of a store",
		Long: `Print rows of a table as CSV, TSV or JSON. Without --table the
paramid, instid, family and species of every stored instance are printed.
With --list only paths of tables are printed.

Examples:
  cyclopts dump -d instances.sqlite
  cyclopts dump -d instances.sqlite -l
  cyclopts dump -d instances.sqlite -t /Family/ResourceExchange/ExchangeArcs
  cyclopts dump -d instances.sqlite -t /Species/StructuredRequest/Points -f pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDump(cmd, db, path, format, list)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlag(dumpCmd, &db, "store to read")
	dumpCmd.Flags().StringVarP(&path, "table", "t", "", "path of the table")
	dumpCmd.Flags().BoolVarP(&list, "list", "l", false, "list tables of the store")
	formatFlag(dumpCmd, &format)
	return dumpCmd
}

// instColumns are printed when no table is given.
var instColumns = []string{"paramid", "instid", "family", "species"}

func runDump(cmd *cobra.Command, db, path, format string, list bool) (err error) {
	ctx := context.Background()
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	m, err := openManager(ctx, db, true)
	if err != nil {
		return err
	}
	defer closeManager(m, &err)

	w := cmd.OutOrStdout()
	if list {
		paths, err := m.Store().Tables(ctx, "/")
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(w, p)
		}
		return nil
	}

	var cols []string
	if path == "" {
		path = resex.New().PropertyTable()
		cols = instColumns
	}

	t, err := m.OpenTable(ctx, path)
	if err != nil {
		return err
	}
	return dumpTable(ctx, w, t, f, cols)
}

// dumpTable writes all rows of a table in a given format. Only the given
// columns are written, or all of them when cols is empty.
func dumpTable(
	ctx context.Context,
	w io.Writer,
	t *table.Table,
	f gnfmt.Format,
	cols []string,
) error {
	names := cols
	if len(names) == 0 {
		names = t.Schema().Names()
	}
	switch f {
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		var rows []map[string]any
		err := t.Scan(ctx, func(r table.Row) error {
			res := make(map[string]any, len(names))
			for _, n := range names {
				res[n] = r[n]
			}
			rows = append(rows, res)
			return nil
		})
		if err != nil {
			return err
		}
		enc := gnfmt.GNjson{Pretty: f == gnfmt.PrettyJSON}
		bs, err := enc.Encode(rows)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(bs))
		return err
	default:
		sep := ','
		if f == gnfmt.TSV {
			sep = '\t'
		}
		fmt.Fprintln(w, gnfmt.ToCSV(names, sep))
		return t.Scan(ctx, func(r table.Row) error {
			rec := make([]string, len(names))
			for i, n := range names {
				rec[i] = textValue(r[n])
			}
			_, err := fmt.Fprintln(w, gnfmt.ToCSV(rec, sep))
			return err
		})
	}
}

func textValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []float64:
		vals := make([]string, len(v))
		for i := range v {
			vals[i] = strconv.FormatFloat(v[i], 'g', -1, 64)
		}
		return strings.Join(vals, " ")
	case uuid.UUID:
		return v.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
