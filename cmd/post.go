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

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/internal/iopost"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPostCmd returns the post command.
func getPostCmd() *cobra.Command {
	var db, out string

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Compute metrics of stored solutions",
		Long: `Compute family metrics (preference-weighted flow, cost, number and
total of flows) and species metrics of every stored solution. Results
go to the PostProcess tables of the input store unless --out is given.

Examples:
  cyclopts post -d instances.sqlite
  cyclopts post -d instances.sqlite -o metrics.sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPost(db, out)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlag(postCmd, &db, "store with instances and solutions")
	postCmd.Flags().StringVarP(
		&out, "out", "o", "", "store for metrics (default: the input store)",
	)
	return postCmd
}

func runPost(db, out string) (err error) {
	ctx := context.Background()
	separate := out != "" && out != db

	in, err := openManager(ctx, db, separate)
	if err != nil {
		return err
	}
	defer closeManager(in, &err)

	outM := in
	if separate {
		var m *table.Manager
		if m, err = openManager(ctx, out, false); err != nil {
			return err
		}
		defer closeManager(m, &err)
		outM = m
	}

	n, err := iopost.New(species.Registry()).PostProcess(ctx, in, outM)
	if err != nil {
		return err
	}

	gn.Info("Post-processed <em>%s</em> solutions", humanize.Comma(int64(n)))
	return nil
}
