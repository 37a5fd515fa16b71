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
	"github.com/gnames/cyclopts/internal/ioconvert"
	"github.com/gnames/cyclopts/internal/iorc"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getConvertCmd returns the convert command.
func getConvertCmd() *cobra.Command {
	var (
		rcPath string
		db     string
		nInst  int
	)

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Generate instances from a run-control file",
		Long: `Read a run-control file, generate instances for every point of its
parameter space and record points and instances into a store.

A run-control file is YAML with the species name, the number of
instances per point and the parameter space:

  species: StructuredRequest
  ninst: 2
  space:
    n_rxtr: [1, 5, 10]
    f_fc: [0, 1, 2]
    seed: 42

Known species: StructuredRequest, StructuredSupply, RandomRequest.

Examples:
  cyclopts convert -r run.yaml -d instances.sqlite
  cyclopts convert -r run.yaml -d instances.sqlite -n 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConvert(cmd, rcPath, db, nInst)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	convertCmd.Flags().StringVarP(
		&rcPath, "rc", "r", "", "path to the run-control file",
	)
	_ = convertCmd.MarkFlagRequired("rc")
	dbFlag(convertCmd, &db, "store to write instances to")
	convertCmd.Flags().IntVarP(
		&nInst, "ninst", "n", 0,
		"instances per point (overrides the run-control file)",
	)
	return convertCmd
}

func runConvert(cmd *cobra.Command, rcPath, db string, nInst int) (err error) {
	ctx := context.Background()
	if cmd.Flags().Changed("ninst") {
		cfg.Update([]config.Option{config.OptConvertNInst(nInst)})
	}

	rc, err := iorc.Load(rcPath)
	if err != nil {
		return err
	}

	m, err := openManager(ctx, db, false)
	if err != nil {
		return err
	}
	defer closeManager(m, &err)

	n, err := ioconvert.New(cfg, species.Registry()).Convert(ctx, rc, m)
	if err != nil {
		return err
	}

	gn.Info("Recorded <em>%s</em> instances of <em>%s</em> into <em>%s</em>",
		humanize.Comma(int64(n)), rc.Species, db)
	return nil
}
