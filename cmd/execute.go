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
	"github.com/gnames/cyclopts/internal/ioexecute"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExecuteCmd returns the execute command.
func getExecuteCmd() *cobra.Command {
	var (
		db      string
		out     string
		solvers []string
		instIDs []string
		jobs    int
	)

	executeCmd := &cobra.Command{
		Use:   "execute",
		Short: "Solve stored instances",
		Long: `Solve every stored instance with every configured solver and record
the solutions. Solutions go to the input store unless --out is given.

Solver failures are reported and counted, they do not stop the run.

Examples:
  cyclopts execute -d instances.sqlite
  cyclopts execute -d instances.sqlite -s greedy,lp -j 4
  cyclopts execute -d instances.sqlite -o solutions.sqlite
  cyclopts execute -d instances.sqlite -i 5f0c3e0a-...`,
		Aliases: []string{"exec"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExecute(cmd, db, out, solvers, instIDs, jobs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlag(executeCmd, &db, "store with instances")
	executeCmd.Flags().StringVarP(
		&out, "out", "o", "", "store for solutions (default: the input store)",
	)
	executeCmd.Flags().StringSliceVarP(
		&solvers, "solvers", "s", nil, "solvers to use: greedy, lp",
	)
	executeCmd.Flags().StringSliceVarP(
		&instIDs, "instids", "i", nil, "solve only these instances",
	)
	executeCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0, "number of concurrent solver workers",
	)
	return executeCmd
}

func runExecute(
	cmd *cobra.Command,
	db, out string,
	solvers, instIDs []string,
	jobs int,
) (err error) {
	ctx := context.Background()

	var execOpts []config.Option
	if cmd.Flags().Changed("solvers") {
		execOpts = append(execOpts, config.OptExecuteSolvers(solvers))
	}
	if cmd.Flags().Changed("instids") {
		execOpts = append(execOpts, config.OptExecuteInstIDs(instIDs))
	}
	if cmd.Flags().Changed("jobs") {
		execOpts = append(execOpts, config.OptJobsNumber(jobs))
	}
	cfg.Update(execOpts)

	in, err := openManager(ctx, db, false)
	if err != nil {
		return err
	}
	defer closeManager(in, &err)

	outM := in
	if out != "" && out != db {
		var m *table.Manager
		if m, err = openManager(ctx, out, false); err != nil {
			return err
		}
		defer closeManager(m, &err)
		outM = m
	}

	stats, err := ioexecute.New(cfg, species.Registry()).Execute(ctx, in, outM)
	if err != nil {
		return err
	}

	gn.Info("Recorded <em>%s</em> solutions of <em>%s</em> instances, <em>%s</em> solver failures",
		humanize.Comma(int64(stats.NSolved)),
		humanize.Comma(int64(stats.NInsts)),
		humanize.Comma(int64(stats.NFailed)),
	)
	return nil
}
