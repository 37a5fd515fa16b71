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

	"github.com/gnames/cyclopts/internal/iorms"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRMSCmd returns the rms command.
func getRMSCmd() *cobra.Command {
	var (
		db     string
		sp     string
		nSoln  int
		base   string
		format string
	)

	rmsCmd := &cobra.Command{
		Use:   "rms",
		Short: "Compare solvers by root mean square of flows",
		Long: `Compare solutions of stored instances of one species. For every
solution the plain and the preference-weighted root mean square of its
flows is reported, together with the same metrics of its difference
from the solution of the base solver.

Instances that do not have exactly --nsoln solutions are left out.

Examples:
  cyclopts rms -d instances.sqlite -p StructuredRequest
  cyclopts rms -d instances.sqlite -p RandomRequest -n 2 -b lp -f pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRMS(cmd, db, sp, nSoln, base, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dbFlag(rmsCmd, &db, "store with solutions")
	rmsCmd.Flags().StringVarP(&sp, "species", "p", "", "species of instances")
	_ = rmsCmd.MarkFlagRequired("species")
	rmsCmd.Flags().IntVarP(
		&nSoln, "nsoln", "n", 0,
		"number of solutions per instance (default: keep all)",
	)
	rmsCmd.Flags().StringVarP(
		&base, "base", "b", "greedy", "solver others are compared with",
	)
	formatFlag(rmsCmd, &format)
	return rmsCmd
}

func runRMS(
	cmd *cobra.Command,
	db, sp string,
	nSoln int,
	base, format string,
) (err error) {
	ctx := context.Background()
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	rmsOpts := []config.Option{
		config.OptAnalyzeSpecies(sp),
		config.OptAnalyzeBaseSolver(base),
	}
	if cmd.Flags().Changed("nsoln") {
		rmsOpts = append(rmsOpts, config.OptAnalyzeNSoln(nSoln))
	}
	cfg.Update(rmsOpts)

	m, err := openManager(ctx, db, true)
	if err != nil {
		return err
	}
	defer closeManager(m, &err)

	rep, err := iorms.New(cfg, species.Registry()).Analyze(ctx, m)
	if err != nil {
		return err
	}
	if err = printReport(cmd.OutOrStdout(), rep, f); err != nil {
		return err
	}

	gn.Info("Compared <em>%d</em> instances, <em>%d</em> left out",
		rep.NInsts, rep.Pruned)
	return nil
}

var reportHeader = []string{
	"paramid", "instid", "solnid", "solver",
	"rms", "wrms", "rms_diff", "wrms_diff",
}

func printReport(w io.Writer, rep *lifecycle.Report, f gnfmt.Format) error {
	switch f {
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		enc := gnfmt.GNjson{Pretty: f == gnfmt.PrettyJSON}
		bs, err := enc.Encode(rep)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(bs))
		return err
	}

	sep := ','
	if f == gnfmt.TSV {
		sep = '\t'
	}
	fmt.Fprintln(w, gnfmt.ToCSV(reportHeader, sep))
	for _, ms := range rep.Metrics {
		rec := []string{
			ms.ParamID.String(),
			ms.InstID.String(),
			ms.SolnID.String(),
			ms.Solver,
			strconv.FormatFloat(ms.RMS, 'g', -1, 64),
			strconv.FormatFloat(ms.WRMS, 'g', -1, 64),
			strconv.FormatFloat(ms.RMSDiff, 'g', -1, 64),
			strconv.FormatFloat(ms.WRMSDiff, 'g', -1, 64),
		}
		if _, err := fmt.Fprintln(w, gnfmt.ToCSV(rec, sep)); err != nil {
			return err
		}
	}
	return nil
}
