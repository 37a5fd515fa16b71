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
	"github.com/gnames/cyclopts/internal/iocombine"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCombineCmd returns the combine command.
func getCombineCmd() *cobra.Command {
	var out string

	combineCmd := &cobra.Command{
		Use:   "combine [flags] store...",
		Short: "Merge stores into one",
		Long: `Append every table of the input stores to the output store. Use it
to analyze together instances converted or executed on different
machines. Input stores must not be newer than the output store.

Examples:
  cyclopts combine -o all.sqlite run1.sqlite run2.sqlite`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCombine(out, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	combineCmd.Flags().StringVarP(&out, "out", "o", "", "store to write to")
	_ = combineCmd.MarkFlagRequired("out")
	return combineCmd
}

func runCombine(out string, inputs []string) (err error) {
	ctx := context.Background()
	outM, err := openManager(ctx, out, false)
	if err != nil {
		return err
	}
	defer closeManager(outM, &err)

	comb := iocombine.New(cfg)
	var total int
	for _, in := range inputs {
		n, err := combineOne(ctx, comb, outM, in)
		if err != nil {
			return err
		}
		total += n
	}

	gn.Info("Copied <em>%s</em> rows from <em>%d</em> stores into <em>%s</em>",
		humanize.Comma(int64(total)), len(inputs), out)
	return nil
}

func combineOne(
	ctx context.Context,
	comb lifecycle.Combiner,
	out *table.Manager,
	in string,
) (n int, err error) {
	inM, err := openManager(ctx, in, true)
	if err != nil {
		return 0, err
	}
	defer closeManager(inM, &err)
	return comb.Combine(ctx, out, inM)
}
