// Package iocombine implements the Combiner interface. Every group and
// table of one store is appended to another store, so results of runs
// made on different machines can be analyzed together.
// This is an impure I/O package that reads and writes table stores.
package iocombine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/internal/ioprogress"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
)

// combiner implements the Combiner interface.
type combiner struct {
	cfg *config.Config
}

// New creates a new Combiner.
func New(cfg *config.Config) lifecycle.Combiner {
	return &combiner{cfg: cfg}
}

// versioned stores record the cyclopts version that created them.
type versioned interface {
	Version(context.Context) (string, error)
}

// Combine appends all rows of in to out. Missing tables are created with
// the schema of the input, existing ones must have the same schema.
func (c *combiner) Combine(ctx context.Context, out, in *table.Manager) (int, error) {
	if err := checkVersions(ctx, out.Store(), in.Store()); err != nil {
		return 0, err
	}

	src := in.Store()
	groups, err := src.Groups(ctx)
	if err != nil {
		return 0, err
	}
	for _, g := range groups {
		if err = out.Group(ctx, g); err != nil {
			return 0, err
		}
	}

	paths, err := src.Tables(ctx, "/")
	if err != nil {
		return 0, err
	}

	start := time.Now()
	slog.Info("Combining stores",
		"groups", len(groups),
		"tables", humanize.Comma(int64(len(paths))),
	)

	bar := ioprogress.New(len(paths), "Combining: ")
	defer bar.Finish()

	var count int
	for _, p := range paths {
		n, err := copyTable(ctx, out, in, p)
		count += n
		if err != nil {
			return count, err
		}
		bar.Increment()
	}
	if err = out.Flush(ctx); err != nil {
		return count, err
	}

	slog.Info("Stores are combined",
		"rows", humanize.Comma(int64(count)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return count, nil
}

func copyTable(ctx context.Context, out, in *table.Manager, p string) (int, error) {
	from, err := in.OpenTable(ctx, p)
	if err != nil {
		return 0, err
	}
	to, err := out.Table(ctx, p, from.Schema())
	if err != nil {
		return 0, err
	}

	var rows []table.Row
	err = from.Scan(ctx, func(r table.Row) error {
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err = to.Append(ctx, rows...); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// checkVersions rejects input stores older than the oldest supported
// format or newer than the output. Stores without a version, like the
// in-memory one, are not checked.
func checkVersions(ctx context.Context, out, in table.Store) error {
	vIn, ok, err := storeVersion(ctx, in)
	if err != nil || !ok {
		return err
	}
	if !gnlib.IsVersion(vIn) || gnlib.CmpVersion(vIn, config.MinVersionStore) < 0 {
		return VersionError(vIn, config.MinVersionStore)
	}

	vOut, ok, err := storeVersion(ctx, out)
	if err != nil || !ok {
		return err
	}
	if gnlib.IsVersion(vOut) && gnlib.CmpVersion(vIn, vOut) > 0 {
		return NewerInputError(vIn, vOut)
	}
	return nil
}

func storeVersion(ctx context.Context, s table.Store) (string, bool, error) {
	v, ok := s.(versioned)
	if !ok {
		return "", false, nil
	}
	res, err := v.Version(ctx)
	return res, true, err
}
