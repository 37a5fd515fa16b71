// Package ioprogress draws progress bars of long-running stages on STDERR.
package ioprogress

import (
	"github.com/cheggaaa/pb/v3"
)

// New creates a progress bar with consistent settings. The bar is removed
// from the terminal when it finishes.
func New(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
