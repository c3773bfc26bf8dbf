package main

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// tracker counts finished comparisons on stderr
type tracker struct {
	bar *progressbar.ProgressBar
}

func newTracker(label string, total int) *tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &tracker{bar: bar}
}

// Tick is safe for concurrent use
func (t *tracker) Tick() {
	_ = t.bar.Add(1)
}

func (t *tracker) Finish() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}
