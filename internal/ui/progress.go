package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar reports scan progress. It satisfies execution.Progress.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar for count packages on stderr
func NewProgressBar(count int) *ProgressBar {
	return NewProgressBarWriter(os.Stderr, count)
}

// NewProgressBarWriter creates a progress bar for count packages writing to w
func NewProgressBarWriter(w io.Writer, count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(progressDescription(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func progressDescription(successCount, failCount int) string {
	return color.CyanString("Enumerating packages: ") +
		color.GreenString("[ok: %d", successCount) +
		" | " +
		color.RedString("failed: %d]", failCount)
}

// Update moves the bar to the number of finished packages
func (p *ProgressBar) Update(successCount, failCount int) {
	_ = p.bar.Set(successCount + failCount)
	p.bar.Describe(progressDescription(successCount, failCount))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
