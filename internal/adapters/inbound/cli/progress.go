package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/docscan/docscan/internal/domain"
)

// progressReporter implements domain.ProgressReporter with a spinner on w.
// Enumeration is lazy, so the total is unknown up front.
type progressReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w}
}

func (p *progressReporter) OnExtractionStart(_ string, lang domain.Language) {
	p.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("Extracting %s files", lang)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressReporter) OnFileProcessed(string) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressReporter) OnExtractionComplete(files, skipped int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	if skipped > 0 {
		fmt.Fprintf(p.w, "Extracted %d files (%d skipped)\n", files, skipped)
	}
}
