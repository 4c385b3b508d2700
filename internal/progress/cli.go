package progress

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// CLIAdapter renders KindProgress events to a terminal progress bar and
// KindMessage/KindError events as printed lines. It ignores the GUI-only
// kinds (clear_all_lists/add/update/delete), which have no CLI rendering.
type CLIAdapter struct {
	bar   *progressbar.ProgressBar
	total int
}

// NewCLIAdapter builds an adapter whose bar runs from 0 to total (a track
// count, typically). total <= 0 renders a spinner instead of a bar.
func NewCLIAdapter(total int, description string) *CLIAdapter {
	var bar *progressbar.ProgressBar
	if total > 0 {
		bar = progressbar.Default(int64(total), description)
	} else {
		bar = progressbar.DefaultBytes(-1, description)
	}
	return &CLIAdapter{bar: bar, total: total}
}

// Callback returns the Callback function this adapter drives.
func (a *CLIAdapter) Callback() Callback {
	return func(kind Kind, payload interface{}) {
		switch kind {
		case KindProgress:
			if pct, ok := payload.(int); ok {
				if a.total > 0 {
					// Scale the percentage onto the bar's 0..total range.
					_ = a.bar.Set(pct * a.total / 100)
				} else {
					_ = a.bar.Set(pct)
				}
			}
		case KindMessage:
			fmt.Println(payload)
		case KindError:
			fmt.Println("error:", payload)
		}
	}
}

// Finish closes out the bar, clearing the line.
func (a *CLIAdapter) Finish() error {
	return a.bar.Finish()
}
