package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultBarWidth is the width of progress bars in characters.
const DefaultBarWidth = 20

// ProgressBar renders percent (0-100) as a bar. On a TTY the bar is drawn
// with a gradient; elsewhere it is plain ASCII like "[#####-----]".
func (r *Renderer) ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	frac := clamp(percent/100, 0, 1)

	if r.isTTY && r.EffectiveMode() == ModeText {
		bar := progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		)
		return bar.ViewAs(frac)
	}
	return ASCIIBar(frac, width)
}

// ASCIIBar renders frac (0-1) as "[###---]" with width fill characters.
func ASCIIBar(frac float64, width int) string {
	filled := int(clamp(frac, 0, 1)*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Percent formats a percentage with two decimals.
func Percent(p float64) string {
	return fmt.Sprintf("%6.2f%%", p)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
