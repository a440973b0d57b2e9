package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	// Count replaces the percent suffix with "done/total" when set.
	Count string
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// NewCountBar creates a bar for done out of total with a "done/total" suffix.
func NewCountBar(label string, done, total, width int) ProgressBar {
	p := 0.0
	if total > 0 {
		p = float64(done) / float64(total)
	}
	return ProgressBar{
		Label:   label,
		Percent: p,
		Width:   width,
		Count:   fmt.Sprintf("%d/%d", done, total),
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	suffix := ""
	switch {
	case p.Count != "":
		suffix = "  " + p.Count
	case p.ShowPercent:
		suffix = fmt.Sprintf("  %d%%", int(p.Percent*100))
	}

	barWidth := p.Width - labelWidth - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return result
}
