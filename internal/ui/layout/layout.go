package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the header drops words and keeps only icons.
	CompactHeaderWidth = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"太小了 · Terminal too small\n\nNeed %d x %d, have %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// HeaderStats are the learner figures shown at the right of the header.
type HeaderStats struct {
	Streak    int
	Learned   int
	Total     int // catalog size; 0 hides the fraction
	Favorites int
	Target    catalog.HSKLevel
}

// segments renders the stats, most important first.
func (s HeaderStats) segments(compact bool) []string {
	learned := fmt.Sprintf("✓ %d", s.Learned)
	if !compact && s.Total > 0 {
		learned = fmt.Sprintf("✓ %d/%d learned", s.Learned, s.Total)
	}
	streak := "🔥 " + StreakLabel(s.Streak)
	if compact {
		streak = fmt.Sprintf("🔥 %d", s.Streak)
	}

	out := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(streak),
		lipgloss.NewStyle().Foreground(theme.Success).Render(learned),
	}
	if s.Favorites > 0 {
		out = append(out, theme.FavoriteMark.Render(fmt.Sprintf("♥ %d", s.Favorites)))
	}
	if s.Target.Valid() && !compact {
		out = append(out, theme.LevelBadge(s.Target))
	}
	return out
}

// RenderHeader draws the brand, the screen title and the learner stats.
// Stats that do not fit are dropped from the end.
func RenderHeader(title string, stats HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("汉字 Hanzi")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	inner := max(width-6, 0) // border and padding
	room := inner - lipgloss.Width(brand) - lipgloss.Width(center) - 4

	segs := stats.segments(width < CompactHeaderWidth)
	right := strings.Join(segs, "  ")
	for len(segs) > 0 && lipgloss.Width(right) > room {
		segs = segs[:len(segs)-1]
		right = strings.Join(segs, "  ")
	}

	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(brand), 1)
	rightGap := max(inner-lipgloss.Width(brand)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)
	line := brand + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return bar(line, width)
}

// StreakLabel pluralizes a streak length.
func StreakLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// RenderFooter draws key hints in order, eliding those past the width.
func RenderFooter(hints []KeyHint, width int) string {
	room := max(width-6, 0)
	var b strings.Builder
	for i, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + theme.Hint.Render(h.Description)
		sep := ""
		if i > 0 {
			sep = "   "
		}
		if lipgloss.Width(b.String()+sep+part) > room {
			b.WriteString(" …")
			break
		}
		b.WriteString(sep + part)
	}
	return bar(b.String(), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
