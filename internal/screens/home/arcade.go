package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

const titleFull = `╦ ╦╔═╗╔╗╔╔═╗╦
╠═╣╠═╣║║║╔═╝║
╩ ╩╩ ╩╝╚╝╚═╝╩`

const titleCompact = "汉 字 · H A N Z I"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	art := titleCompact
	if !compact {
		art = titleFull + "\n" + lipgloss.NewStyle().Foreground(theme.Primary).Render("汉 字")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s homeStats, cw int, compact bool) string {
	learnedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	favStyle := theme.FavoriteMark.Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			learnedStyle.Render(fmt.Sprintf("✓%d", s.learned)),
			favStyle.Render(fmt.Sprintf("♥%d", s.favorites)),
			streakStyle.Render(fmt.Sprintf("🔥%d", s.streak)),
			accStyle.Render(fmt.Sprintf("%d%%", s.accuracy)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			learnedStyle.Render(fmt.Sprintf("✓ %d LEARNED (%d%%)", s.learned, s.overall)),
			favStyle.Render(fmt.Sprintf("♥ %d", s.favorites)),
			streakStyle.Render(fmt.Sprintf("🔥 %d", s.streak)),
			accStyle.Render(fmt.Sprintf("◎ %d%%", s.accuracy)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	selected := base.
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		BorderForeground(theme.Primary)

	var buttons []string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, base.Foreground(theme.TextDim).Render(item.Label))
		case i == m.Selected:
			buttons = append(buttons, selected.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals.
func renderMenuCompact(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
