package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/catalog"
)

// Palette: lacquer red and gold on ink.
var (
	Primary   = lipgloss.Color("#DC2626") // lacquer
	Secondary = lipgloss.Color("#EAB308") // gold
	Accent    = lipgloss.Color("#F97316") // streak flame
	Success   = lipgloss.Color("#22C55E") // jade
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC") // rice paper
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#111827") // ink
	BgCard    = lipgloss.Color("#1F2937") // inkstone
	Border    = lipgloss.Color("#374151")
	Favorite  = lipgloss.Color("#F472B6") // plum blossom
)

// levelColors runs from green for HSK1 to red for HSK5.
var levelColors = map[catalog.HSKLevel]color.Color{
	catalog.HSK1: lipgloss.Color("#22C55E"),
	catalog.HSK2: lipgloss.Color("#14B8A6"),
	catalog.HSK3: lipgloss.Color("#3B82F6"),
	catalog.HSK4: lipgloss.Color("#A855F7"),
	catalog.HSK5: lipgloss.Color("#DC2626"),
}

// LevelColor returns the color of an HSK level, or TextDim for none.
func LevelColor(l catalog.HSKLevel) color.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return TextDim
}

// LevelBadge renders l as a filled tag in its level color.
func LevelBadge(l catalog.HSKLevel) string {
	return Badge.Background(LevelColor(l)).Render(string(l))
}

// Text styles.
var (
	Body = lipgloss.NewStyle().Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Hanzi = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Pinyin = lipgloss.NewStyle().Foreground(TextDim)

	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Bold(true).
		Padding(0, 1)
)

// Selection and answer feedback.
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().Foreground(Text)

	Disabled = lipgloss.NewStyle().Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	FavoriteMark = lipgloss.NewStyle().Foreground(Favorite)
)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)
)
