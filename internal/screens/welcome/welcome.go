package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	glyphDelay   = 300 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Learn HSK vocabulary one card at a time"

// glyphs are revealed one per glyphDelay.
var glyphs = []struct{ hanzi, pinyin string }{
	{"你", "nǐ"},
	{"好", "hǎo"},
	{"汉", "hàn"},
	{"字", "zì"},
}

type tickMsg time.Time

// WelcomeScreen reveals a greeting before handing over to home. Any key
// skips the animation.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

// shownGlyphs is how many greeting glyphs are visible.
func (w *WelcomeScreen) shownGlyphs() int {
	return min(int(w.elapsed/glyphDelay), len(glyphs))
}

func (w *WelcomeScreen) View(width, height int) string {
	var top, bottom []string
	for i := range w.shownGlyphs() {
		top = append(top, theme.Hanzi.Render(glyphs[i].hanzi))
		bottom = append(bottom, theme.Pinyin.Render(glyphs[i].pinyin))
	}
	sections := []string{
		strings.Join(top, "   "),
		strings.Join(bottom, "  "),
	}

	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline)
		sections = append(sections, "", RenderBanner(width), "", tagline)
	}
	if w.elapsed >= totalDur {
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
