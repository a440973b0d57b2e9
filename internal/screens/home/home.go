package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/learn"
	"github.com/abhisek/hanzi/internal/screens/profile"
	quizscreen "github.com/abhisek/hanzi/internal/screens/quiz"
	"github.com/abhisek/hanzi/internal/screens/vocab"
	"github.com/abhisek/hanzi/internal/ui/components"
)

const favoritesItem = 3

// HomeScreen is the main menu with a progress dashboard.
type HomeScreen struct {
	deps          screen.Deps
	now           func() time.Time
	menu          components.Menu
	stats         homeStats
	mascotVariant MascotVariant
}

type homeStats struct {
	learned   int
	favorites int
	streak    int
	accuracy  int
	overall   int
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, now: time.Now}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "LEARN", Action: func() tea.Cmd { return router.Push(learn.New(deps)) }},
		{Label: "QUIZ", Action: func() tea.Cmd { return router.Push(quizscreen.New(deps)) }},
		{Label: "VOCABULARY", Action: func() tea.Cmd { return router.Push(vocab.New(deps)) }},
		{Label: "FAVORITES", Action: func() tea.Cmd { return router.Push(vocab.NewFavorites(deps)) }},
		{Label: "PROFILE", Action: func() tea.Cmd { return router.Push(profile.New(deps)) }},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refresh()
	return h
}

// refresh re-reads progress into the dashboard.
func (h *HomeScreen) refresh() {
	st := h.deps.Progress.Snapshot()
	h.stats = homeStats{
		learned:   len(st.LearnedWords),
		favorites: len(st.Favorites),
		streak:    st.StudyStreak,
		accuracy:  st.QuizStats.Accuracy,
		overall:   progress.OverallProgress(st, h.deps.Catalog),
	}
	h.mascotVariant = mascotFor(st, h.now())

	if h.stats.favorites == 0 {
		h.menu.SetDisabled(favoritesItem, true, "none yet")
	} else {
		h.menu.SetDisabled(favoritesItem, false, "")
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the dashboard after a child screen changed progress.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	termHeight := height + 8
	compact := termHeight < 34 || width < 90

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
