package learn

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// LearnScreen walks through a level's words as flashcards.
type LearnScreen struct {
	deps   screen.Deps
	picker components.Menu
	level  catalog.HSKLevel
	deck   []catalog.Word
	index  int
	flip   bool
	status string
}

var (
	_ screen.Screen          = (*LearnScreen)(nil)
	_ screen.KeyHintProvider = (*LearnScreen)(nil)
)

// New creates a LearnScreen that starts at the level picker.
func New(deps screen.Deps) *LearnScreen {
	s := &LearnScreen{deps: deps}
	items := make([]components.MenuItem, 0, len(catalog.Levels))
	for _, l := range catalog.Levels {
		n := len(deps.Catalog.WordsByLevel(l))
		item := components.MenuItem{
			Label: fmt.Sprintf("%s  ·  %d words", l.DisplayName(), n),
			Action: func() tea.Cmd {
				s.start(l)
				return nil
			},
		}
		if n == 0 {
			item.Disabled = true
			item.Hint = "no words"
		}
		items = append(items, item)
	}
	s.picker = components.NewMenu(items)
	return s
}

// NewAt skips the picker and opens the deck for level.
func NewAt(deps screen.Deps, level catalog.HSKLevel) *LearnScreen {
	s := New(deps)
	s.start(level)
	return s
}

func (s *LearnScreen) start(level catalog.HSKLevel) {
	s.level = level
	s.deck = s.deps.Catalog.WordsByLevel(level)
	s.index = 0
	s.flip = false
	s.status = ""
}

func (s *LearnScreen) Init() tea.Cmd { return nil }

func (s *LearnScreen) Title() string {
	if s.level == "" {
		return "Learn"
	}
	return "Learn · " + s.level.DisplayName()
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.level == "" {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Level"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "l", Description: "Learned"},
		{Key: "m", Description: "Mastered"},
		{Key: "f", Description: "Favorite"},
		{Key: "s", Description: "Speak"},
	}
}

// Current returns the word on the visible card.
func (s *LearnScreen) Current() (catalog.Word, bool) {
	if s.index < 0 || s.index >= len(s.deck) {
		return catalog.Word{}, false
	}
	return s.deck[s.index], true
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.SpokenMsg); ok {
		if m.Err != nil {
			s.status = m.Err.Error()
		}
		return s, nil
	}

	if s.level == "" {
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	w, ok := s.Current()
	if !ok {
		return s, nil
	}

	ctx := context.Background()
	switch kmsg.String() {
	case "space", " ", "enter":
		s.flip = !s.flip
	case "right", "n":
		if s.index < len(s.deck)-1 {
			s.index++
			s.flip = false
			s.status = ""
		}
	case "left", "p":
		if s.index > 0 {
			s.index--
			s.flip = false
			s.status = ""
		}
	case "l":
		if s.deps.Progress.MarkAsLearned(ctx, w.ID, w.HSKLevel) {
			s.status = "Marked " + w.Chinese + " as learned"
		} else {
			s.status = w.Chinese + " is already learned"
		}
	case "m":
		s.deps.Progress.MarkAsMastered(ctx, w.ID, w.HSKLevel)
		s.status = "Marked " + w.Chinese + " as mastered"
	case "f":
		if s.deps.Progress.ToggleFavorite(ctx, w.ID) {
			s.status = "Added " + w.Chinese + " to favorites"
		} else {
			s.status = "Removed " + w.Chinese + " from favorites"
		}
	case "s":
		s.deps.Log.Debug("speak", zap.Int("word_id", w.ID))
		return s, s.deps.Speak(w.Chinese)
	}
	return s, nil
}

func (s *LearnScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.level == "" {
		heading := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Pick a level")
		content := lipgloss.JoinVertical(lipgloss.Left, heading, "", s.picker.View())
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	w, ok := s.Current()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No words at this level"))
	}

	st := s.deps.Progress.Snapshot()
	bar := components.NewCountBar("Card", s.index+1, len(s.deck), cw).View()

	var marks []string
	if st.IsLearned(w.ID) {
		marks = append(marks, theme.Correct.Render("✓ learned"))
	}
	if st.IsMastered(w.ID, w.HSKLevel) {
		marks = append(marks, theme.Badge.Render("mastered"))
	}
	if st.IsFavorite(w.ID) {
		marks = append(marks, theme.FavoriteMark.Render("♥ favorite"))
	}

	sections := []string{
		bar,
		"",
		components.Card(s.cardFace(w), cw),
		strings.Join(marks, "  "),
	}
	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *LearnScreen) cardFace(w catalog.Word) string {
	front := []string{
		theme.Hanzi.Render(w.Chinese),
		theme.Pinyin.Render(w.Pinyin),
	}
	if !s.flip {
		return lipgloss.JoinVertical(lipgloss.Center,
			append(front, "", theme.Hint.Render("space to flip"))...)
	}

	back := append(front, "", theme.Body.Render(w.Meaning()))
	if w.Example != "" {
		back = append(back, "", theme.Body.Render(w.Example))
		if w.ExampleTranslation != "" {
			back = append(back, theme.Hint.Render(w.ExampleTranslation))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, back...)
}
