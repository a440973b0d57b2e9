package vocab

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// VocabScreen is the searchable, paginated word list. In favorites mode it
// lists only favorite words.
type VocabScreen struct {
	deps      screen.Deps
	favorites bool
	search    components.TextInput
	filter    catalog.Filter
	page      int
	cursor    int
	detail    bool
	status    string
}

var (
	_ screen.Screen          = (*VocabScreen)(nil)
	_ screen.KeyHintProvider = (*VocabScreen)(nil)
	_ screen.Resumer         = (*VocabScreen)(nil)
	_ screen.InputCapturer   = (*VocabScreen)(nil)
)

// New creates the full vocabulary browser.
func New(deps screen.Deps) *VocabScreen {
	return &VocabScreen{
		deps:   deps,
		search: components.NewTextInput("Search", "hanzi, pinyin or meaning", 40),
		page:   1,
	}
}

// NewFavorites creates the browser restricted to favorite words.
func NewFavorites(deps screen.Deps) *VocabScreen {
	s := New(deps)
	s.favorites = true
	return s
}

func (s *VocabScreen) Init() tea.Cmd { return nil }

func (s *VocabScreen) Title() string {
	if s.favorites {
		return "Favorites"
	}
	return "Vocabulary"
}

func (s *VocabScreen) Resume() tea.Cmd {
	s.clampCursor()
	return nil
}

func (s *VocabScreen) CapturingInput() bool { return s.search.Focused() }

func (s *VocabScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "l", Description: "Level"},
		{Key: "t", Description: "Topic"},
		{Key: "←→", Description: "Page"},
		{Key: "f", Description: "Favorite"},
		{Key: "Enter", Description: "Details"},
	}
}

// words returns every word matching the current filter.
func (s *VocabScreen) words() []catalog.Word {
	src := s.deps.Catalog.AllWords()
	if s.favorites {
		src = s.deps.Catalog.WordsByIDs(s.deps.Progress.Snapshot().Favorites)
	}
	return s.filter.Apply(src)
}

// Page returns the visible page.
func (s *VocabScreen) Page() catalog.Page {
	return catalog.Paginate(s.words(), s.page, catalog.DefaultPageSize)
}

// Selected returns the word under the cursor.
func (s *VocabScreen) Selected() (catalog.Word, bool) {
	p := s.Page()
	if s.cursor < 0 || s.cursor >= len(p.Items) {
		return catalog.Word{}, false
	}
	return p.Items[s.cursor], true
}

func (s *VocabScreen) clampCursor() {
	p := s.Page()
	s.page = p.Number
	s.cursor = max(0, min(s.cursor, len(p.Items)-1))
}

func (s *VocabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.SpokenMsg); ok {
		if m.Err != nil {
			s.status = m.Err.Error()
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.search.Focused() {
		switch kmsg.String() {
		case "enter", "esc":
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.setQuery(s.search.Value())
		return s, cmd
	}

	switch kmsg.String() {
	case "/":
		s.detail = false
		return s, s.search.Focus()
	case "l":
		s.filter.Level = cycleLevel(s.filter.Level)
		if s.filter.Topic != "" && !s.topicInLevel(s.filter.Topic) {
			s.filter.Topic = ""
		}
		s.resetPage()
	case "t":
		s.filter.Topic = s.nextTopic()
		s.resetPage()
	case "x":
		s.filter = catalog.Filter{}
		s.search.SetValue("")
		s.resetPage()
	case "right", "pgdown":
		s.page++
		s.cursor = 0
		s.clampCursor()
	case "left", "pgup":
		s.page--
		s.cursor = 0
		s.clampCursor()
	case "down", "j":
		s.cursor++
		s.clampCursor()
	case "up", "k":
		s.cursor--
		s.clampCursor()
	case "enter", "space":
		s.detail = !s.detail
	case "f":
		if w, ok := s.Selected(); ok {
			if s.deps.Progress.ToggleFavorite(context.Background(), w.ID) {
				s.status = "Added " + w.Chinese + " to favorites"
			} else {
				s.status = "Removed " + w.Chinese + " from favorites"
			}
			s.clampCursor()
		}
	case "s":
		if w, ok := s.Selected(); ok {
			return s, s.deps.Speak(w.Chinese)
		}
	}
	return s, nil
}

func (s *VocabScreen) setQuery(q string) {
	if q == s.filter.Query {
		return
	}
	s.filter.Query = q
	s.resetPage()
}

func (s *VocabScreen) resetPage() {
	s.page = 1
	s.cursor = 0
	s.detail = false
	s.status = ""
}

func (s *VocabScreen) topics() []catalog.Topic {
	if s.filter.Level == "" {
		return s.deps.Catalog.Topics()
	}
	return s.deps.Catalog.TopicsByLevel(s.filter.Level)
}

func (s *VocabScreen) topicInLevel(id string) bool {
	for _, t := range s.topics() {
		if t.ID == id {
			return true
		}
	}
	return false
}

// nextTopic cycles "" → first topic → ... → last topic → "".
func (s *VocabScreen) nextTopic() string {
	ts := s.topics()
	if s.filter.Topic == "" {
		if len(ts) == 0 {
			return ""
		}
		return ts[0].ID
	}
	for i, t := range ts {
		if t.ID == s.filter.Topic && i+1 < len(ts) {
			return ts[i+1].ID
		}
	}
	return ""
}

func cycleLevel(l catalog.HSKLevel) catalog.HSKLevel {
	if l == "" {
		return catalog.Levels[0]
	}
	for i, x := range catalog.Levels {
		if x == l && i+1 < len(catalog.Levels) {
			return catalog.Levels[i+1]
		}
	}
	return ""
}

func (s *VocabScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.deps.Progress.Snapshot()
	p := s.Page()

	sections := []string{s.search.View(), s.filterLine()}

	if len(p.Items) == 0 {
		empty := "No words match"
		if s.favorites && len(st.Favorites) == 0 {
			empty = "No favorites yet. Press f on a word to add it."
		}
		sections = append(sections, "", theme.Hint.Render(empty))
	} else {
		sections = append(sections, "")
		for i, w := range p.Items {
			sections = append(sections, s.row(w, i == s.cursor, st.IsFavorite(w.ID), st.IsLearned(w.ID), cw))
		}
		sections = append(sections, "", theme.Hint.Render(
			fmt.Sprintf("Page %d of %d · %d words", p.Number, p.TotalPages, p.Total)))
	}

	if w, ok := s.Selected(); ok && s.detail {
		sections = append(sections, "", components.Card(detail(w), cw))
	}
	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *VocabScreen) filterLine() string {
	level := "All levels"
	if s.filter.Level != "" {
		level = s.filter.Level.DisplayName()
	}
	topic := "All topics"
	if t, ok := s.deps.Catalog.Topic(s.filter.Topic); ok {
		topic = t.Name
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return dim.Render("Level ") + theme.Body.Render(level) + dim.Render("   Topic ") + theme.Body.Render(topic)
}

func (s *VocabScreen) row(w catalog.Word, selected, favorite, learned bool, cw int) string {
	mark := "  "
	if favorite {
		mark = theme.FavoriteMark.Render("♥ ")
	}
	done := " "
	if learned {
		done = theme.Correct.Render("✓")
	}
	text := fmt.Sprintf("%-6s %-14s %s", w.Chinese, w.Pinyin, w.Meaning())
	if lipgloss.Width(text) > cw-6 {
		text = truncate(text, cw-6)
	}
	style := theme.Unselected
	prefix := "  "
	if selected {
		style = theme.Selected
		prefix = "▸ "
	}
	return style.Render(prefix) + mark + style.Render(text) + " " + done
}

func detail(w catalog.Word) string {
	lines := []string{
		theme.Hanzi.Render(w.Chinese) + "  " + theme.Pinyin.Render(w.Pinyin),
		"",
		theme.Body.Render(w.Meaning()),
	}
	if w.Example != "" {
		lines = append(lines, "", theme.Body.Render(w.Example))
		if w.ExampleTranslation != "" {
			lines = append(lines, theme.Hint.Render(w.ExampleTranslation))
		}
	}
	lines = append(lines, "", theme.Badge.Render(string(w.HSKLevel)))
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	rs := []rune(s)
	for len(rs) > 0 && lipgloss.Width(string(rs)) > width-1 {
		rs = rs[:len(rs)-1]
	}
	return string(rs) + "…"
}
