package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/summary"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// levelChoices is what the setup cycles through; "" is the whole catalog.
var levelChoices = append([]catalog.HSKLevel{""}, catalog.Levels...)

// QuizScreen runs one quiz: setup, questions, then the summary.
type QuizScreen struct {
	deps    screen.Deps
	level   catalog.HSKLevel
	mode    quiz.Mode
	session *quiz.Session
	choice  components.MultiChoice
	status  string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates a QuizScreen at the setup step with the configured defaults.
func New(deps screen.Deps) *QuizScreen {
	return &QuizScreen{
		deps:  deps,
		level: deps.QuizLevel,
		mode:  deps.QuizMode,
	}
}

// Start creates a QuizScreen that begins immediately with the given
// settings. The returned command must be run for listening mode audio.
func Start(deps screen.Deps, level catalog.HSKLevel, mode quiz.Mode) *QuizScreen {
	s := &QuizScreen{deps: deps, level: level, mode: mode}
	s.begin()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.session != nil {
		return s.announce()
	}
	return nil
}

func (s *QuizScreen) Title() string { return "Quiz" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session == nil:
		return []layout.KeyHint{
			{Key: "←→", Description: "Level"},
			{Key: "m", Description: "Mode"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case s.choice.Submitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "s", Description: "Speak"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "s", Description: "Speak"},
		}
	}
}

// PoolSize is the number of words the current level draws from.
func (s *QuizScreen) PoolSize() int {
	return s.deps.Generator.PoolSize(s.level)
}

// CanStart reports whether the selected level has enough words.
func (s *QuizScreen) CanStart() bool {
	return quiz.CanStart(s.PoolSize())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpokenMsg:
		if msg.Err != nil {
			s.status = msg.Err.Error()
		}
		return s, nil
	case components.ChoiceMadeMsg:
		return s, s.answer(msg.Index)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.session == nil {
		return s, s.updateSetup(kmsg.String())
	}

	key := kmsg.String()
	if key == "s" {
		return s, s.speakCurrent()
	}
	if !s.choice.Submitted {
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	if key == "enter" || key == "n" || key == "space" {
		return s, s.next()
	}
	return s, nil
}

func (s *QuizScreen) updateSetup(key string) tea.Cmd {
	switch key {
	case "left", "h":
		s.level = cycle(levelChoices, s.level, -1)
	case "right", "l":
		s.level = cycle(levelChoices, s.level, 1)
	case "m":
		s.mode = cycle(quiz.Modes, s.mode, 1)
	case "enter":
		if !s.CanStart() {
			s.status = "Need at least 4 words to start a quiz"
			return nil
		}
		s.begin()
		return s.announce()
	}
	return nil
}

func (s *QuizScreen) begin() {
	qs, err := s.deps.Generator.Generate(s.deps.QuizQuestions, s.level)
	if err != nil {
		s.status = err.Error()
		return
	}
	s.session = quiz.NewSession(qs, s.mode, s.level)
	s.status = ""
	s.loadQuestion()
	s.deps.Log.Info("quiz started",
		zap.String("session_id", s.session.ID),
		zap.String("level", string(s.level)),
		zap.String("mode", string(s.mode)),
		zap.Int("questions", s.session.Len()))
}

func (s *QuizScreen) loadQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(s.mode.Labels(q), q.CorrectIndex())
}

// announce plays the stem in listening mode.
func (s *QuizScreen) announce() tea.Cmd {
	if s.mode != quiz.ModeListening {
		return nil
	}
	return s.speakCurrent()
}

func (s *QuizScreen) speakCurrent() tea.Cmd {
	if s.session == nil {
		return nil
	}
	q, ok := s.session.Current()
	if !ok {
		return nil
	}
	return s.deps.Speak(q.Word.Chinese)
}

func (s *QuizScreen) answer(i int) tea.Cmd {
	correct, err := s.session.AnswerIndex(i)
	if err != nil {
		s.status = err.Error()
		return nil
	}
	if correct {
		s.status = "Correct!"
	} else {
		q, _ := s.session.Current()
		s.status = "The answer was " + q.Word.Chinese + " · " + q.Word.Meaning()
	}
	return nil
}

func (s *QuizScreen) next() tea.Cmd {
	more, err := s.session.Next()
	if err != nil {
		s.status = err.Error()
		return nil
	}
	if more {
		s.status = ""
		s.loadQuestion()
		return s.announce()
	}
	return s.finish()
}

func (s *QuizScreen) finish() tea.Cmd {
	var reportErr error
	if err := s.session.Report(context.Background(), s.deps.Progress); err != nil {
		s.deps.Log.Error("record quiz", zap.Error(err))
		reportErr = err
	}
	s.deps.Log.Info("quiz finished",
		zap.String("session_id", s.session.ID),
		zap.Int("score", s.session.Score()),
		zap.Int("total", s.session.Len()))

	deps, level, mode := s.deps, s.level, s.mode
	retry := func() screen.Screen { return Start(deps, level, mode) }
	return router.Replace(summary.New(s.session, retry, reportErr))
}

func (s *QuizScreen) View(width, height int) string {
	var content string
	if s.session == nil {
		content = s.viewSetup()
	} else {
		content = s.viewQuestion(components.ContentWidth(width))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) viewSetup() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(8)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	rows := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("New quiz"),
		"",
		label.Render("Level") + value.Render("◂ "+levelName(s.level)+" ▸"),
		label.Render("Mode") + value.Render(s.mode.Title()),
		label.Render("Pool") + value.Render(fmt.Sprintf("%d words", s.PoolSize())),
		label.Render("Length") + value.Render(fmt.Sprintf("%d questions", s.deps.QuizQuestions)),
		"",
	}
	if s.CanStart() {
		rows = append(rows, theme.ButtonActive.Render("Start"))
	} else {
		rows = append(rows, theme.Disabled.Render("Start  (need at least 4 words)"))
	}
	if s.status != "" {
		rows = append(rows, "", theme.Incorrect.Render(s.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *QuizScreen) viewQuestion(cw int) string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	var stem string
	if s.mode == quiz.ModeListening {
		stem = theme.Hint.Render("🔊 " + s.mode.Prompt(q.Word) + "  (s to replay)")
	} else {
		stem = lipgloss.JoinVertical(lipgloss.Center,
			theme.Hanzi.Render(q.Word.Chinese),
			theme.Pinyin.Render(q.Word.Pinyin))
	}

	sections := []string{
		components.NewCountBar("Question", s.session.Index()+1, s.session.Len(), cw).View(),
		"",
		components.Card(stem, cw),
		"",
		s.choice.View(),
	}
	if s.status != "" {
		style := theme.Incorrect
		if r := s.session.CurrentResult(); r.Correct {
			style = theme.Correct
		}
		sections = append(sections, style.Render(s.status))
	}
	score := fmt.Sprintf("Score %d/%d", s.session.Score(), s.session.Index()+boolInt(s.choice.Submitted))
	sections = append(sections, theme.Hint.Render(score))
	return strings.Join(sections, "\n")
}

func levelName(l catalog.HSKLevel) string {
	if l == "" {
		return "All levels"
	}
	return l.DisplayName()
}

func cycle[T comparable](xs []T, cur T, step int) T {
	i := 0
	for j, x := range xs {
		if x == cur {
			i = j
			break
		}
	}
	return xs[(i+step+len(xs))%len(xs)]
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
