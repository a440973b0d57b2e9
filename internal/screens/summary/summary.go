package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// SummaryScreen shows the result of a finished quiz.
type SummaryScreen struct {
	session   *quiz.Session
	retry     func() screen.Screen
	reportErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retry builds a fresh quiz with the same
// settings; reportErr is shown when the score could not be recorded.
func New(session *quiz.Session, retry func() screen.Screen, reportErr error) *SummaryScreen {
	return &SummaryScreen{session: session, retry: retry, reportErr: reportErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.retry != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Done"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r":
			if s.retry != nil {
				return s, router.Replace(s.retry())
			}
		case "enter":
			return s, router.Pop()
		}
	}
	return s, nil
}

// Verdict is the one-line reaction to a percentage.
func Verdict(percent int) string {
	switch {
	case percent == 100:
		return "Perfect score!"
	case percent >= 80:
		return "Great job!"
	case percent >= 50:
		return "Good effort, keep going"
	default:
		return "Keep practicing"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sess := s.session
	if sess == nil {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
		fmt.Sprintf("%d%%", sess.Percent())))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), Verdict(sess.Percent())))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Correct: %d        Wrong: %d        Questions: %d",
		sess.Score(), sess.Wrong(), sess.Len())
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n\n")

	if missed := s.missed(); len(missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, line := range missed {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
	}

	if s.reportErr != nil {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect, "Score not saved: "+s.reportErr.Error()))
	}
	return b.String()
}

// missed lists the words answered wrongly, with their meaning.
func (s *SummaryScreen) missed() []string {
	var out []string
	for i, r := range s.session.Results() {
		if r.Correct {
			continue
		}
		q := s.session.Question(i)
		out = append(out, theme.Hanzi.Render(q.Word.Chinese)+"  "+
			theme.Pinyin.Render(q.Word.Pinyin)+"  "+
			lipgloss.NewStyle().Foreground(theme.Text).Render(q.Word.Meaning()))
	}
	return out
}
