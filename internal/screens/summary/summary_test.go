package summary

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func word(id int, hanzi, meaning string) catalog.Word {
	return catalog.Word{ID: id, Chinese: hanzi, Vietnamese: meaning, HSKLevel: catalog.HSK1}
}

// finishedSession answers the first question right and the second wrong.
func finishedSession(t *testing.T) *quiz.Session {
	t.Helper()
	opts := []catalog.Word{word(1, "你好", "xin chào"), word(2, "谢谢", "cảm ơn"), word(3, "再见", "tạm biệt"), word(4, "我", "tôi")}
	qs := []quiz.Question{
		{Word: opts[0], Options: opts, CorrectAnswerID: 1},
		{Word: opts[1], Options: opts, CorrectAnswerID: 2},
	}
	s := quiz.NewSession(qs, quiz.ModeMeaning, catalog.HSK1)
	for _, pick := range []int{1, 3} {
		if _, err := s.Answer(pick); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Next(); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestSummaryView(t *testing.T) {
	s := New(finishedSession(t), nil, nil)
	view := s.View(80, 24)
	for _, want := range []string{"50%", "Correct: 1", "Wrong: 1", "谢谢"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "你好") {
		t.Error("correct answers should not be listed for review")
	}
}

func TestSummaryShowsReportError(t *testing.T) {
	s := New(finishedSession(t), nil, errors.New("disk full"))
	if !strings.Contains(s.View(80, 24), "Score not saved") {
		t.Error("report error should be shown")
	}
}

func TestSummaryRetry(t *testing.T) {
	calls := 0
	retry := func() screen.Screen {
		calls++
		return &stubScreen{}
	}
	s := New(finishedSession(t), retry, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg")
	}
	if calls != 1 {
		t.Errorf("retry called %d times", calls)
	}
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
}

func TestSummaryEnterPops(t *testing.T) {
	s := New(finishedSession(t), nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "Perfect score!"},
		{80, "Great job!"},
		{60, "Good effort, keep going"},
		{0, "Keep practicing"},
	}
	for _, tt := range tests {
		if got := Verdict(tt.percent); got != tt.want {
			t.Errorf("Verdict(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
