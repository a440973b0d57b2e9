package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screen/screentest"
	"github.com/abhisek/hanzi/internal/screens/summary"
)

// smallDeps has three HSK3 words, below the quiz minimum.
func smallDeps(t *testing.T) screen.Deps {
	t.Helper()
	deps := screentest.Deps(t)
	var doc catalog.Document
	doc.Words = append(doc.Words, deps.Catalog.WordsByLevel(catalog.HSK1)...)
	doc.Words = append(doc.Words, deps.Catalog.WordsByLevel(catalog.HSK3)[:3]...)
	cat, err := catalog.New(doc)
	if err != nil {
		t.Fatal(err)
	}
	deps.Catalog = cat
	deps.Generator = quiz.NewGenerator(cat, quiz.WithSeed(1))
	return deps
}

func TestSetupCyclesLevelAndMode(t *testing.T) {
	s := New(screentest.Deps(t))
	if s.level != "" || s.mode != quiz.ModeMeaning {
		t.Fatalf("defaults: level=%q mode=%q", s.level, s.mode)
	}

	s.Update(screentest.Special(tea.KeyRight))
	if s.level != catalog.HSK1 {
		t.Errorf("level = %q, want HSK1", s.level)
	}
	s.Update(screentest.Special(tea.KeyLeft))
	s.Update(screentest.Special(tea.KeyLeft))
	if s.level != catalog.HSK5 {
		t.Errorf("level = %q, want HSK5 after wrapping", s.level)
	}

	s.Update(screentest.Key('m'))
	if s.mode != quiz.ModeListening {
		t.Errorf("mode = %q, want listening", s.mode)
	}
}

func TestStartDisabledForSmallPool(t *testing.T) {
	s := New(smallDeps(t))
	s.level = catalog.HSK3

	if s.CanStart() {
		t.Fatal("three words should not be enough")
	}
	if !strings.Contains(s.View(80, 24), "need at least 4 words") {
		t.Error("setup should explain why start is disabled")
	}
	s.Update(screentest.Special(tea.KeyEnter))
	if s.session != nil {
		t.Error("quiz should not start")
	}
}

func TestQuizRunsToSummaryAndRecordsStats(t *testing.T) {
	deps := screentest.Deps(t)
	s := New(deps)
	s.level = catalog.HSK1
	s.Update(screentest.Special(tea.KeyEnter))
	if s.session == nil {
		t.Fatal("quiz should start")
	}
	if s.session.Len() != quiz.DefaultQuestionCount {
		t.Fatalf("session has %d questions", s.session.Len())
	}

	var last tea.Cmd
	for i := 0; i < s.session.Len(); i++ {
		q, _ := s.session.Current()
		_, cmd := s.Update(screentest.Key(rune('1' + q.CorrectIndex())))
		s.Update(screentest.Drain(cmd))
		if !s.choice.Submitted {
			t.Fatalf("question %d not submitted", i)
		}

		// A second pick is ignored.
		s.Update(screentest.Key('1'))
		if got := s.session.Score(); got != i+1 {
			t.Fatalf("score = %d, want %d", got, i+1)
		}
		_, last = s.Update(screentest.Special(tea.KeyEnter))
	}

	msg, ok := screentest.Drain(last).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("finishing should replace the quiz with the summary")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement is %T", msg.Screen)
	}

	st := deps.Progress.Snapshot()
	if st.QuizStats.TotalQuizzes != s.session.Len() || st.QuizStats.CorrectAnswers != 5 || st.QuizStats.Accuracy != 100 {
		t.Errorf("quiz stats = %+v", st.QuizStats)
	}
	if got := st.QuizStats.HSKStats[catalog.HSK1]; got.Correct != 5 || got.Total != 5 {
		t.Errorf("HSK1 stats = %+v", got)
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	s := Start(screentest.Deps(t), catalog.HSK1, quiz.ModeMeaning)
	s.Update(screentest.Special(tea.KeyEnter))
	if s.session.Index() != 0 {
		t.Error("enter before answering should not advance")
	}
}

func TestListeningModeSpeaksStem(t *testing.T) {
	s := Start(screentest.Deps(t), catalog.HSK1, quiz.ModeListening)
	msg := screentest.Drain(s.Init())
	if _, ok := msg.(screen.SpokenMsg); !ok {
		t.Fatalf("Init should speak the stem, got %T", msg)
	}

	q, _ := s.session.Current()
	if !strings.Contains(s.View(80, 24), "Listen") {
		t.Error("listening mode should prompt to listen")
	}
	if !strings.Contains(strings.Join(s.choice.Options, "\n"), q.Word.Chinese) {
		t.Error("listening options should show hanzi")
	}
}

func TestMeaningModeOptionsAreMeanings(t *testing.T) {
	s := Start(screentest.Deps(t), catalog.HSK1, quiz.ModeMeaning)
	q, _ := s.session.Current()
	if got := s.choice.Options[q.CorrectIndex()]; got != q.Word.Meaning() {
		t.Errorf("correct option = %q, want %q", got, q.Word.Meaning())
	}
	if s.Init() != nil {
		t.Error("meaning mode should not speak on start")
	}
}
