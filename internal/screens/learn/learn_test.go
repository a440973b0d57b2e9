package learn

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/screen/screentest"
)

func TestPickLevelOpensDeck(t *testing.T) {
	deps := screentest.Deps(t)
	s := New(deps)
	if s.Title() != "Learn" {
		t.Errorf("Title = %q", s.Title())
	}

	s.Update(screentest.Special(tea.KeyDown))
	s.Update(screentest.Special(tea.KeyEnter))

	if s.level != catalog.HSK2 {
		t.Fatalf("level = %q, want HSK2", s.level)
	}
	if len(s.deck) != len(deps.Catalog.WordsByLevel(catalog.HSK2)) {
		t.Errorf("deck has %d cards", len(s.deck))
	}
}

func TestFlipAndNavigate(t *testing.T) {
	s := NewAt(screentest.Deps(t), catalog.HSK1)
	first, _ := s.Current()

	front := s.View(80, 24)
	if strings.Contains(front, first.Vietnamese) {
		t.Error("meaning should be hidden before flipping")
	}
	s.Update(screentest.Key(' '))
	if !strings.Contains(s.View(80, 24), first.Vietnamese) {
		t.Error("meaning should show after flipping")
	}

	s.Update(screentest.Special(tea.KeyRight))
	if s.index != 1 || s.flip {
		t.Errorf("after next: index=%d flip=%v", s.index, s.flip)
	}
	s.Update(screentest.Special(tea.KeyLeft))
	s.Update(screentest.Special(tea.KeyLeft))
	if s.index != 0 {
		t.Errorf("prev should stop at the first card, index=%d", s.index)
	}
}

func TestMarkKeysUpdateProgress(t *testing.T) {
	deps := screentest.Deps(t)
	s := NewAt(deps, catalog.HSK1)
	w, _ := s.Current()

	s.Update(screentest.Key('l'))
	s.Update(screentest.Key('m'))
	s.Update(screentest.Key('f'))

	st := deps.Progress.Snapshot()
	if !st.IsLearned(w.ID) {
		t.Error("word should be learned")
	}
	if !st.IsMastered(w.ID, catalog.HSK1) {
		t.Error("word should be mastered")
	}
	if !st.IsFavorite(w.ID) {
		t.Error("word should be a favorite")
	}
	if st.StudyStreak != 1 {
		t.Errorf("streak = %d, want 1", st.StudyStreak)
	}

	s.Update(screentest.Key('l'))
	if !strings.Contains(s.status, "already learned") {
		t.Errorf("status = %q", s.status)
	}
}

func TestSpeakWithoutSpeaker(t *testing.T) {
	s := NewAt(screentest.Deps(t), catalog.HSK1)
	_, cmd := s.Update(screentest.Key('s'))
	msg := screentest.Drain(cmd)
	if msg == nil {
		t.Fatal("speak should return a command")
	}
	s.Update(msg)
	if !strings.Contains(s.status, "pronunciation is off") {
		t.Errorf("status = %q", s.status)
	}
}
