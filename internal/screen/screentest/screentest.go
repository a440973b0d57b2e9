// Package screentest builds screen dependencies backed by memory storage
// and the embedded catalog.
package screentest

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/store"
)

// Deps returns dependencies over a fresh in-memory progress store. The
// quiz generator is seeded so question order is stable.
func Deps(t *testing.T) screen.Deps {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	p, err := progress.Open(context.Background(), store.NewMemoryKV())
	if err != nil {
		t.Fatalf("open progress: %v", err)
	}
	return screen.Deps{
		Progress:  p,
		Catalog:   cat,
		Generator: quiz.NewGenerator(cat, quiz.WithSeed(7)),
	}.WithDefaults()
}

// Key returns a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a key press for a named key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Drain runs cmd and returns its message, or nil for a nil command.
func Drain(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
