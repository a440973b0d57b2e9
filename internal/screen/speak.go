package screen

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
)

var errSpeechOff = errors.New("pronunciation is off; set speech.command")

// SpokenMsg reports the outcome of a pronunciation request.
type SpokenMsg struct {
	Text string
	Err  error
}

// Speak pronounces text off the UI goroutine.
func (d Deps) Speak(text string) tea.Cmd {
	sp := d.Speaker
	if sp == nil || !sp.Enabled() {
		return func() tea.Msg {
			return SpokenMsg{Text: text, Err: errSpeechOff}
		}
	}
	return func() tea.Msg {
		return SpokenMsg{Text: text, Err: sp.Speak(context.Background(), text)}
	}
}
