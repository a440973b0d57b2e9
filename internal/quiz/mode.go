package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/hanzi/internal/catalog"
)

// Mode selects what the learner is shown and what they pick.
type Mode string

const (
	// ModeMeaning shows the hanzi and pinyin; options are meanings.
	ModeMeaning Mode = "meaning"
	// ModeListening pronounces the word; options are hanzi.
	ModeListening Mode = "listening"
)

// Modes lists the supported modes in menu order.
var Modes = []Mode{ModeMeaning, ModeListening}

// ParseMode accepts a mode name, case-insensitively. Empty means ModeMeaning.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMeaning:
		return ModeMeaning, nil
	case ModeListening:
		return ModeListening, nil
	}
	return "", fmt.Errorf("unknown quiz mode %q (want meaning or listening)", s)
}

// Title is the menu label for the mode.
func (m Mode) Title() string {
	if m == ModeListening {
		return "Listening"
	}
	return "Meaning"
}

// Prompt is the text shown for the stem. Listening mode hides the word.
func (m Mode) Prompt(w catalog.Word) string {
	if m == ModeListening {
		return "Listen and pick the matching word"
	}
	return w.Chinese + "  " + w.Pinyin
}

// OptionLabel renders one answer option.
func (m Mode) OptionLabel(w catalog.Word) string {
	if m == ModeListening {
		return w.Chinese + "  " + w.Pinyin
	}
	return w.Meaning()
}

// Labels renders every option of q.
func (m Mode) Labels(q Question) []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = m.OptionLabel(o)
	}
	return out
}
