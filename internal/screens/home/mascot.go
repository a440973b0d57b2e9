package home

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// MascotVariant selects which panda to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no study history yet
	MascotCelebrating                      // studied today
	MascotAlert                            // streak ends unless the learner studies today
)

const mascotIdle = ` ʕ•ᴥ•ʔ
 /| 学|\`

const mascotCelebrating = `\ʕ^ᴥ^ʔ/
  | 学|`

const mascotAlert = ` ʕ•ᴥ•ʔ !
 /| 学|\`

// mascotFor picks the panda for the learner's streak state at now.
func mascotFor(st progress.State, now time.Time) MascotVariant {
	switch st.LastStudyDate {
	case "":
		return MascotIdle
	case progress.FormatDate(now):
		return MascotCelebrating
	case progress.FormatDate(now.AddDate(0, 0, -1)):
		if st.StudyStreak > 0 {
			return MascotAlert
		}
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Text
	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Secondary
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
