package progress

import "time"

// DateLayout formats calendar days the way JavaScript's Date.toDateString
// does ("Fri Oct 16 2026"), in local time.
const DateLayout = "Mon Jan 02 2006"

// FormatDate returns the calendar day of t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NextStreak returns the streak after a new word is learned at now, given
// the previous streak and the day of the last study.
//
//   - last study yesterday: streak continues, +1
//   - last study today: unchanged
//   - anything else (never, or a gap): restarts at 1
func NextStreak(streak int, lastStudyDate string, now time.Time) int {
	today := FormatDate(now)
	yesterday := FormatDate(now.AddDate(0, 0, -1))

	switch lastStudyDate {
	case yesterday:
		return streak + 1
	case today:
		return streak
	default:
		return 1
	}
}

// StreakMilestones are the streak lengths worth celebrating.
var StreakMilestones = []int{3, 7, 14, 30}

// NextStreakMilestone returns the next milestone above the current streak.
func NextStreakMilestone(current int) int {
	for _, m := range StreakMilestones {
		if m > current {
			return m
		}
	}
	// Beyond the last milestone, every 30 days.
	return ((current / 30) + 1) * 30
}
