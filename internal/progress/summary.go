package progress

import "github.com/abhisek/hanzi/internal/catalog"

// LevelSummary is the per-level view shown on the profile screen.
type LevelSummary struct {
	Level    catalog.HSKLevel
	Total    int
	Learned  int
	Mastered int
	Percent  int // learned / total, rounded
}

// LevelSummaries computes learned and mastered counts for every level
// against the catalog's word counts.
func LevelSummaries(st State, cat *catalog.Catalog) []LevelSummary {
	out := make([]LevelSummary, 0, len(catalog.Levels))
	for _, l := range catalog.Levels {
		ls := LevelSummary{Level: l, Total: len(cat.WordsByLevel(l))}
		if lp := st.StudyProgress[l]; lp != nil {
			ls.Learned = len(lp.Learned)
			ls.Mastered = len(lp.Mastered)
		}
		ls.Percent = Accuracy(ls.Learned, ls.Total)
		out = append(out, ls)
	}
	return out
}

// OverallProgress returns the share of catalog words learned, in percent.
func OverallProgress(st State, cat *catalog.Catalog) int {
	return Accuracy(len(st.LearnedWords), cat.Len())
}

// Achievement is a badge unlocked by reaching a progress threshold.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    bool
}

// Achievements evaluates every badge against st, in display order.
func Achievements(st State) []Achievement {
	learned := len(st.LearnedWords)
	return []Achievement{
		{ID: "first_word", Title: "First word", Description: "Learn your first word", Icon: "🎯", Unlocked: learned > 0},
		{ID: "ten_words", Title: "Beginner", Description: "Learn 10 words", Icon: "📚", Unlocked: learned >= 10},
		{ID: "fifty_words", Title: "Young scholar", Description: "Learn 50 words", Icon: "🎓", Unlocked: learned >= 50},
		{ID: "hundred_words", Title: "Vocabulary expert", Description: "Learn 100 words", Icon: "🏆", Unlocked: learned >= 100},
		{ID: "streak_7", Title: "Persistent", Description: "Study 7 days in a row", Icon: "🔥", Unlocked: st.StudyStreak >= 7},
		{ID: "quiz_master", Title: "Quiz master", Description: "Reach 80% quiz accuracy", Icon: "🎯", Unlocked: st.QuizStats.Accuracy >= 80},
	}
}

// UnlockedCount returns how many achievements are unlocked.
func UnlockedCount(as []Achievement) int {
	n := 0
	for _, a := range as {
		if a.Unlocked {
			n++
		}
	}
	return n
}
