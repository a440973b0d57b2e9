package progress

import (
	"slices"

	"github.com/abhisek/hanzi/internal/catalog"
)

// LevelProgress tracks learned and mastered word ids within one HSK level.
// Mastered is not required to be a subset of Learned.
type LevelProgress struct {
	Learned  []int `json:"learned"`
	Mastered []int `json:"mastered"`
}

// LevelQuizStats accumulates quiz answers for one HSK level.
type LevelQuizStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuizStats accumulates quiz answers across all sessions.
type QuizStats struct {
	TotalQuizzes   int                                  `json:"totalQuizzes"`
	CorrectAnswers int                                  `json:"correctAnswers"`
	Accuracy       int                                  `json:"accuracy"` // percent, 0..100
	HSKStats       map[catalog.HSKLevel]*LevelQuizStats `json:"hskStats"`
}

// UserProfile holds learner preferences and cumulative study time.
type UserProfile struct {
	Name           string           `json:"name"`
	TargetLevel    catalog.HSKLevel `json:"targetLevel"`
	DailyGoal      int              `json:"dailyGoal"`
	TotalStudyTime int              `json:"totalStudyTime"` // minutes
}

// State is the complete persisted learning progress of one learner.
type State struct {
	Favorites     []int
	LearnedWords  []int
	StudyProgress map[catalog.HSKLevel]*LevelProgress
	QuizStats     QuizStats
	StudyStreak   int
	LastStudyDate string // calendar day in DateLayout, empty when never studied
	UserProfile   UserProfile
}

// Default profile values.
const (
	DefaultDailyGoal   = 10
	DefaultTargetLevel = catalog.HSK1
)

// DefaultState returns the state of a learner with no history.
func DefaultState() State {
	return State{
		Favorites:     []int{},
		LearnedWords:  []int{},
		StudyProgress: defaultStudyProgress(),
		QuizStats:     defaultQuizStats(),
		UserProfile:   defaultProfile(),
	}
}

func defaultStudyProgress() map[catalog.HSKLevel]*LevelProgress {
	m := make(map[catalog.HSKLevel]*LevelProgress, len(catalog.Levels))
	for _, l := range catalog.Levels {
		m[l] = &LevelProgress{Learned: []int{}, Mastered: []int{}}
	}
	return m
}

func defaultQuizStats() QuizStats {
	hsk := make(map[catalog.HSKLevel]*LevelQuizStats, len(catalog.Levels))
	for _, l := range catalog.Levels {
		hsk[l] = &LevelQuizStats{}
	}
	return QuizStats{HSKStats: hsk}
}

func defaultProfile() UserProfile {
	return UserProfile{TargetLevel: DefaultTargetLevel, DailyGoal: DefaultDailyGoal}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Favorites = slices.Clone(s.Favorites)
	out.LearnedWords = slices.Clone(s.LearnedWords)

	out.StudyProgress = make(map[catalog.HSKLevel]*LevelProgress, len(s.StudyProgress))
	for l, lp := range s.StudyProgress {
		out.StudyProgress[l] = &LevelProgress{
			Learned:  slices.Clone(lp.Learned),
			Mastered: slices.Clone(lp.Mastered),
		}
	}

	out.QuizStats.HSKStats = make(map[catalog.HSKLevel]*LevelQuizStats, len(s.QuizStats.HSKStats))
	for l, st := range s.QuizStats.HSKStats {
		c := *st
		out.QuizStats.HSKStats[l] = &c
	}
	return out
}

// IsFavorite reports whether id is in the favorites set.
func (s State) IsFavorite(id int) bool {
	return slices.Contains(s.Favorites, id)
}

// IsLearned reports whether id has ever been marked learned.
func (s State) IsLearned(id int) bool {
	return slices.Contains(s.LearnedWords, id)
}

// IsMastered reports whether id is mastered at level.
func (s State) IsMastered(id int, level catalog.HSKLevel) bool {
	lp := s.StudyProgress[level]
	return lp != nil && slices.Contains(lp.Mastered, id)
}

// fillLevels adds default entries for levels missing from rehydrated maps.
func fillLevels(st *State) {
	if st.StudyProgress == nil {
		st.StudyProgress = defaultStudyProgress()
	}
	for _, l := range catalog.Levels {
		cur := st.StudyProgress[l]
		if cur == nil {
			st.StudyProgress[l] = &LevelProgress{Learned: []int{}, Mastered: []int{}}
			continue
		}
		if cur.Learned == nil {
			cur.Learned = []int{}
		}
		if cur.Mastered == nil {
			cur.Mastered = []int{}
		}
	}
	if st.QuizStats.HSKStats == nil {
		st.QuizStats.HSKStats = make(map[catalog.HSKLevel]*LevelQuizStats, len(catalog.Levels))
	}
	for _, l := range catalog.Levels {
		if st.QuizStats.HSKStats[l] == nil {
			st.QuizStats.HSKStats[l] = &LevelQuizStats{}
		}
	}
}
