package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/store"
)

var (
	// ErrNoStorage is returned by Open when no KV is supplied.
	ErrNoStorage = errors.New("progress: no storage")

	// ErrInvalidCounts is returned for negative quiz counts or correct > total.
	ErrInvalidCounts = errors.New("progress: invalid quiz counts")
)

// Store is the single source of truth for a learner's progress. It is
// created once per process and passed to every consumer. Every mutation
// writes the affected keys through to the KV before returning.
type Store struct {
	mu    sync.Mutex
	kv    store.KV
	state State
	now   func() time.Time
	log   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for streak bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used to report storage problems.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open creates a Store over kv and rehydrates it. Keys that are missing or
// malformed fall back to their defaults.
func Open(ctx context.Context, kv store.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, ErrNoStorage
	}
	s := &Store{
		kv:  kv,
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.load(ctx)
	s.mu.Unlock()
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ToggleFavorite flips wordID's membership in favorites and returns whether
// it is now a favorite.
func (s *Store) ToggleFavorite(ctx context.Context, wordID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added bool
	if i := slices.Index(s.state.Favorites, wordID); i >= 0 {
		s.state.Favorites = slices.Delete(s.state.Favorites, i, i+1)
	} else {
		s.state.Favorites = append(s.state.Favorites, wordID)
		added = true
	}
	s.persist(ctx, KeyFavorites)
	return added
}

// MarkAsLearned records wordID as learned and credits the study streak. It
// is a no-op returning false when the word was already learned, so repeat
// calls never double-credit the streak. An empty or unknown level skips the
// per-level set.
func (s *Store) MarkAsLearned(ctx context.Context, wordID int, level catalog.HSKLevel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.state.LearnedWords, wordID) {
		return false
	}
	s.state.LearnedWords = append(s.state.LearnedWords, wordID)

	if lp := s.state.StudyProgress[level]; lp != nil && level.Valid() {
		if !slices.Contains(lp.Learned, wordID) {
			lp.Learned = append(lp.Learned, wordID)
		}
	}

	now := s.now()
	s.state.StudyStreak = NextStreak(s.state.StudyStreak, s.state.LastStudyDate, now)
	s.state.LastStudyDate = FormatDate(now)

	s.persist(ctx, KeyLearned, KeyStudyProgress, KeyStudyStreak, KeyLastStudyDate)
	return true
}

// MarkAsMastered adds wordID to the level's mastered set. Idempotent; does
// not touch the streak and does not require the word to be learned first.
func (s *Store) MarkAsMastered(ctx context.Context, wordID int, level catalog.HSKLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lp := s.state.StudyProgress[level]
	if lp == nil || !level.Valid() || slices.Contains(lp.Mastered, wordID) {
		return
	}
	lp.Mastered = append(lp.Mastered, wordID)
	s.persist(ctx, KeyStudyProgress)
}

// UpdateQuizStats accumulates a finished quiz. level may be empty for a
// mixed-level quiz.
func (s *Store) UpdateQuizStats(ctx context.Context, correct, total int, level catalog.HSKLevel) error {
	if correct < 0 || total < 0 || correct > total {
		return fmt.Errorf("%w: %d correct of %d", ErrInvalidCounts, correct, total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qs := &s.state.QuizStats
	qs.CorrectAnswers += correct
	qs.TotalQuizzes += total
	qs.Accuracy = Accuracy(qs.CorrectAnswers, qs.TotalQuizzes)

	if level.Valid() {
		ls := qs.HSKStats[level]
		if ls == nil {
			ls = &LevelQuizStats{}
			qs.HSKStats[level] = ls
		}
		ls.Correct += correct
		ls.Total += total
	}

	s.persist(ctx, KeyQuizStats)
	return nil
}

// Accuracy returns round(correct/total*100), or 0 when total is 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// UpdateUserProfile merges the set fields of patch into the profile.
func (s *Store) UpdateUserProfile(ctx context.Context, patch ProfilePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserProfile = patch.Apply(s.state.UserProfile)
	s.persist(ctx, KeyUserProfile)
	return nil
}

// AddStudyTime adds minutes to the cumulative study time. Non-positive
// values are ignored.
func (s *Store) AddStudyTime(ctx context.Context, minutes int) {
	if minutes <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserProfile.TotalStudyTime += minutes
	s.persist(ctx, KeyUserProfile)
}

// ResetStreak sets the study streak to zero.
func (s *Store) ResetStreak(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.StudyStreak = 0
	s.persist(ctx, KeyStudyStreak)
}

// ClearAllData resets every field to its default and removes all persisted
// keys. The in-memory reset always happens; a storage error is logged and
// returned.
func (s *Store) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = DefaultState()
	if err := s.kv.Delete(ctx, AllKeys...); err != nil {
		s.log.Error("clear progress keys", zap.Error(err))
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
