package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
)

// Storage keys. The values match the web app's local storage layout so an
// exported browser profile can be loaded as-is.
const (
	KeyFavorites     = "chinese-app-favorites"
	KeyLearned       = "chinese-app-learned"
	KeyQuizStats     = "chinese-app-quiz-stats"
	KeyStudyStreak   = "chinese-app-study-streak"
	KeyLastStudyDate = "chinese-app-last-study-date"
	KeyUserProfile   = "chinese-app-user-profile"
	KeyStudyProgress = "chinese-app-study-progress"
)

// AllKeys lists every key the store owns.
var AllKeys = []string{
	KeyFavorites,
	KeyLearned,
	KeyQuizStats,
	KeyStudyStreak,
	KeyLastStudyDate,
	KeyUserProfile,
	KeyStudyProgress,
}

// encodeSlice renders the value stored under key for st.
func encodeSlice(st *State, key string) (string, error) {
	var v any
	switch key {
	case KeyFavorites:
		v = st.Favorites
	case KeyLearned:
		v = st.LearnedWords
	case KeyQuizStats:
		v = st.QuizStats
	case KeyUserProfile:
		v = st.UserProfile
	case KeyStudyProgress:
		v = st.StudyProgress
	case KeyStudyStreak:
		return strconv.Itoa(st.StudyStreak), nil
	case KeyLastStudyDate:
		return st.LastStudyDate, nil
	default:
		return "", fmt.Errorf("unknown key %q", key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeSlice parses raw into the field of st owned by key. On error st is
// left untouched.
func decodeSlice(st *State, key, raw string) error {
	switch key {
	case KeyFavorites:
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return err
		}
		st.Favorites = nonNil(ids)
	case KeyLearned:
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return err
		}
		st.LearnedWords = nonNil(ids)
	case KeyQuizStats:
		var qs QuizStats
		if err := json.Unmarshal([]byte(raw), &qs); err != nil {
			return err
		}
		st.QuizStats = qs
	case KeyUserProfile:
		p := defaultProfile()
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return err
		}
		st.UserProfile = sanitize(p)
	case KeyStudyProgress:
		var sp map[string]*LevelProgress
		if err := json.Unmarshal([]byte(raw), &sp); err != nil {
			return err
		}
		st.StudyProgress = defaultStudyProgress()
		for l, lp := range sp {
			level := catalog.HSKLevel(l)
			if lp == nil || !level.Valid() {
				continue
			}
			st.StudyProgress[level] = lp
		}
	case KeyStudyStreak:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("negative streak %d", n)
		}
		st.StudyStreak = n
	case KeyLastStudyDate:
		st.LastStudyDate = raw
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// load rehydrates every key independently. Missing keys keep their default;
// unreadable or malformed ones are logged and also keep their default.
func (s *Store) load(ctx context.Context) {
	st := DefaultState()
	for _, key := range AllKeys {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			s.log.Warn("read progress key", zap.String("key", key), zap.Error(err))
			continue
		}
		if !ok || raw == "" {
			continue
		}
		if err := decodeSlice(&st, key, raw); err != nil {
			s.log.Warn("decode progress key, using default",
				zap.String("key", key), zap.Error(err))
		}
	}
	fillLevels(&st)
	s.state = st
}

// persist writes the named slices of the current state. Failures are logged
// and never reach the caller. Must be called with s.mu held.
func (s *Store) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		val, err := encodeSlice(&s.state, key)
		if err != nil {
			s.log.Error("encode progress key", zap.String("key", key), zap.Error(err))
			continue
		}
		if key == KeyLastStudyDate && val == "" {
			continue
		}
		if err := s.kv.Set(ctx, key, val); err != nil {
			s.log.Error("write progress key", zap.String("key", key), zap.Error(err))
		}
	}
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
