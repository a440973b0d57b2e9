package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/store"
)

type fakeClock struct{ t time.Time }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(days int) { c.t = c.t.AddDate(0, 0, days) }

func ptr[T any](v T) *T { return &v }

func openTest(t *testing.T, kv store.KV, clock *fakeClock) *Store {
	t.Helper()
	s, err := Open(context.Background(), kv, WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

// failingKV fails every operation.
type failingKV struct{}

var errKV = errors.New("disk on fire")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errKV }
func (failingKV) Set(context.Context, string, string) error         { return errKV }
func (failingKV) Delete(context.Context, ...string) error           { return errKV }

func TestOpenRequiresStorage(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestOpenEmptyGivesDefaults(t *testing.T) {
	s := openTest(t, store.NewMemoryKV(), newClock())
	st := s.Snapshot()

	assert.Empty(t, st.Favorites)
	assert.Empty(t, st.LearnedWords)
	assert.Equal(t, 0, st.StudyStreak)
	assert.Equal(t, "", st.LastStudyDate)
	assert.Equal(t, UserProfile{Name: "", TargetLevel: catalog.HSK1, DailyGoal: 10}, st.UserProfile)
	for _, l := range catalog.Levels {
		require.Contains(t, st.StudyProgress, l)
		require.Contains(t, st.QuizStats.HSKStats, l)
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := openTest(t, kv, newClock())

	assert.True(t, s.ToggleFavorite(ctx, 7))
	assert.True(t, s.Snapshot().IsFavorite(7))
	raw, ok, _ := kv.Get(ctx, KeyFavorites)
	require.True(t, ok)
	assert.Equal(t, "[7]", raw)

	assert.False(t, s.ToggleFavorite(ctx, 7))
	assert.False(t, s.Snapshot().IsFavorite(7))
	raw, _, _ = kv.Get(ctx, KeyFavorites)
	assert.Equal(t, "[]", raw)
}

func TestMarkAsLearnedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	assert.True(t, s.MarkAsLearned(ctx, 5, catalog.HSK1))
	assert.False(t, s.MarkAsLearned(ctx, 5, catalog.HSK1))

	st := s.Snapshot()
	assert.Equal(t, []int{5}, st.LearnedWords)
	assert.Equal(t, []int{5}, st.StudyProgress[catalog.HSK1].Learned)
	assert.Equal(t, 1, st.StudyStreak)
}

func TestMarkAsLearnedWithoutLevel(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	s.MarkAsLearned(ctx, 9, "")
	st := s.Snapshot()
	assert.Equal(t, []int{9}, st.LearnedWords)
	for _, l := range catalog.Levels {
		assert.Empty(t, st.StudyProgress[l].Learned, l)
	}
}

func TestStreakRules(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	s := openTest(t, store.NewMemoryKV(), clock)

	s.MarkAsLearned(ctx, 1, catalog.HSK1)
	assert.Equal(t, 1, s.Snapshot().StudyStreak, "first study day")
	assert.Equal(t, FormatDate(clock.Now()), s.Snapshot().LastStudyDate)

	s.MarkAsLearned(ctx, 2, catalog.HSK1)
	assert.Equal(t, 1, s.Snapshot().StudyStreak, "same day")

	clock.Advance(1)
	s.MarkAsLearned(ctx, 3, catalog.HSK1)
	assert.Equal(t, 2, s.Snapshot().StudyStreak, "next day")

	clock.Advance(3)
	s.MarkAsLearned(ctx, 4, catalog.HSK1)
	assert.Equal(t, 1, s.Snapshot().StudyStreak, "after a gap")
}

func TestStreakExampleScenario(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	kv := store.NewMemoryKV()
	yesterday := FormatDate(clock.Now().AddDate(0, 0, -1))
	require.NoError(t, kv.Set(ctx, KeyStudyStreak, "3"))
	require.NoError(t, kv.Set(ctx, KeyLastStudyDate, yesterday))

	s := openTest(t, kv, clock)
	s.MarkAsLearned(ctx, 5, catalog.HSK1)

	st := s.Snapshot()
	assert.Equal(t, 4, st.StudyStreak)
	assert.Equal(t, FormatDate(clock.Now()), st.LastStudyDate)
	raw, _, _ := kv.Get(ctx, KeyStudyStreak)
	assert.Equal(t, "4", raw)
}

func TestMarkAsMastered(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	s.MarkAsMastered(ctx, 3, catalog.HSK2)
	s.MarkAsMastered(ctx, 3, catalog.HSK2)
	s.MarkAsMastered(ctx, 4, "HSK9")

	st := s.Snapshot()
	assert.Equal(t, []int{3}, st.StudyProgress[catalog.HSK2].Mastered)
	assert.True(t, st.IsMastered(3, catalog.HSK2))
	assert.False(t, st.IsLearned(3), "mastering does not imply learned")
	assert.Equal(t, 0, st.StudyStreak, "mastering does not credit the streak")
}

func TestUpdateQuizStats(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	require.NoError(t, s.UpdateQuizStats(ctx, 3, 5, catalog.HSK1))
	qs := s.Snapshot().QuizStats
	assert.Equal(t, 5, qs.TotalQuizzes)
	assert.Equal(t, 3, qs.CorrectAnswers)
	assert.Equal(t, 60, qs.Accuracy)
	assert.Equal(t, LevelQuizStats{Correct: 3, Total: 5}, *qs.HSKStats[catalog.HSK1])

	require.NoError(t, s.UpdateQuizStats(ctx, 1, 1, ""))
	qs = s.Snapshot().QuizStats
	assert.Equal(t, 6, qs.TotalQuizzes)
	assert.Equal(t, 67, qs.Accuracy)
	assert.Equal(t, LevelQuizStats{Correct: 3, Total: 5}, *qs.HSKStats[catalog.HSK1])
}

func TestUpdateQuizStatsRejectsBadCounts(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	tests := []struct {
		name           string
		correct, total int
	}{
		{"negative correct", -1, 3},
		{"negative total", 0, -1},
		{"correct above total", 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdateQuizStats(ctx, tt.correct, tt.total, catalog.HSK1)
			assert.ErrorIs(t, err, ErrInvalidCounts)
		})
	}
	assert.Equal(t, 0, s.Snapshot().QuizStats.TotalQuizzes)
}

func TestUpdateQuizStatsZeroTotal(t *testing.T) {
	s := openTest(t, store.NewMemoryKV(), newClock())
	require.NoError(t, s.UpdateQuizStats(context.Background(), 0, 0, catalog.HSK1))
	assert.Equal(t, 0, s.Snapshot().QuizStats.Accuracy)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{3, 5, 60},
		{2, 3, 67},
		{1, 3, 33},
		{5, 5, 100},
		{1, 8, 13},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.total); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestUpdateUserProfileMerges(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	require.NoError(t, s.UpdateUserProfile(ctx, ProfilePatch{Name: ptr("Lan")}))
	require.NoError(t, s.UpdateUserProfile(ctx, ProfilePatch{DailyGoal: ptr(20)}))

	p := s.Snapshot().UserProfile
	assert.Equal(t, "Lan", p.Name)
	assert.Equal(t, 20, p.DailyGoal)
	assert.Equal(t, catalog.HSK1, p.TargetLevel)
}

func TestUpdateUserProfileRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	assert.ErrorIs(t, s.UpdateUserProfile(ctx, ProfilePatch{DailyGoal: ptr(0)}), ErrInvalidProfile)
	assert.ErrorIs(t, s.UpdateUserProfile(ctx, ProfilePatch{TargetLevel: ptr(catalog.HSKLevel("HSK7"))}), ErrInvalidProfile)
	assert.Equal(t, defaultProfile(), s.Snapshot().UserProfile)
}

func TestAddStudyTimeAndResetStreak(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())

	s.AddStudyTime(ctx, 15)
	s.AddStudyTime(ctx, -4)
	s.MarkAsLearned(ctx, 1, catalog.HSK1)
	s.ResetStreak(ctx)

	st := s.Snapshot()
	assert.Equal(t, 15, st.UserProfile.TotalStudyTime)
	assert.Equal(t, 0, st.StudyStreak)
	assert.NotEmpty(t, st.LastStudyDate)
}

func TestRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	kv := store.NewMemoryKV()
	s := openTest(t, kv, clock)

	s.ToggleFavorite(ctx, 2)
	s.ToggleFavorite(ctx, 11)
	s.MarkAsLearned(ctx, 2, catalog.HSK1)
	s.MarkAsLearned(ctx, 14, catalog.HSK2)
	s.MarkAsMastered(ctx, 2, catalog.HSK1)
	require.NoError(t, s.UpdateQuizStats(ctx, 4, 5, catalog.HSK2))
	require.NoError(t, s.UpdateUserProfile(ctx, ProfilePatch{Name: ptr("Minh"), TargetLevel: ptr(catalog.HSK3)}))
	s.AddStudyTime(ctx, 25)

	reopened := openTest(t, kv, clock)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}

func TestClearAllDataRemovesEveryKey(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := openTest(t, kv, newClock())

	s.ToggleFavorite(ctx, 1)
	s.MarkAsLearned(ctx, 1, catalog.HSK1)
	require.NoError(t, s.UpdateQuizStats(ctx, 1, 2, catalog.HSK1))
	require.NoError(t, s.UpdateUserProfile(ctx, ProfilePatch{Name: ptr("An")}))
	require.Len(t, kv.Keys(), len(AllKeys))

	require.NoError(t, s.ClearAllData(ctx))
	assert.Empty(t, kv.Keys())
	assert.Equal(t, DefaultState(), s.Snapshot())
}

func TestClearAllDataResetsMemoryOnStorageError(t *testing.T) {
	s := openTest(t, failingKV{}, newClock())
	s.ToggleFavorite(context.Background(), 4)

	err := s.ClearAllData(context.Background())
	assert.ErrorIs(t, err, errKV)
	assert.Empty(t, s.Snapshot().Favorites)
}

func TestStorageFailuresKeepMemoryState(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, failingKV{}, newClock())

	assert.True(t, s.ToggleFavorite(ctx, 3))
	assert.True(t, s.MarkAsLearned(ctx, 3, catalog.HSK1))
	assert.Equal(t, []int{3}, s.Snapshot().Favorites)
	assert.Equal(t, 1, s.Snapshot().StudyStreak)
}

func TestMalformedKeysFallBackIndependently(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyFavorites, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyLearned, "[1,2]"))
	require.NoError(t, kv.Set(ctx, KeyStudyStreak, "abc"))
	require.NoError(t, kv.Set(ctx, KeyUserProfile, `{"name":"Hoa"}`))
	require.NoError(t, kv.Set(ctx, KeyStudyProgress, `{"HSK2":{"learned":[2]},"HSK9":{"learned":[5]}}`))

	s := openTest(t, kv, newClock())
	st := s.Snapshot()

	assert.Empty(t, st.Favorites)
	assert.Equal(t, []int{1, 2}, st.LearnedWords)
	assert.Equal(t, 0, st.StudyStreak)
	assert.Equal(t, "Hoa", st.UserProfile.Name)
	assert.Equal(t, DefaultDailyGoal, st.UserProfile.DailyGoal, "missing profile fields keep defaults")
	assert.Equal(t, []int{2}, st.StudyProgress[catalog.HSK2].Learned)
	assert.Equal(t, []int{}, st.StudyProgress[catalog.HSK2].Mastered)
	assert.NotContains(t, st.StudyProgress, catalog.HSKLevel("HSK9"))
	assert.Len(t, st.StudyProgress, len(catalog.Levels))
}

func TestStoredProfileWithBadValuesFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyUserProfile,
		`{"name":"Lan","dailyGoal":0,"targetLevel":"HSK9","totalStudyTime":-3}`))

	p := openTest(t, kv, newClock()).Snapshot().UserProfile
	assert.Equal(t, "Lan", p.Name)
	assert.Equal(t, DefaultDailyGoal, p.DailyGoal)
	assert.Equal(t, DefaultTargetLevel, p.TargetLevel)
	assert.Equal(t, 0, p.TotalStudyTime)
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, store.NewMemoryKV(), newClock())
	s.MarkAsLearned(ctx, 1, catalog.HSK1)

	st := s.Snapshot()
	st.LearnedWords[0] = 99
	st.StudyProgress[catalog.HSK1].Learned = nil
	st.QuizStats.HSKStats[catalog.HSK1].Total = 50

	fresh := s.Snapshot()
	assert.Equal(t, []int{1}, fresh.LearnedWords)
	assert.Equal(t, []int{1}, fresh.StudyProgress[catalog.HSK1].Learned)
	assert.Equal(t, 0, fresh.QuizStats.HSKStats[catalog.HSK1].Total)
}

func TestStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(store.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := newClock()
	s := openTest(t, db.KV(), clock)
	s.ToggleFavorite(ctx, 8)
	s.MarkAsLearned(ctx, 8, catalog.HSK1)

	reopened := openTest(t, db.KV(), clock)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}
