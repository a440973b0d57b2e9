package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/speech"
)

// run executes the root command against a database in a temp dir.
func run(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HANZI_DB", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLearnFavoriteAndStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hanzi.db")

	out, err := run(t, db, "", "learn", "mark", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "你好")
	assert.Contains(t, out, "Streak: 1")

	out, err = run(t, db, "", "learn", "mark", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "already learned")

	_, err = run(t, db, "", "learn", "master", "1")
	require.NoError(t, err)

	out, err = run(t, db, "", "favorite", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")

	out, err = run(t, db, "", "favorite", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "✓♥")

	out, err = run(t, db, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Learned:     2 words")
	assert.Contains(t, out, "Favorites:   1")
	assert.Contains(t, out, "Achievements 1/6")
}

func TestDBFlagRejectedForPostgres(t *testing.T) {
	t.Setenv("HANZI_STORAGE_DRIVER", "postgres")
	t.Setenv("HANZI_STORAGE_DSN", "postgres://localhost/hanzi?sslmode=disable")

	_, err := run(t, filepath.Join(t.TempDir(), "hanzi.db"), "", "stats")
	assert.ErrorIs(t, err, errDBFlagNeedsSQLite)
}

func TestLearnUnknownWord(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hanzi.db")
	_, err := run(t, db, "", "learn", "mark", "9999")
	assert.ErrorIs(t, err, catalog.ErrUnknownWord)

	_, err = run(t, db, "", "learn", "mark", "abc")
	assert.Error(t, err)
}

func TestVocabTopics(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hanzi.db")
	out, err := run(t, db, "", "vocab", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "greetings")
}

func TestProfileUpdate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hanzi.db")
	out, err := run(t, db, "", "profile", "--name", "Mai", "--target", "HSK3", "--daily-goal", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:        Mai")
	assert.Contains(t, out, "Target:      HSK3")
	assert.Contains(t, out, "Daily goal:  20 words")
}

func TestResetNeedsConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hanzi.db")
	_, err := run(t, db, "", "learn", "mark", "3")
	require.NoError(t, err)

	out, err := run(t, db, "no\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = run(t, db, "yes\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All progress erased.")

	out, err = run(t, db, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Learned:     0 words")
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "words.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Chinese", "Pinyin", "Vietnamese", "English", "Level", "Topic"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"猫", "māo", "con mèo", "cat", "HSK1", "Animals"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"狗", "gǒu", "con chó", "dog", "HSK1", "Animals"}))
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	out, err := run(t, filepath.Join(dir, "hanzi.db"), "", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 rows (1 topics)")

	cat, err := catalog.Load(filepath.Join(dir, "words.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	_, err = os.Stat(filepath.Join(dir, "words.json"))
	assert.NoError(t, err)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{" 4 ", 3, true},
		{"b", 1, true},
		{"D", 3, true},
		{"5", 4, false},
		{"e", 4, false},
		{"", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, 4)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func quizSession(t *testing.T) *quiz.Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	qs, err := quiz.NewGenerator(cat, quiz.WithSeed(3)).Generate(3, catalog.HSK1)
	require.NoError(t, err)
	return quiz.NewSession(qs, quiz.ModeMeaning, catalog.HSK1)
}

func TestRunQuizAllCorrect(t *testing.T) {
	sess := quizSession(t)
	var answers strings.Builder
	answers.WriteString("nonsense\n")
	for i := range sess.Len() {
		answers.WriteString(string(rune('1'+sess.Question(i).CorrectIndex())) + "\n")
	}

	var out bytes.Buffer
	err := runQuiz(context.Background(), strings.NewReader(answers.String()), &out, sess, speech.Nop{})
	require.NoError(t, err)
	assert.True(t, sess.Finished())
	assert.Equal(t, 3, sess.Score())
	assert.Contains(t, out.String(), "Answer with 1-4 or a-d")
	assert.Contains(t, out.String(), "Score: 3/3 (100%)")
}

func TestRunQuizAbandoned(t *testing.T) {
	sess := quizSession(t)
	var out bytes.Buffer
	err := runQuiz(context.Background(), strings.NewReader("1\n"), &out, sess, speech.Nop{})
	assert.True(t, errors.Is(err, errQuizAbandoned))
	assert.False(t, sess.Finished())
}
