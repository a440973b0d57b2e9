package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/speech"
)

// errQuizAbandoned is returned when input ends before the last answer.
var errQuizAbandoned = errors.New("quiz abandoned; nothing recorded")

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a multiple-choice quiz in the terminal",
	Long: `Take a quiz without the full-screen app. Answer each question with
1-4 or a-d. Results are added to your quiz statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		levelFlag, _ := cmd.Flags().GetString("level")
		modeFlag, _ := cmd.Flags().GetString("mode")
		count, _ := cmd.Flags().GetInt("count")

		if !cmd.Flags().Changed("level") {
			levelFlag = e.cfg.Quiz.Level
		}
		if !cmd.Flags().Changed("mode") {
			modeFlag = e.cfg.Quiz.Mode
		}
		if !cmd.Flags().Changed("count") {
			count = e.cfg.Quiz.Questions
		}

		level, err := catalog.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		mode, err := quiz.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		speaker := speech.New(e.cfg.Speech.Command, e.cfg.Speech.Locale)
		if mode == quiz.ModeListening && !speaker.Enabled() {
			return fmt.Errorf("listening mode needs a speech command (set speech.command or HANZI_SPEECH_COMMAND)")
		}

		qs, err := quiz.NewGenerator(e.catalog).Generate(count, level)
		if err != nil {
			return err
		}
		sess := quiz.NewSession(qs, mode, level)
		e.log.Info("cli quiz started", zap.String("session_id", sess.ID), zap.Int("questions", sess.Len()))

		if err := runQuiz(cmdContext(cmd), cmd.InOrStdin(), cmd.OutOrStdout(), sess, speaker); err != nil {
			return err
		}
		if err := sess.Report(cmdContext(cmd), e.progress); err != nil {
			return err
		}
		st := e.progress.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Overall accuracy: %d%% over %d quizzes\n",
			st.QuizStats.Accuracy, st.QuizStats.TotalQuizzes)
		return nil
	},
}

func init() {
	quizCmd.Flags().String("level", "", "HSK level (HSK1-HSK5); empty uses every level")
	quizCmd.Flags().Int("count", quiz.DefaultQuestionCount, "Number of questions")
	quizCmd.Flags().String("mode", string(quiz.ModeMeaning), "Quiz mode: meaning or listening")
}

// runQuiz asks every question in sess, reading one answer per line. It
// returns errQuizAbandoned if input ends early.
func runQuiz(ctx context.Context, in io.Reader, out io.Writer, sess *quiz.Session, sp speech.Speaker) error {
	sc := bufio.NewScanner(in)
	for {
		q, ok := sess.Current()
		if !ok {
			break
		}
		fmt.Fprintf(out, "\nQuestion %d/%d  %s\n", sess.Index()+1, sess.Len(), sess.Mode.Prompt(q.Word))
		if sess.Mode == quiz.ModeListening {
			if err := sp.Speak(ctx, q.Word.Chinese); err != nil {
				fmt.Fprintf(out, "  (could not play audio: %v)\n", err)
			}
		}
		labels := sess.Mode.Labels(q)
		for i, l := range labels {
			fmt.Fprintf(out, "  %d) %s\n", i+1, l)
		}

		idx, err := readChoice(sc, out, len(labels))
		if err != nil {
			return err
		}
		correct, err := sess.AnswerIndex(idx)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "  ✓ Correct")
		} else {
			fmt.Fprintf(out, "  ✗ It was %s (%s) · %s\n", q.Word.Chinese, q.Word.Pinyin, q.Word.Meaning())
		}
		if _, err := sess.Next(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)  Wrong: %d\n", sess.Score(), sess.Len(), sess.Percent(), sess.Wrong())
	return nil
}

// readChoice reads lines until one names an option in [0, n).
func readChoice(sc *bufio.Scanner, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, errQuizAbandoned
		}
		if i, ok := parseChoice(sc.Text(), n); ok {
			return i, nil
		}
		fmt.Fprintf(out, "  Answer with 1-%d or a-%c\n", n, 'a'+rune(n-1))
	}
}

// parseChoice accepts "1".."n" or "a".. case-insensitively.
func parseChoice(s string, n int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, false
	}
	var i int
	switch c := s[0]; {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	default:
		return 0, false
	}
	return i, i < n
}
