package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		printStats(cmd.OutOrStdout(), e.progress.Snapshot(), e.catalog)
		return nil
	},
}

func printStats(out io.Writer, st progress.State, cat *catalog.Catalog) {
	name := st.UserProfile.Name
	if name == "" {
		name = "Learner"
	}
	last := st.LastStudyDate
	if last == "" {
		last = "never"
	}

	fmt.Fprintf(out, "%s · target %s · daily goal %d words\n\n",
		name, st.UserProfile.TargetLevel, st.UserProfile.DailyGoal)
	fmt.Fprintf(out, "Learned:     %d words (%d%% of %d)\n", len(st.LearnedWords), progress.OverallProgress(st, cat), cat.Len())
	fmt.Fprintf(out, "Favorites:   %d\n", len(st.Favorites))
	fmt.Fprintf(out, "Streak:      %d days (last studied %s, next milestone %d)\n",
		st.StudyStreak, last, progress.NextStreakMilestone(st.StudyStreak))
	fmt.Fprintf(out, "Study time:  %d min\n", st.UserProfile.TotalStudyTime)
	fmt.Fprintf(out, "Quizzes:     %d, %d/%d correct answers, %d%% accuracy\n\n",
		st.QuizStats.TotalQuizzes, st.QuizStats.CorrectAnswers, quizTotal(st), st.QuizStats.Accuracy)

	fmt.Fprintf(out, "%-6s  %7s  %8s  %5s  %s\n", "Level", "Learned", "Mastered", "Words", "Quiz")
	fmt.Fprintln(out, strings.Repeat("─", 48))
	for _, ls := range progress.LevelSummaries(st, cat) {
		qs := st.QuizStats.HSKStats[ls.Level]
		quiz := "-"
		if qs != nil && qs.Total > 0 {
			quiz = fmt.Sprintf("%d/%d", qs.Correct, qs.Total)
		}
		fmt.Fprintf(out, "%-6s  %7d  %8d  %5d  %s\n", ls.Level, ls.Learned, ls.Mastered, ls.Total, quiz)
	}

	as := progress.Achievements(st)
	fmt.Fprintf(out, "\nAchievements %d/%d\n", progress.UnlockedCount(as), len(as))
	for _, a := range as {
		mark := "  "
		if a.Unlocked {
			mark = a.Icon
		}
		fmt.Fprintf(out, "%s %-18s %s\n", mark, a.Title, a.Description)
	}
}

// quizTotal sums answered questions across levels.
func quizTotal(st progress.State) int {
	n := 0
	for _, qs := range st.QuizStats.HSKStats {
		if qs != nil {
			n += qs.Total
		}
	}
	return n
}
