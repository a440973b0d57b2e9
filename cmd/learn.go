package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/catalog"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Record words as learned or mastered",
}

var learnMarkCmd = &cobra.Command{
	Use:   "mark <word-id>...",
	Short: "Mark words as learned (counts toward today's streak)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		words, err := lookupWords(e.catalog, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range words {
			if e.progress.MarkAsLearned(cmdContext(cmd), w.ID, w.HSKLevel) {
				fmt.Fprintf(out, "✓ %s (%s) learned\n", w.Chinese, w.Pinyin)
			} else {
				fmt.Fprintf(out, "  %s (%s) was already learned\n", w.Chinese, w.Pinyin)
			}
		}
		fmt.Fprintf(out, "Streak: %d\n", e.progress.Snapshot().StudyStreak)
		return nil
	},
}

var learnMasterCmd = &cobra.Command{
	Use:   "master <word-id>...",
	Short: "Mark words as mastered at their HSK level",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		words, err := lookupWords(e.catalog, args)
		if err != nil {
			return err
		}
		for _, w := range words {
			e.progress.MarkAsMastered(cmdContext(cmd), w.ID, w.HSKLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "★ %s (%s) mastered at %s\n", w.Chinese, w.Pinyin, w.HSKLevel)
		}
		return nil
	},
}

func init() {
	learnCmd.AddCommand(learnMarkCmd)
	learnCmd.AddCommand(learnMasterCmd)
}

// lookupWords resolves every argument before anything is changed.
func lookupWords(cat *catalog.Catalog, args []string) ([]catalog.Word, error) {
	out := make([]catalog.Word, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("word id %q is not a number", a)
		}
		w, err := cat.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
