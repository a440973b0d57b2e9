package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Search and list vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		levelFlag, _ := cmd.Flags().GetString("level")
		level, err := catalog.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		f := catalog.Filter{Level: level}
		f.Topic, _ = cmd.Flags().GetString("topic")
		f.Query, _ = cmd.Flags().GetString("search")
		if f.Topic != "" {
			if _, ok := e.catalog.Topic(f.Topic); !ok {
				return fmt.Errorf("unknown topic %q (see hanzi vocab topics)", f.Topic)
			}
		}
		page, _ := cmd.Flags().GetInt("page")

		p := catalog.Paginate(f.Apply(e.catalog.AllWords()), page, catalog.DefaultPageSize)
		printWords(cmd.OutOrStdout(), p.Items, e.progress.Snapshot())
		if p.Total == 0 {
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d · %d words\n", p.Number, p.TotalPages, p.Total)
		return nil
	},
}

var vocabTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics and the levels they cover",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s  %-20s  %5s  %s\n", "ID", "Name", "Words", "Levels")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, t := range e.catalog.Topics() {
			levels := make([]string, len(t.Levels))
			for i, l := range t.Levels {
				levels[i] = string(l)
			}
			fmt.Fprintf(out, "%-14s  %-20s  %5d  %s\n",
				t.ID, t.Name, len(e.catalog.WordsByTopic(t.ID)), strings.Join(levels, ", "))
		}
		return nil
	},
}

func init() {
	vocabCmd.Flags().String("level", "", "Filter by HSK level (HSK1-HSK5)")
	vocabCmd.Flags().String("topic", "", "Filter by topic id")
	vocabCmd.Flags().String("search", "", "Match hanzi, pinyin or Vietnamese")
	vocabCmd.Flags().Int("page", 1, "Page number")

	vocabCmd.AddCommand(vocabTopicsCmd)
}

// printWords writes a word table with learned and favorite marks.
func printWords(out io.Writer, words []catalog.Word, st progress.State) {
	if len(words) == 0 {
		fmt.Fprintln(out, "No words found")
		return
	}
	fmt.Fprintf(out, "%4s  %-2s  %-8s  %-16s  %-5s  %s\n", "ID", "", "Hanzi", "Pinyin", "Level", "Meaning")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, w := range words {
		marks := ""
		if st.IsLearned(w.ID) {
			marks += "✓"
		}
		if st.IsFavorite(w.ID) {
			marks += "♥"
		}
		fmt.Fprintf(out, "%4d  %-2s  %-8s  %-16s  %-5s  %s\n",
			w.ID, marks, w.Chinese, w.Pinyin, w.HSKLevel, w.Meaning())
	}
}
