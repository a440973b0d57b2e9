package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <word-id>",
	Short: "Toggle a word in your favorites",
	Args:  cobra.ExactArgs(1),
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
		w := words[0]
		if e.progress.ToggleFavorite(cmdContext(cmd), w.ID) {
			fmt.Fprintf(cmd.OutOrStdout(), "♥ Added %s (%s) to favorites\n", w.Chinese, w.Pinyin)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s) from favorites\n", w.Chinese, w.Pinyin)
		}
		return nil
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite words in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.progress.Snapshot()
		printWords(cmd.OutOrStdout(), e.catalog.WordsByIDs(st.Favorites), st)
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(favoriteListCmd)
}
