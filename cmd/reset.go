package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprint(out, "This erases favorites, learned words, quiz stats, streak and profile.\nType yes to continue: ")
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() || strings.TrimSpace(strings.ToLower(sc.Text())) != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := e.progress.ClearAllData(cmdContext(cmd)); err != nil {
			return err
		}
		e.log.Info("progress reset from cli", zap.String("driver", e.cfg.Storage.Driver))
		fmt.Fprintln(out, "All progress erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
