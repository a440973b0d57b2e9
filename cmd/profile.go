package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `Without flags, prints the profile. With --name, --target or
--daily-goal, updates only the given fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		var patch progress.ProfilePatch
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
		}
		if cmd.Flags().Changed("target") {
			s, _ := cmd.Flags().GetString("target")
			level, err := catalog.ParseLevel(s)
			if err != nil {
				return err
			}
			patch.TargetLevel = &level
		}
		if cmd.Flags().Changed("daily-goal") {
			goal, _ := cmd.Flags().GetInt("daily-goal")
			patch.DailyGoal = &goal
		}

		if !patch.Empty() {
			if err := e.progress.UpdateUserProfile(cmdContext(cmd), patch); err != nil {
				return err
			}
		}

		p := e.progress.Snapshot().UserProfile
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:        %s\n", p.Name)
		fmt.Fprintf(out, "Target:      %s\n", p.TargetLevel)
		fmt.Fprintf(out, "Daily goal:  %d words\n", p.DailyGoal)
		fmt.Fprintf(out, "Study time:  %d min\n", p.TotalStudyTime)
		return nil
	},
}

func init() {
	profileCmd.Flags().String("name", "", "Display name")
	profileCmd.Flags().String("target", "", "Target HSK level (HSK1-HSK5)")
	profileCmd.Flags().Int("daily-goal", 0, "Words per day")
}
