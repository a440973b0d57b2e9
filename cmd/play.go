package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/app"
	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/speech"
	"github.com/abhisek/hanzi/internal/studytimer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the flashcard and quiz app",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-welcome")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")
}

// runApp opens storage, builds the screen dependencies and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	e, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	mode, _ := quiz.ParseMode(e.cfg.Quiz.Mode)
	level, _ := catalog.ParseLevel(e.cfg.Quiz.Level)
	deps := screen.Deps{
		Progress:      e.progress,
		Catalog:       e.catalog,
		Generator:     quiz.NewGenerator(e.catalog),
		Speaker:       speech.New(e.cfg.Speech.Command, e.cfg.Speech.Locale),
		Log:           e.log.Named("tui"),
		QuizQuestions: e.cfg.Quiz.Questions,
		QuizMode:      mode,
		QuizLevel:     level,
	}

	return app.Run(cmdContext(cmd), app.Options{
		Deps:        deps,
		Timer:       studytimer.New(e.progress, e.cfg.Study.TickMinutes, e.log.Named("studytimer")),
		SkipWelcome: skipWelcome,
	})
}
