package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// ProfileScreen shows learning statistics and edits the learner profile.
type ProfileScreen struct {
	deps       screen.Deps
	name       components.TextInput
	confirming bool
	status     string
}

var (
	_ screen.Screen          = (*ProfileScreen)(nil)
	_ screen.KeyHintProvider = (*ProfileScreen)(nil)
	_ screen.InputCapturer   = (*ProfileScreen)(nil)
)

// New creates a ProfileScreen.
func New(deps screen.Deps) *ProfileScreen {
	return &ProfileScreen{
		deps: deps,
		name: components.NewTextInput("Name", "your name", 32),
	}
}

func (s *ProfileScreen) Init() tea.Cmd { return nil }

func (s *ProfileScreen) Title() string { return "Profile" }

func (s *ProfileScreen) CapturingInput() bool { return s.name.Focused() || s.confirming }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.name.Focused():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "y", Description: "Erase everything"},
			{Key: "any", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "n", Description: "Name"},
		{Key: "t", Description: "Target"},
		{Key: "+/-", Description: "Daily goal"},
		{Key: "c", Description: "Clear data"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()
	ctx := context.Background()

	if s.name.Focused() {
		switch key {
		case "enter":
			name := strings.TrimSpace(s.name.Value())
			s.apply(ctx, progress.ProfilePatch{Name: &name}, "Name saved")
			s.name.Blur()
			return s, nil
		case "esc":
			s.name.Blur()
			s.status = ""
			return s, nil
		}
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}

	if s.confirming {
		s.confirming = false
		if key != "y" {
			s.status = "Nothing was erased"
			return s, nil
		}
		if err := s.deps.Progress.ClearAllData(ctx); err != nil {
			s.status = "Could not clear data: " + err.Error()
			return s, nil
		}
		s.deps.Log.Info("progress cleared from profile screen")
		s.status = "All progress erased"
		return s, nil
	}

	prof := s.deps.Progress.Snapshot().UserProfile
	switch key {
	case "n":
		s.name.SetValue(prof.Name)
		s.status = ""
		return s, s.name.Focus()
	case "t":
		next := nextLevel(prof.TargetLevel)
		s.apply(ctx, progress.ProfilePatch{TargetLevel: &next}, "Target set to "+next.DisplayName())
	case "+", "=":
		goal := prof.DailyGoal + 5
		s.apply(ctx, progress.ProfilePatch{DailyGoal: &goal}, fmt.Sprintf("Daily goal: %d words", goal))
	case "-":
		goal := max(prof.DailyGoal-5, 1)
		s.apply(ctx, progress.ProfilePatch{DailyGoal: &goal}, fmt.Sprintf("Daily goal: %d words", goal))
	case "c":
		s.confirming = true
		s.status = ""
	}
	return s, nil
}

func (s *ProfileScreen) apply(ctx context.Context, patch progress.ProfilePatch, ok string) {
	if err := s.deps.Progress.UpdateUserProfile(ctx, patch); err != nil {
		s.deps.Log.Warn("update profile", zap.Error(err))
		s.status = err.Error()
		return
	}
	s.status = ok
}

func nextLevel(l catalog.HSKLevel) catalog.HSKLevel {
	for i, x := range catalog.Levels {
		if x == l {
			return catalog.Levels[(i+1)%len(catalog.Levels)]
		}
	}
	return catalog.Levels[0]
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.deps.Progress.Snapshot()

	sections := []string{
		s.viewOverview(st),
		"",
		heading("Levels"),
	}
	for _, ls := range progress.LevelSummaries(st, s.deps.Catalog) {
		bar := components.NewCountBar(lipgloss.NewStyle().Foreground(theme.LevelColor(ls.Level)).Render(string(ls.Level))+" ", ls.Learned, ls.Total, cw)
		line := bar.View()
		if ls.Mastered > 0 {
			line += lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("  ★%d", ls.Mastered))
		}
		sections = append(sections, line)
	}

	as := progress.Achievements(st)
	sections = append(sections, "", heading(fmt.Sprintf("Achievements %d/%d", progress.UnlockedCount(as), len(as))))
	for _, a := range as {
		if a.Unlocked {
			sections = append(sections, theme.Body.Render(a.Icon+" "+a.Title)+"  "+theme.Hint.Render(a.Description))
		} else {
			sections = append(sections, theme.Disabled.Render("·  "+a.Title+"  "+a.Description))
		}
	}

	switch {
	case s.name.Focused():
		sections = append(sections, "", s.name.View())
	case s.confirming:
		sections = append(sections, "", theme.Incorrect.Render("Erase all progress? Press y to confirm."))
	}
	if s.status != "" {
		sections = append(sections, "", theme.Hint.Render(s.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (s *ProfileScreen) viewOverview(st progress.State) string {
	name := st.UserProfile.Name
	if name == "" {
		name = "Learner"
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	field := func(label, value string) string {
		return dim.Width(14).Render(label) + val.Render(value)
	}

	streak := layout.StreakLabel(st.StudyStreak)
	if next := progress.NextStreakMilestone(st.StudyStreak); next > 0 {
		streak += dim.Render(fmt.Sprintf("  (next milestone %d)", next))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Hanzi.Render(name),
		"",
		field("Target", st.UserProfile.TargetLevel.DisplayName()),
		field("Daily goal", fmt.Sprintf("%d words", st.UserProfile.DailyGoal)),
		field("Study time", studyTime(st.UserProfile.TotalStudyTime)),
		field("Streak", streak),
		field("Learned", fmt.Sprintf("%d words · %d%% of catalog", len(st.LearnedWords), progress.OverallProgress(st, s.deps.Catalog))),
		field("Favorites", fmt.Sprint(len(st.Favorites))),
		field("Quizzes", fmt.Sprintf("%d · %d%% accuracy", st.QuizStats.TotalQuizzes, st.QuizStats.Accuracy)),
	)
}

func heading(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s)
}

// studyTime formats minutes as "45m" or "2h 05m".
func studyTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
