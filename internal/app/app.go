package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/screens/home"
	"github.com/abhisek/hanzi/internal/screens/welcome"
	"github.com/abhisek/hanzi/internal/ui/layout"
)

// ErrNoProgressStore is returned when the TUI is started without storage.
var ErrNoProgressStore = errors.New("app: progress store is required")

// StudyTimer credits study time while the program runs.
type StudyTimer interface {
	Start(ctx context.Context) error
	Stop()
}

// Options configures the TUI.
type Options struct {
	Deps screen.Deps
	// Timer is optional.
	Timer StudyTimer
	// SkipWelcome opens the home screen directly.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	width  int
	height int
}

// newAppModel creates the root model, starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	homeFactory := func() screen.Screen { return home.New(deps) }

	var first screen.Screen = welcome.New(homeFactory)
	if opts.SkipWelcome {
		first = homeFactory()
	}
	return AppModel{
		router: router.New(first),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen is editing text.
func (m AppModel) capturing() bool {
	ic, ok := m.router.Active().(screen.InputCapturer)
	return ok && ic.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.deps.Progress.Snapshot()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Streak:    st.StudyStreak,
		Learned:   len(st.LearnedWords),
		Total:     m.deps.Catalog.Len(),
		Favorites: len(st.Favorites),
		Target:    st.UserProfile.TargetLevel,
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Deps.Progress == nil {
		return ErrNoProgressStore
	}
	if opts.Deps.Catalog == nil {
		return errors.New("app: catalog is required")
	}
	opts.Deps = opts.Deps.WithDefaults()
	log := opts.Deps.Log

	if opts.Timer != nil {
		if err := opts.Timer.Start(ctx); err != nil {
			log.Warn("study timer disabled", zap.Error(err))
		} else {
			defer opts.Timer.Stop()
		}
	}

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("tui exited", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("tui exited")
	return nil
}
