package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrDisabled is returned by Nop when pronunciation is not configured.
var ErrDisabled = errors.New("speech: no speech command configured")

// DefaultTimeout bounds a single utterance.
const DefaultTimeout = 10 * time.Second

// Speaker pronounces text.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Enabled() bool
}

// Nop is the Speaker used when no command is configured.
type Nop struct{}

func (Nop) Speak(context.Context, string) error { return ErrDisabled }
func (Nop) Enabled() bool                       { return false }

// Command pronounces text by running an external text-to-speech program
// such as espeak-ng or say. The placeholders {text} and {locale} are
// substituted in the arguments; without {text} the text is appended.
type Command struct {
	name    string
	args    []string
	locale  string
	timeout time.Duration
}

// New returns a Command speaker for cmdline, or Nop when cmdline is blank.
func New(cmdline, locale string) Speaker {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return Nop{}
	}
	return &Command{
		name:    fields[0],
		args:    fields[1:],
		locale:  locale,
		timeout: DefaultTimeout,
	}
}

func (c *Command) Enabled() bool { return true }

// Args returns the argument list used to pronounce text.
func (c *Command) Args(text string) []string {
	out := make([]string, 0, len(c.args)+1)
	hasText := false
	for _, a := range c.args {
		if strings.Contains(a, "{text}") {
			hasText = true
		}
		a = strings.ReplaceAll(a, "{text}", text)
		a = strings.ReplaceAll(a, "{locale}", c.locale)
		out = append(out, a)
	}
	if !hasText {
		out = append(out, text)
	}
	return out
}

func (c *Command) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.name, c.Args(text)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("speak with %s: %w: %s", c.name, err, msg)
		}
		return fmt.Errorf("speak with %s: %w", c.name, err)
	}
	return nil
}
