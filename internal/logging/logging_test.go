package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesFileAndConsole(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "hanzi.log")
	var console bytes.Buffer

	logger, closeFn, err := New(Options{Level: "info", File: file, Console: &console})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("quiz finished", zap.Int("correct", 3))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"quiz finished"`) || !strings.Contains(string(raw), `"correct":3`) {
		t.Errorf("file log = %s", raw)
	}
	if strings.Contains(string(raw), "hidden") {
		t.Error("debug entry written at info level")
	}
	if !strings.Contains(console.String(), "quiz finished") {
		t.Errorf("console log = %q", console.String())
	}
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	logger, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
