package screen

import (
	"go.uber.org/zap"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/progress"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/speech"
)

// Deps are the services every screen may use. Progress and Catalog are
// required; the rest fall back to no-ops.
type Deps struct {
	Progress  *progress.Store
	Catalog   *catalog.Catalog
	Generator *quiz.Generator
	Speaker   speech.Speaker
	Log       *zap.Logger

	QuizQuestions int
	QuizMode      quiz.Mode
	QuizLevel     catalog.HSKLevel
}

// WithDefaults fills optional fields.
func (d Deps) WithDefaults() Deps {
	if d.Generator == nil && d.Catalog != nil {
		d.Generator = quiz.NewGenerator(d.Catalog)
	}
	if d.Speaker == nil {
		d.Speaker = speech.Nop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.QuizQuestions <= 0 {
		d.QuizQuestions = quiz.DefaultQuestionCount
	}
	if d.QuizMode == "" {
		d.QuizMode = quiz.ModeMeaning
	}
	return d
}
