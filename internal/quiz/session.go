package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/abhisek/hanzi/internal/catalog"
)

var (
	// ErrAlreadyAnswered is returned when the current question was answered.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
	// ErrNotAnswered is returned by Next before the current question is answered.
	ErrNotAnswered = errors.New("quiz: question not answered")
	// ErrFinished is returned when acting on a finished session.
	ErrFinished = errors.New("quiz: session finished")
	// ErrNotFinished is returned by Report before the last question.
	ErrNotFinished = errors.New("quiz: session not finished")
	// ErrUnknownOption is returned when the answer is not one of the options.
	ErrUnknownOption = errors.New("quiz: not an option")
)

// StatsRecorder receives the outcome of a finished quiz.
type StatsRecorder interface {
	UpdateQuizStats(ctx context.Context, correct, total int, level catalog.HSKLevel) error
}

// Result is the outcome of one question.
type Result struct {
	Answered   bool
	SelectedID int
	Correct    bool
}

// Session walks a learner through a question set. Each question accepts
// exactly one answer.
type Session struct {
	ID    string
	Mode  Mode
	Level catalog.HSKLevel

	questions []Question
	results   []Result
	current   int
	finished  bool
	reported  bool
}

// NewSession starts a session over questions. level is recorded with the
// stats; empty for a mixed-level quiz.
func NewSession(questions []Question, mode Mode, level catalog.HSKLevel) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Level:     level,
		questions: questions,
		results:   make([]Result, len(questions)),
		finished:  len(questions) == 0,
	}
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.current }

// Current returns the question being asked.
func (s *Session) Current() (Question, bool) {
	if s.finished {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Question returns question i, or the zero Question when out of range.
func (s *Session) Question(i int) Question {
	if i < 0 || i >= len(s.questions) {
		return Question{}
	}
	return s.questions[i]
}

// CurrentResult returns the outcome of the current question so far.
func (s *Session) CurrentResult() Result {
	if s.finished {
		return Result{}
	}
	return s.results[s.current]
}

// Answer records optionID for the current question and reports whether it
// was correct. A second answer to the same question is rejected.
func (s *Session) Answer(optionID int) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrFinished
	}
	r := &s.results[s.current]
	if r.Answered {
		return false, ErrAlreadyAnswered
	}
	if !hasOption(q, optionID) {
		return false, fmt.Errorf("%w: %d", ErrUnknownOption, optionID)
	}
	r.Answered = true
	r.SelectedID = optionID
	r.Correct = optionID == q.CorrectAnswerID
	return r.Correct, nil
}

// AnswerIndex answers with the option at position i.
func (s *Session) AnswerIndex(i int) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrFinished
	}
	if i < 0 || i >= len(q.Options) {
		return false, fmt.Errorf("%w: index %d", ErrUnknownOption, i)
	}
	return s.Answer(q.Options[i].ID)
}

// Next advances past an answered question. It returns true when there is
// another question and false once the session is finished.
func (s *Session) Next() (bool, error) {
	if s.finished {
		return false, ErrFinished
	}
	if !s.results[s.current].Answered {
		return false, ErrNotAnswered
	}
	if s.current == len(s.questions)-1 {
		s.finished = true
		return false, nil
	}
	s.current++
	return true, nil
}

// Finished reports whether every question has been answered and advanced past.
func (s *Session) Finished() bool { return s.finished }

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	n := 0
	for _, r := range s.results {
		if r.Correct {
			n++
		}
	}
	return n
}

// Wrong returns the number of incorrect answers so far.
func (s *Session) Wrong() int {
	n := 0
	for _, r := range s.results {
		if r.Answered && !r.Correct {
			n++
		}
	}
	return n
}

// Percent returns the score as a rounded percentage of all questions.
func (s *Session) Percent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.Score()) / float64(len(s.questions)) * 100))
}

// Results returns a copy of the per-question outcomes.
func (s *Session) Results() []Result {
	return append([]Result(nil), s.results...)
}

// Report sends the final score to rec. It reports at most once; later
// calls are no-ops.
func (s *Session) Report(ctx context.Context, rec StatsRecorder) error {
	if !s.finished {
		return ErrNotFinished
	}
	if s.reported || len(s.questions) == 0 {
		return nil
	}
	if err := rec.UpdateQuizStats(ctx, s.Score(), len(s.questions), s.Level); err != nil {
		return fmt.Errorf("record quiz %s: %w", s.ID, err)
	}
	s.reported = true
	return nil
}

func hasOption(q Question, id int) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
