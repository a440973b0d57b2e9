package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/hanzi/internal/catalog"
)

// OptionCount is the number of options per question: the answer plus
// three distractors.
const OptionCount = 4

// DefaultQuestionCount is the length of a quiz when none is configured.
const DefaultQuestionCount = 5

var (
	// ErrInsufficientPool is returned when the pool has fewer than OptionCount words.
	ErrInsufficientPool = errors.New("quiz: need at least 4 words")

	// ErrInvalidCount is returned for a non-positive question count.
	ErrInvalidCount = errors.New("quiz: question count must be positive")
)

// Question is one multiple-choice item. Options holds the answer and
// three distinct distractors from the same pool, in shuffled order.
type Question struct {
	Word            catalog.Word
	Options         []catalog.Word
	CorrectAnswerID int
}

// CorrectIndex returns the position of the answer within Options.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.ID == q.CorrectAnswerID {
			return i
		}
	}
	return -1
}

// Source provides the word pool for a level. An empty level means all words.
type Source interface {
	WordsByLevel(level catalog.HSKLevel) []catalog.Word
}

// Generator builds randomized multiple-choice quizzes from a Source.
type Generator struct {
	src Source

	mu  sync.Mutex
	rng *rand.Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed makes question order and option order reproducible.
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewGenerator creates a Generator over src.
func NewGenerator(src Source, opts ...GeneratorOption) *Generator {
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		src: src,
		rng: rand.New(rand.NewPCG(now, rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanStart reports whether a pool of n words can produce a question.
func CanStart(n int) bool {
	return n >= OptionCount
}

// PoolSize returns the number of words a quiz at level draws from.
func (g *Generator) PoolSize(level catalog.HSKLevel) int {
	return len(g.src.WordsByLevel(level))
}

// Generate returns up to count questions for level. Stems are distinct
// and taken from a uniform shuffle of the pool; count is capped at the
// pool size.
func (g *Generator) Generate(count int, level catalog.HSKLevel) ([]Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	pool := g.src.WordsByLevel(level)
	if !CanStart(len(pool)) {
		return nil, fmt.Errorf("%w: %s has %d", ErrInsufficientPool, level.DisplayName(), len(pool))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := min(count, len(pool))
	stems := g.rng.Perm(len(pool))[:n]

	questions := make([]Question, 0, n)
	for _, si := range stems {
		stem := pool[si]
		opts := make([]catalog.Word, 0, OptionCount)
		opts = append(opts, stem)
		for _, di := range g.rng.Perm(len(pool)) {
			if len(opts) == OptionCount {
				break
			}
			if di == si || pool[di].ID == stem.ID {
				continue
			}
			opts = append(opts, pool[di])
		}
		g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

		questions = append(questions, Question{
			Word:            stem,
			Options:         opts,
			CorrectAnswerID: stem.ID,
		})
	}
	return questions, nil
}
