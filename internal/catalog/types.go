package catalog

import (
	"fmt"
	"strings"
)

// HSKLevel is one of the five HSK proficiency tiers.
type HSKLevel string

const (
	HSK1 HSKLevel = "HSK1"
	HSK2 HSKLevel = "HSK2"
	HSK3 HSKLevel = "HSK3"
	HSK4 HSKLevel = "HSK4"
	HSK5 HSKLevel = "HSK5"
)

// Levels lists all HSK levels from easiest to hardest.
var Levels = []HSKLevel{HSK1, HSK2, HSK3, HSK4, HSK5}

// Valid reports whether l is one of the known levels.
func (l HSKLevel) Valid() bool {
	switch l {
	case HSK1, HSK2, HSK3, HSK4, HSK5:
		return true
	}
	return false
}

// DisplayName returns the spaced form shown to learners ("HSK 1").
func (l HSKLevel) DisplayName() string {
	if !l.Valid() {
		return "All levels"
	}
	return "HSK " + string(l[3:])
}

// ParseLevel accepts "HSK1", "hsk1" or "1". An empty string yields the
// empty level, meaning "no filter".
func ParseLevel(s string) (HSKLevel, error) {
	switch len(s) {
	case 0:
		return "", nil
	case 1:
		s = "HSK" + s
	}
	l := HSKLevel(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("unknown HSK level %q", s)
	}
	return l, nil
}

// Word is a single vocabulary entry. Words are immutable once loaded.
type Word struct {
	ID                 int      `json:"id"`
	Chinese            string   `json:"chinese"`
	Pinyin             string   `json:"pinyin"`
	Vietnamese         string   `json:"vietnamese"`
	English            string   `json:"english"`
	Example            string   `json:"example,omitempty"`
	ExampleTranslation string   `json:"exampleTranslation,omitempty"`
	HSKLevel           HSKLevel `json:"hskLevel"`
	Topic              string   `json:"topic"`
}

// Meaning returns the Vietnamese gloss followed by the English one.
func (w Word) Meaning() string {
	switch {
	case w.Vietnamese == "":
		return w.English
	case w.English == "":
		return w.Vietnamese
	}
	return w.Vietnamese + " (" + w.English + ")"
}

// Topic groups words by theme. A topic may span several levels.
type Topic struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Levels      []HSKLevel `json:"hskLevels"`
}

// LevelInfo describes a level for selectors and summaries.
type LevelInfo struct {
	ID          HSKLevel `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
}

// Document is the on-disk catalog format.
type Document struct {
	Levels []LevelInfo `json:"levels,omitempty"`
	Topics []Topic     `json:"topics,omitempty"`
	Words  []Word      `json:"words"`
}
