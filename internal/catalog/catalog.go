package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownWord is returned when a word id is not in the catalog.
var ErrUnknownWord = errors.New("unknown word")

// Catalog is the read-only vocabulary provider. All slices it returns are
// copies; callers may reorder them freely.
type Catalog struct {
	words   []Word
	byID    map[int]int
	byLevel map[HSKLevel][]Word
	topics  []Topic
	levels  []LevelInfo
}

// New builds a Catalog from a document. Word ids must be unique.
func New(doc Document) (*Catalog, error) {
	c := &Catalog{
		words:   make([]Word, 0, len(doc.Words)),
		byID:    make(map[int]int, len(doc.Words)),
		byLevel: make(map[HSKLevel][]Word),
		topics:  slices.Clone(doc.Topics),
		levels:  defaultLevelInfo(doc.Levels),
	}

	for _, w := range doc.Words {
		if _, dup := c.byID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate word id %d", w.ID)
		}
		if !w.HSKLevel.Valid() {
			return nil, fmt.Errorf("word %d: unknown HSK level %q", w.ID, w.HSKLevel)
		}
		c.byID[w.ID] = len(c.words)
		c.words = append(c.words, w)
		c.byLevel[w.HSKLevel] = append(c.byLevel[w.HSKLevel], w)
	}

	return c, nil
}

// Len returns the number of words.
func (c *Catalog) Len() int {
	return len(c.words)
}

// AllWords returns every word in catalog order.
func (c *Catalog) AllWords() []Word {
	return slices.Clone(c.words)
}

// WordsByLevel returns the words of one level. An empty level returns all words.
func (c *Catalog) WordsByLevel(level HSKLevel) []Word {
	if level == "" {
		return c.AllWords()
	}
	return slices.Clone(c.byLevel[level])
}

// WordsByTopic returns the words tagged with topicID across all levels.
func (c *Catalog) WordsByTopic(topicID string) []Word {
	return c.WordsByTopicAndLevel(topicID, "")
}

// WordsByTopicAndLevel narrows WordsByTopic to one level when level is set.
func (c *Catalog) WordsByTopicAndLevel(topicID string, level HSKLevel) []Word {
	var out []Word
	for _, w := range c.words {
		if w.Topic != topicID {
			continue
		}
		if level != "" && w.HSKLevel != level {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Word looks up a word by id.
func (c *Catalog) Word(id int) (Word, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}

// Lookup is Word with an error for unknown ids.
func (c *Catalog) Lookup(id int) (Word, error) {
	w, ok := c.Word(id)
	if !ok {
		return Word{}, fmt.Errorf("%w: %d", ErrUnknownWord, id)
	}
	return w, nil
}

// WordsByIDs resolves ids in order, skipping unknown ones.
func (c *Catalog) WordsByIDs(ids []int) []Word {
	out := make([]Word, 0, len(ids))
	for _, id := range ids {
		if w, ok := c.Word(id); ok {
			out = append(out, w)
		}
	}
	return out
}

// Topics returns all topics.
func (c *Catalog) Topics() []Topic {
	return slices.Clone(c.topics)
}

// Topic looks up a topic by id.
func (c *Catalog) Topic(id string) (Topic, bool) {
	for _, t := range c.topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// TopicsByLevel returns the topics that include the given level.
func (c *Catalog) TopicsByLevel(level HSKLevel) []Topic {
	var out []Topic
	for _, t := range c.topics {
		if slices.Contains(t.Levels, level) {
			out = append(out, t)
		}
	}
	return out
}

// LevelInfo returns display metadata for every level, in order.
func (c *Catalog) LevelInfo() []LevelInfo {
	return slices.Clone(c.levels)
}

// defaultLevelInfo fills in any level the document does not describe.
func defaultLevelInfo(given []LevelInfo) []LevelInfo {
	known := make(map[HSKLevel]LevelInfo, len(given))
	for _, li := range given {
		known[li.ID] = li
	}
	out := make([]LevelInfo, 0, len(Levels))
	for _, l := range Levels {
		li, ok := known[l]
		if !ok {
			li = LevelInfo{ID: l, Name: l.DisplayName()}
		}
		out = append(out, li)
	}
	return out
}
