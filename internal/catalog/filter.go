package catalog

import "strings"

// DefaultPageSize is the number of words shown per vocabulary page.
const DefaultPageSize = 12

// Filter selects words for the vocabulary browser. Zero-value fields match
// everything.
type Filter struct {
	Query string
	Topic string
	Level HSKLevel
}

// Match reports whether w passes every set criterion. The query matches
// hanzi, Vietnamese and pinyin case-insensitively.
func (f Filter) Match(w Word) bool {
	if f.Level != "" && w.HSKLevel != f.Level {
		return false
	}
	if f.Topic != "" && w.Topic != f.Topic {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Chinese), q) ||
		strings.Contains(strings.ToLower(w.Vietnamese), q) ||
		strings.Contains(strings.ToLower(w.Pinyin), q)
}

// Apply returns the words matching f, preserving order.
func (f Filter) Apply(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if f.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// Page is one page of a word list.
type Page struct {
	Items      []Word
	Number     int // 1-based, clamped to [1, TotalPages]
	TotalPages int // 0 when there are no items
	Total      int
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// Paginate slices words into pages of size perPage and returns page number
// (1-based). Out-of-range page numbers are clamped.
func Paginate(words []Word, number, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	total := len(words)
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		return Page{Number: 1}
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	start := (number - 1) * perPage
	end := min(start+perPage, total)
	return Page{
		Items:      words[start:end],
		Number:     number,
		TotalPages: pages,
		Total:      total,
	}
}
