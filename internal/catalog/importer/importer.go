package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/hanzi/internal/catalog"
)

// Config describes where words live in the source sheet. Columns are
// spreadsheet letters and apply to CSV files too.
type Config struct {
	Path     string
	Sheet    string // xlsx only
	StartRow int    // 1-based; rows above are headers
	FirstID  int    // id given to the first imported word

	ChineseColumn     string
	PinyinColumn      string
	VietnameseColumn  string
	EnglishColumn     string
	LevelColumn       string
	TopicColumn       string
	ExampleColumn     string
	TranslationColumn string
}

// DefaultConfig returns the column layout written by the export template:
// hanzi, pinyin, Vietnamese, English, level, topic, example, translation.
func DefaultConfig() Config {
	return Config{
		Sheet:             "Sheet1",
		StartRow:          2,
		FirstID:           1,
		ChineseColumn:     "A",
		PinyinColumn:      "B",
		VietnameseColumn:  "C",
		EnglishColumn:     "D",
		LevelColumn:       "E",
		TopicColumn:       "F",
		ExampleColumn:     "G",
		TranslationColumn: "H",
	}
}

// Result summarizes an import. Rows listed in Errors were skipped.
type Result struct {
	Processed int
	Imported  int
	Errors    []string
	Document  catalog.Document
}

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("importer: unsupported file format")

// Import reads cfg.Path into a catalog document.
func Import(cfg Config) (*Result, error) {
	cols, err := cfg.columns()
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(cfg.Path, cfg.Sheet)
	case ".csv":
		rows, err = readCSV(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.Path)
	}
	if err != nil {
		return nil, err
	}
	return build(rows, cfg, cols), nil
}

// WriteFile encodes doc as a catalog file after validating it.
func WriteFile(path string, doc catalog.Document) error {
	raw, err := catalog.Encode(doc)
	if err != nil {
		return err
	}
	if _, err := catalog.Parse(raw); err != nil {
		return fmt.Errorf("imported catalog is invalid: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

type columns struct {
	chinese, pinyin, vietnamese, english, level, topic, example, translation int
}

func (c Config) columns() (columns, error) {
	idx := func(letter string) (int, error) {
		if letter == "" {
			return -1, nil
		}
		n, err := excelize.ColumnNameToNumber(letter)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", letter, err)
		}
		return n - 1, nil
	}

	var out columns
	var err error
	for _, f := range []struct {
		letter string
		dst    *int
	}{
		{c.ChineseColumn, &out.chinese},
		{c.PinyinColumn, &out.pinyin},
		{c.VietnameseColumn, &out.vietnamese},
		{c.EnglishColumn, &out.english},
		{c.LevelColumn, &out.level},
		{c.TopicColumn, &out.topic},
		{c.ExampleColumn, &out.example},
		{c.TranslationColumn, &out.translation},
	} {
		if *f.dst, err = idx(f.letter); err != nil {
			return columns{}, err
		}
	}
	if out.chinese < 0 || out.level < 0 {
		return columns{}, fmt.Errorf("chinese and level columns are required")
	}
	return out, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func build(rows [][]string, cfg Config, cols columns) *Result {
	res := &Result{}
	nextID := max(cfg.FirstID, 1)
	topics := map[string]*catalog.Topic{}
	var topicOrder []string

	for i, row := range rows {
		line := i + 1
		if line < cfg.StartRow || blank(row) {
			continue
		}
		res.Processed++

		w := catalog.Word{
			Chinese:            cell(row, cols.chinese),
			Pinyin:             cell(row, cols.pinyin),
			Vietnamese:         cell(row, cols.vietnamese),
			English:            cell(row, cols.english),
			Topic:              slug(cell(row, cols.topic)),
			Example:            cell(row, cols.example),
			ExampleTranslation: cell(row, cols.translation),
		}
		if w.Chinese == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: missing chinese", line))
			continue
		}
		if w.Vietnamese == "" && w.English == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: missing meaning", line))
			continue
		}
		level, err := catalog.ParseLevel(cell(row, cols.level))
		if err != nil || level == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: invalid level %q", line, cell(row, cols.level)))
			continue
		}
		w.HSKLevel = level
		w.ID = nextID
		nextID++

		if w.Topic != "" {
			t, ok := topics[w.Topic]
			if !ok {
				t = &catalog.Topic{ID: w.Topic, Name: cell(row, cols.topic)}
				topics[w.Topic] = t
				topicOrder = append(topicOrder, w.Topic)
			}
			if !slices.Contains(t.Levels, level) {
				t.Levels = append(t.Levels, level)
			}
		}

		res.Document.Words = append(res.Document.Words, w)
		res.Imported++
	}

	for _, id := range topicOrder {
		t := topics[id]
		slices.Sort(t.Levels)
		res.Document.Topics = append(res.Document.Topics, *t)
	}
	return res
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}
