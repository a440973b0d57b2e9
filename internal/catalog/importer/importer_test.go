package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/hanzi/internal/catalog"
)

var sampleRows = [][]any{
	{"Chinese", "Pinyin", "Vietnamese", "English", "Level", "Topic", "Example", "Translation"},
	{"你好", "nǐ hǎo", "xin chào", "hello", "HSK1", "Greetings", "你好，老师！", "Chào thầy!"},
	{"谢谢", "xièxie", "cảm ơn", "thanks", "1", "Greetings"},
	{"", "", "", "", "", ""},
	{"", "shū", "sách", "book", "HSK1", "Objects"},
	{"书", "shū", "", "", "HSK1", "Objects"},
	{"经济", "jīngjì", "kinh tế", "economy", "HSK9", "Work"},
	{"工作", "gōngzuò", "công việc", "work", "hsk2", "Work"},
}

func writeXLSX(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range sampleRows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	content := "Chinese,Pinyin,Vietnamese,English,Level,Topic\n" +
		"你好,nǐ hǎo,xin chào,hello,HSK1,Greetings\n" +
		"工作,gōngzuò,công việc,work,HSK2,Work\n" +
		"坏,huài,xấu,bad,HSK0,Adjectives\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportExcel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = writeXLSX(t)

	res, err := Import(cfg)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Processed, "blank and header rows are not processed")
	assert.Equal(t, 3, res.Imported)
	assert.Len(t, res.Errors, 3)

	words := res.Document.Words
	require.Len(t, words, 3)
	assert.Equal(t, catalog.Word{
		ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", Vietnamese: "xin chào", English: "hello",
		Example: "你好，老师！", ExampleTranslation: "Chào thầy!", HSKLevel: catalog.HSK1, Topic: "greetings",
	}, words[0])
	assert.Equal(t, 2, words[1].ID)
	assert.Equal(t, catalog.HSK2, words[2].HSKLevel)

	require.Len(t, res.Document.Topics, 2)
	assert.Equal(t, "greetings", res.Document.Topics[0].ID)
	assert.Equal(t, "Greetings", res.Document.Topics[0].Name)
	assert.Equal(t, []catalog.HSKLevel{catalog.HSK2}, res.Document.Topics[1].Levels)
}

func TestImportCSV(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = writeCSV(t)
	cfg.FirstID = 100

	res, err := Import(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 100, res.Document.Words[0].ID)
	assert.Equal(t, 101, res.Document.Words[1].ID)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 4")
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = "words.txt"
	_, err := Import(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImportRejectsBadColumn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = "words.csv"
	cfg.PinyinColumn = "1B"
	_, err := Import(cfg)
	assert.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = writeXLSX(t)
	res, err := Import(cfg)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out", "catalog.json")
	require.NoError(t, WriteFile(out, res.Document))

	cat, err := catalog.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Len(t, cat.WordsByTopic("greetings"), 2)
}
