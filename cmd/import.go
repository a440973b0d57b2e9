package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/catalog/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Convert a spreadsheet of words into a catalog file",
	Long: `Reads words from an Excel or CSV file and writes a catalog JSON file
that can be used with --catalog or catalog.path.

Default columns: A hanzi, B pinyin, C Vietnamese, D English, E level,
F topic, G example, H example translation. Row 1 is a header.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := importer.DefaultConfig()
		cfg.Path = args[0]
		cfg.Sheet, _ = cmd.Flags().GetString("sheet")
		cfg.StartRow, _ = cmd.Flags().GetInt("start-row")
		cfg.FirstID, _ = cmd.Flags().GetInt("first-id")

		res, err := importer.Import(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, msg := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "skipped", msg)
		}
		if res.Imported == 0 {
			return fmt.Errorf("no words imported from %s", cfg.Path)
		}

		dest, _ := cmd.Flags().GetString("out")
		if dest == "" {
			dest = strings.TrimSuffix(cfg.Path, filepath.Ext(cfg.Path)) + ".json"
		}
		if err := importer.WriteFile(dest, res.Document); err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d of %d rows (%d topics) into %s\n",
			res.Imported, res.Processed, len(res.Document.Topics), dest)
		return nil
	},
}

func init() {
	d := importer.DefaultConfig()
	importCmd.Flags().String("out", "", "Output catalog path (default: input name with .json)")
	importCmd.Flags().String("sheet", d.Sheet, "Worksheet name (xlsx only)")
	importCmd.Flags().Int("start-row", d.StartRow, "First data row; rows above are headers")
	importCmd.Flags().Int("first-id", d.FirstID, "Id assigned to the first imported word")
}
