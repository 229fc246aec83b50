package cmd

import (
	"fmt"
	"time"

	"github.com/corey/vacha/internal/app"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a lexicon between .xlsx, .csv and .db",
	Long: "Reads the lexicon at <in> and writes it to <out>. The output format follows the\n" +
		"extension: .db writes a bbolt snapshot that later commands load without parsing the\n" +
		"spreadsheet, .xlsx and .csv write a table with English, Eald-vacha and Notes columns.\n" +
		"A running server with --watch reloads the snapshot after conversion.",
	Example: "  vacha convert dictionary.xlsx lexicon.db\n  vacha convert lexicon.db export.csv",
	Args:    argsBetween(2, 2),
	RunE:    runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()
	n, err := app.Convert(args[0], args[1])
	if err != nil {
		return err
	}
	color := useColor()
	fmt.Fprintf(cmd.OutOrStdout(), "%s⚡ %d rows%s │ %s → %s │ %s\n",
		colorIf(colorBold, color), n, colorIf(colorReset, color),
		args[0], args[1], time.Since(start).Round(time.Millisecond))
	return nil
}
