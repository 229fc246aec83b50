package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/app"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/spf13/cobra"
)

var (
	searchDirection string
	searchMin       int
	searchLimit     int
	searchDecompose bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>",
	Short: "Search the lexicon (exact, * wildcard, fuzzy fallback)",
	Long: "Searches English → Eald-vacha by default. Matching is case-insensitive against each\n" +
		"'/'-separated alternate. * matches any run of characters. When nothing matches exactly,\n" +
		"the best fuzzy matches at or above --min are shown. Exits 1 when nothing matched.",
	Example: "  vacha search fire\n  vacha search '*lord'\n  vacha search -d ev fel-dor\n  vacha search --decompose 'fire lord'",
	Args:    argsBetween(1, -1),
	RunE:    runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchDirection, "direction", "d", "en", "Direction: en (English → Eald-vacha) or ev (Eald-vacha → English)")
	f.IntVarP(&searchMin, "min", "m", 0, "Fuzzy tolerance 50–95 (default "+app.EnvFuzzyMin+" or 75)")
	f.IntVarP(&searchLimit, "limit", "n", 0, "Max fuzzy results (default "+app.EnvFuzzyLimit+" or 4)")
	f.BoolVar(&searchDecompose, "decompose", false, "Append decompositions of the matched headwords")
	f.BoolVar(&searchJSON, "json", false, "Print the result as JSON")
}

// searchOutput is the --json shape.
type searchOutput struct {
	Result    search.Result `json:"result"`
	Decompose string        `json:"decompose,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	dir, err := search.ParseDirection(searchDirection)
	if err != nil {
		return usageError{err: err}
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("limit") {
		if searchLimit < 1 {
			return usageErrorf("--limit must be at least 1")
		}
		cfg.FuzzyLimit = searchLimit
	}
	minScore := cfg.FuzzyMin
	if cmd.Flags().Changed("min") {
		if err := app.ValidateMinScore(searchMin); err != nil {
			return usageError{err: err}
		}
		minScore = searchMin
	}

	svc, err := app.New(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	res, err := svc.Search(strings.Join(args, " "), dir, minScore)
	if err != nil {
		return usageError{err: err}
	}

	var report string
	if searchDecompose {
		report, err = svc.DecomposeResult(res)
		if errors.Is(err, app.ErrDecomposeUnavailable) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		} else if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(searchOutput{Result: res, Decompose: report}); err != nil {
			return err
		}
	} else {
		color := useColor()
		fmt.Fprint(out, formatResult(res, color))
		if report != "" {
			fmt.Fprint(out, formatReport(report, color))
		}
	}

	if res.Mode == search.ModeNone {
		return exitStatus{code: exitNoMatch}
	}
	return nil
}
