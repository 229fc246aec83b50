package cmd

import (
	"fmt"

	"github.com/corey/vacha/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved configuration (defaults, .env, VACHA_* environment, flags) and whether the lexicon loads.",
	Args:  argsBetween(0, 0),
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	color := useColor()

	fmt.Fprintf(out, "%s⚡ vacha config%s\n", colorIf(colorBold, color), colorIf(colorReset, color))
	fmt.Fprintf(out, "  Lexicon:    %s\n", cfg.Lexicon)
	fmt.Fprintf(out, "  Fuzzy min:  %d%%\n", cfg.FuzzyMin)
	fmt.Fprintf(out, "  Fuzzy max:  %d results\n", cfg.FuzzyLimit)
	fmt.Fprintf(out, "  Metric:     %s\n", cfg.Metric)
	fmt.Fprintf(out, "  Scanner:    %s\n", cfg.Scanner)
	fmt.Fprintf(out, "  Cache:      %d entries\n", cfg.CacheSize)
	fmt.Fprintf(out, "  HTTP:       %s\n", cfg.HTTPAddr)
	fmt.Fprintf(out, "  Debug:      %t\n", cfg.Debug)

	svc, err := app.New(cfg, nil)
	if err != nil {
		fmt.Fprintf(out, "  Status:     %s\n", paint("✗ "+err.Error(), colorYellow, color))
		return nil
	}
	fmt.Fprintf(out, "  Status:     %s\n", paint("✓ loaded", colorGreen, color))
	fmt.Fprint(out, formatStats(svc.Stats(), color))
	return nil
}
