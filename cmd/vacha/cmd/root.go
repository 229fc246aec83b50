package cmd

import (
	"log/slog"
	"os"

	"github.com/corey/vacha/internal/adapters/fsnotify"
	"github.com/corey/vacha/internal/app"
	"github.com/spf13/cobra"
)

var (
	rootLexicon string
	rootMetric  string
	rootScanner string
	rootDebug   bool
	rootColor   string
	rootNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "vacha",
	Short: "English ↔ Eald-vacha dictionary",
	Long: "Search the Eald-vacha lexicon in either direction with * wildcards and fuzzy fallback,\n" +
		"decompose compound headwords, and score possible roots of unknown words.\n\n" +
		"Configuration comes from VACHA_* environment variables or a .env file;\n" +
		"flags override both.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootLexicon, "lexicon", "l", "", "Lexicon file: .xlsx, .csv or .db (env "+app.EnvLexicon+")")
	pf.StringVar(&rootMetric, "metric", "", "Similarity metric (env "+app.EnvMetric+")")
	pf.StringVar(&rootScanner, "scanner", "", "Root scanner: aho-corasick or set (env "+app.EnvScanner+")")
	pf.BoolVar(&rootDebug, "debug", false, "Debug logging on stderr (env "+app.EnvDebug+")")
	pf.StringVar(&rootColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&rootNoColor, "no-color", false, "Suppress color output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(decomposeCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(rootsCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfig layers flags over the environment and validates the result.
func resolveConfig(cmd *cobra.Command) (app.Config, error) {
	cfg := app.LoadConfig()
	flags := cmd.Flags()
	if flags.Changed("lexicon") {
		cfg.Lexicon = rootLexicon
	}
	if flags.Changed("metric") {
		cfg.Metric = rootMetric
	}
	if flags.Changed("scanner") {
		cfg.Scanner = rootScanner
	}
	if flags.Changed("debug") {
		cfg.Debug = rootDebug
	}
	if err := cfg.Validate(); err != nil {
		return cfg, usageError{err: err}
	}
	return cfg, nil
}

// newLogger writes structured logs to stderr.
func newLogger(cfg app.Config) *slog.Logger {
	return app.NewLogger(os.Stderr, cfg.Debug)
}

// openService resolves configuration and loads the lexicon.
func openService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, newLogger(cfg))
}

// watchLexicon reloads svc whenever its lexicon file changes.
func watchLexicon(svc *app.Service) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := svc.Watch(w, svc.Config().Lexicon); err != nil {
		w.Stop()
		return err
	}
	return nil
}

// useColor reports whether output to cmd's stdout should be colored.
func useColor() bool {
	return resolveColor(rootColor, rootNoColor)
}
