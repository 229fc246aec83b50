package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/vacha/internal/adapters/web"
	"github.com/corey/vacha/internal/app"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve the JSON API and search page over HTTP",
	Long: "Endpoints: GET /api/health, GET /api/search?q=&dir=&min=&decompose=,\n" +
		"GET /api/decompose?word=, POST /api/decompose {blocks|text|words}, GET /api/segment?word=.",
	Args: argsBetween(0, 0),
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", "", "Listen address (default VACHA_HTTP_ADDR or 127.0.0.1:8750)")
	f.BoolVarP(&serveWatch, "watch", "w", false, "Reload the lexicon when its file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTPAddr = serveAddr
	}
	log := newLogger(cfg)

	svc, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	if serveWatch {
		// Non-fatal: the server still answers from the loaded snapshot.
		if err := watchLexicon(svc); err != nil {
			log.Warn("lexicon watcher unavailable", "err", err)
		}
	}

	srv := web.NewServer(svc, log)
	if err := srv.Start(cfg.HTTPAddr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ vacha serving %s\n", srv.URL())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ shutting down...")
	srv.Stop()
	return nil
}
