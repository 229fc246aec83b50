// vacha is an English ↔ Eald-vacha dictionary: search with wildcards and
// fuzzy fallback, recursive decomposition of compound headwords, and scored
// guesses at the roots of unknown words.
package main

import (
	"fmt"
	"os"

	"github.com/corey/vacha/cmd/vacha/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
