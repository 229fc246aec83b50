package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/spf13/cobra"
)

var decomposeJSON bool

var decomposeCmd = &cobra.Command{
	Use:   "decompose [flags] <word> [word ...]",
	Short: "Break headwords into their parts recursively",
	Long: "Splits compounds on '-', alternates on '/', strips the nə negation prefix, and looks\n" +
		"up every part. Long unknown words get a ranked list of possible roots.",
	Example: "  vacha decompose fel-dor\n  vacha decompose nəfel 'dor/dorn'",
	Args:    argsBetween(1, -1),
	RunE:    runDecompose,
}

func init() {
	decomposeCmd.Flags().BoolVar(&decomposeJSON, "json", false, "Print the trees as JSON")
}

func runDecompose(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}

	nodes := make([]*decompose.Node, 0, len(args))
	for _, w := range args {
		n, err := svc.Decompose(w)
		if err != nil {
			return usageError{err: err}
		}
		nodes = append(nodes, n)
	}

	out := cmd.OutOrStdout()
	if decomposeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	}
	fmt.Fprint(out, formatNodes(nodes, useColor()))
	return nil
}
