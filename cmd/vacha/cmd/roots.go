package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	rootsList   bool
	rootsPrefix string
)

var rootsCmd = &cobra.Command{
	Use:   "roots [flags]",
	Short: "Show the root set derived from the lexicon",
	Long:  "Roots are every alternate spelling of every headword plus each hyphen-separated part.",
	Args:  argsBetween(0, 0),
	RunE:  runRoots,
}

func init() {
	f := rootsCmd.Flags()
	f.BoolVar(&rootsList, "list", false, "List every root, one per line")
	f.StringVar(&rootsPrefix, "prefix", "", "Only list roots starting with this prefix (implies --list)")
}

func runRoots(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	color := useColor()

	if !rootsList && rootsPrefix == "" {
		fmt.Fprintf(out, "%s⚡ vacha roots%s\n", colorIf(colorBold, color), colorIf(colorReset, color))
		fmt.Fprint(out, formatStats(svc.Stats(), color))
		return nil
	}

	prefix := strings.ToLower(rootsPrefix)
	for _, r := range svc.Roots() {
		if strings.HasPrefix(r, prefix) {
			fmt.Fprintln(out, r)
		}
	}
	return nil
}
