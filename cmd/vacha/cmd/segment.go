package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/domain/segment"
	"github.com/spf13/cobra"
)

var segmentJSON bool

var segmentCmd = &cobra.Command{
	Use:   "segment [flags] <word>",
	Short: "List every root segmentation of a word and the best-scoring readings",
	Long: "Enumerates every way to cover the word with known roots of at least three letters,\n" +
		"then scores each reading by coverage, part count, length match and (for headwords)\n" +
		"similarity to the word's own gloss.",
	Example: "  vacha segment feldor",
	Args:    argsBetween(1, 1),
	RunE:    runSegment,
}

func init() {
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "Print segmentations and candidates as JSON")
}

// segmentOutput is the --json shape.
type segmentOutput struct {
	Segmentations  []string               `json:"segmentations"`
	Decompositions segment.Decompositions `json:"decompositions"`
}

func runSegment(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd)
	if err != nil {
		return err
	}
	d, err := svc.Segment(args[0])
	if err != nil {
		return usageError{err: err}
	}
	segs := svc.Snapshot().Segmenter.Segment(strings.ToLower(strings.TrimSpace(args[0])))

	out := cmd.OutOrStdout()
	if segmentJSON {
		texts := make([]string, len(segs))
		for i, s := range segs {
			texts[i] = s.String()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(segmentOutput{Segmentations: texts, Decompositions: d})
	}
	fmt.Fprint(out, formatSegmentation(segs, d, useColor()))
	return nil
}
