package decompose

import (
	"fmt"
	"strings"
)

// Report headers.
const (
	ReportHeader   = "\n=== Decompositions ===\n\n"
	possibleHeader = "Possible compound word roots:"
)

// Render formats the tree as indented text, two spaces per level:
//
//	fel-dor (compound) → fire lord:
//	  fel: fire
//	  dor: lord
func (n *Node) Render() string {
	var lines []string
	n.render(0, &lines)
	return strings.Join(lines, "\n")
}

func (n *Node) render(depth int, lines *[]string) {
	ind := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindCycle:
		*lines = append(*lines, ind+n.Word+": [cycle detected]")

	case KindCompound:
		header := ind + n.Word + " (compound)"
		if n.Found {
			header += " → " + n.Gloss + noteSuffix(n.Notes)
		}
		*lines = append(*lines, header+":")
		for _, c := range n.Children {
			c.render(depth+1, lines)
		}

	case KindAlternates:
		for _, c := range n.Children {
			c.render(depth, lines)
		}

	case KindNegation:
		*lines = append(*lines,
			ind+n.Word+" (negation prefix):",
			ind+"  "+NegationPrefix+": "+NegationGloss)
		for _, c := range n.Children {
			c.render(depth+1, lines)
		}

	default:
		if n.Found {
			*lines = append(*lines, ind+n.Word+": "+n.Gloss+noteSuffix(n.Notes))
		} else {
			*lines = append(*lines, ind+n.Word+": [not found]")
		}
		if n.Possible != nil {
			*lines = append(*lines, ind+possibleHeader+"\n"+n.Possible.String())
		}
	}
}

func noteSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return " (" + notes + ")"
}

// Report decomposes each word and renders the combined section shown after
// a search:
//
//	=== Decompositions ===
//
//	Decomposition for fel:
//	fel: fire
func (d *Decomposer) Report(words []string) string {
	var sb strings.Builder
	sb.WriteString(ReportHeader)
	for _, w := range words {
		fmt.Fprintf(&sb, "Decomposition for %s:\n%s\n\n", w, d.Text(w))
	}
	return sb.String()
}
