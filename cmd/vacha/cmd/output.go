package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/segment"
	"github.com/corey/vacha/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// paint wraps s in code when color is on.
func paint(s, code string, color bool) string {
	if !color || s == "" {
		return s
	}
	return code + s + colorReset
}

// formatResult renders a search result. Without color the text is exactly
// Result.Text; with color, headers, values and banners are highlighted line
// by line.
//
//	Match found for 'fire' in 'fire':
//	Eald-vacha: fel
//	Notes: No notes available.
func formatResult(res search.Result, color bool) string {
	text := res.Text()
	if !color {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Match found"):
			lines[i] = paint(line, colorBold+colorCyan, true)
		case strings.HasPrefix(line, "**Fuzzy match**"):
			lines[i] = paint(line, colorYellow, true)
		case strings.HasPrefix(line, "No "), strings.HasPrefix(line, "Fuzzy matches"), line == "---":
			lines[i] = paint(line, colorGray, true)
		case strings.HasPrefix(line, "Notes: "):
			lines[i] = "Notes: " + paint(strings.TrimPrefix(line, "Notes: "), colorGray, true)
		default:
			if label, value, ok := strings.Cut(line, ": "); ok &&
				(label == ports.ColumnHeadword || label == ports.ColumnEnglish) {
				lines[i] = label + ": " + paint(value, colorGreen, true)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// formatReport highlights a decomposition section or tree.
func formatReport(text string, color bool) string {
	if !color {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "==="), strings.HasPrefix(line, "Decomposition for "):
			lines[i] = paint(line, colorBold, true)
		case strings.HasSuffix(line, ": [not found]"), strings.HasSuffix(line, ": [cycle detected]"):
			word, tag, _ := strings.Cut(line, ": ")
			lines[i] = word + ": " + paint(tag, colorYellow, true)
		case strings.HasSuffix(line, "(compound):"), strings.Contains(line, "(compound) → "),
			strings.HasSuffix(line, "(negation prefix):"):
			lines[i] = paint(line, colorCyan, true)
		case strings.HasSuffix(line, "Possible compound word roots:"):
			lines[i] = paint(line, colorMagenta, true)
		}
	}
	return strings.Join(lines, "\n")
}

// formatNodes renders one tree per word in the report layout.
func formatNodes(nodes []*decompose.Node, color bool) string {
	var sb strings.Builder
	sb.WriteString(decompose.ReportHeader)
	for _, n := range nodes {
		fmt.Fprintf(&sb, "Decomposition for %s:\n%s\n\n", n.Word, n.Render())
	}
	return formatReport(sb.String(), color)
}

// formatSegmentation renders every raw segmentation followed by the ranked
// candidates.
//
//	⚡ feldor │ 1 segmentation
//	  fel+dor
//
//	1. (score: 30%) fel: fire + dor: lord
func formatSegmentation(segs []segment.Segmentation, d segment.Decompositions, color bool) string {
	var sb strings.Builder
	noun := "segmentations"
	if len(segs) == 1 {
		noun = "segmentation"
	}
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %d %s\n", colorIf(colorBold, color), d.Word, colorIf(colorReset, color), len(segs), noun))
	for _, s := range segs {
		sb.WriteString("  " + paint(s.String(), colorCyan, color) + "\n")
	}
	if d.Reference != "" {
		sb.WriteString(fmt.Sprintf("  reference: %s\n", paint(d.Reference, colorGreen, color)))
	}
	sb.WriteString("\n")
	sb.WriteString(d.String())
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatStats renders the lexicon summary used by config, roots and the
// shell banner.
func formatStats(st ports.LexiconStats, color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  Source:     %s\n", st.Source))
	sb.WriteString(fmt.Sprintf("  Entries:    %s\n", paint(fmt.Sprint(st.Entries), colorGreen, color)))
	sb.WriteString(fmt.Sprintf("  Roots:      %d\n", st.Roots))
	sb.WriteString(fmt.Sprintf("  Patterns:   %d (%s)\n", st.Patterns, st.Scanner))
	sb.WriteString(fmt.Sprintf("  Loaded:     %s\n", st.LoadedAt.Format("2006-01-02 15:04:05")))
	return sb.String()
}

func colorIf(code string, color bool) string {
	if color {
		return code
	}
	return ""
}
