package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/RishiKendai/winnow/internal/fingerprint"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/report"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// isStdoutTTY returns true if stdout is connected to a terminal.
func isStdoutTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

type painter bool

func (p painter) paint(color, s string) string {
	if !p {
		return s
	}
	return color + s + colorReset
}

func labelColor(label string) string {
	switch label {
	case "near copy":
		return colorRed
	case "highly suspicious", "suspicious":
		return colorYellow
	default:
		return colorGreen
	}
}

// formatSessions renders compare results:
//
//	python │ 3 files │ 1 pair
//	  92%  near copy          a.py ↔ c.py  │ 41 matches, 38/29 lines
//	       a.py:3:0-10:5  ~  c.py:4:0-11:5
func formatSessions(sessions []sessionOutput, fragments, color bool) string {
	p := painter(color)
	var sb strings.Builder

	for _, s := range sessions {
		sb.WriteString(fmt.Sprintf("%s │ %d files │ %s\n", p.paint(colorBold, s.Name), s.Files, plural(len(s.Pairs), "pair")))
		if s.Error != "" {
			sb.WriteString("  " + p.paint(colorRed, "error: "+s.Error) + "\n")
			continue
		}
		for _, pair := range s.Pairs {
			sb.WriteString(formatPair(pair, p))
			if fragments {
				for _, f := range pair.Fragments {
					sb.WriteString(fmt.Sprintf("       %s  ~  %s %s\n",
						p.paint(colorCyan, location(pair.Left, f.Left)),
						p.paint(colorCyan, location(pair.Right, f.Right)),
						p.paint(colorGray, fmt.Sprintf("(%d)", f.Matches))))
				}
			}
		}
	}
	return sb.String()
}

func formatPair(pair report.PairSummary, p painter) string {
	return fmt.Sprintf("  %3.0f%%  %-18s %s ↔ %s  │ %s, %d/%d lines\n",
		pair.Overlap*100,
		p.paint(labelColor(pair.Label), pair.Label),
		pair.Left.Path,
		pair.Right.Path,
		plural(pair.Matches, "match"),
		pair.LeftLines,
		pair.RightLines)
}

// formatIntersections renders the pairs touched by one watch event.
func formatIntersections(file *models.File, summaries []report.PairSummary, color bool) string {
	p := painter(color)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s │ %s\n", p.paint(colorBold, file.Path), plural(len(summaries), "pair")))
	for _, s := range summaries {
		sb.WriteString(formatPair(s, p))
	}
	return sb.String()
}

// formatFingerprints renders one line per fingerprint: hash, token range,
// source span and the k-mer text.
func formatFingerprints(file *models.File, fps []fingerprint.Fingerprint, mapping []models.Selection) string {
	var sb strings.Builder
	for _, fp := range fps {
		span := models.Merge(mapping[fp.Start], mapping[fp.Stop])
		sb.WriteString(fmt.Sprintf("%016x  %5d-%-5d  %s  %s\n", fp.Hash, fp.Start, fp.Stop, location(file, span), fp.Data))
	}
	return sb.String()
}

func location(f *models.File, sel models.Selection) string {
	// Selections are zero-based; editors count lines from 1.
	return fmt.Sprintf("%s:%d:%d-%d:%d", f.Path, sel.Start.Line+1, sel.Start.Column, sel.End.Line+1, sel.End.Column)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	if strings.HasSuffix(word, "ch") {
		return fmt.Sprintf("%d %ses", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
