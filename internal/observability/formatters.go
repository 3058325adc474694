// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/jonathan/hs-advisor/internal/hscode"
	"github.com/jonathan/hs-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxPreviewWidth bounds one-line previews of record fields
	maxPreviewWidth = 56
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// displayWidth counts terminal columns; East Asian wide runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// truncate shortens s to at most max columns, marking the cut with "...".
func truncate(s string, max int) string {
	if displayWidth(s) <= max {
		return s
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		w := displayWidth(string(r))
		if used+w > max-3 {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String() + "..."
}

// pad right-fills s with spaces to n columns
func pad(s string, n int) string {
	if gap := n - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintHits outputs the ranked records for a query with a preview of their fields.
func (p *Printer) PrintHits(query string, hits []types.Hit) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %s\n", query))
	if len(hits) == 0 {
		sb.WriteString("\nNo matching records.")
		p.printBox("SEARCH RESULTS", sb.String())
		return
	}
	sb.WriteString(fmt.Sprintf("Matches: %d\n", len(hits)))

	for i, hit := range hits {
		sb.WriteString(fmt.Sprintf("\n#%d  %s  (score %d)\n", i+1, hit.Source, hit.Score))
		if hit.Record == nil {
			continue
		}
		shown := 0
		for _, name := range hit.Record.FieldNames() {
			if shown == maxItemsToShow {
				sb.WriteString(fmt.Sprintf("    ... and %d more fields\n", len(hit.Record.Fields)-shown))
				break
			}
			value, ok := hit.Record.Field(name)
			if !ok || value == "" {
				continue
			}
			value = strings.Join(strings.Fields(value), " ")
			sb.WriteString(fmt.Sprintf("    %s: %s\n", name, truncate(value, maxPreviewWidth-displayWidth(name))))
			shown++
		}
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCodes outputs extracted HS codes, one per line.
func (p *Printer) PrintCodes(codes []string) {
	if len(codes) == 0 {
		p.printBox("HS CODES", "No HS codes found.")
		return
	}
	var sb strings.Builder
	for _, code := range codes {
		sb.WriteString(fmt.Sprintf("• %s  %s\n", code, hscode.Format(code)))
	}
	p.printBox(fmt.Sprintf("HS CODES (%d)", len(codes)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLookups outputs which explanation levels were found for each code.
func (p *Printer) PrintLookups(lookups []hscode.Lookup) {
	if len(lookups) == 0 {
		return
	}
	var sb strings.Builder
	for i, l := range lookups {
		sb.WriteString(fmt.Sprintf("%s\n", hscode.Format(l.Code)))
		for _, e := range []hscode.Explanation{l.Section, l.Heading, l.Subheading} {
			mark := "✗"
			if e.Found {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %-10s %s\n", mark, e.Level, e.Code))
		}
		if i < len(lookups)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("EXPLANATION COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKnowledgeSummary outputs what was loaded at startup.
func (p *Printer) PrintKnowledgeSummary(sources map[string]int, order []string, keywords, references, rules int) {
	var sb strings.Builder
	total := 0
	for _, name := range order {
		sb.WriteString(fmt.Sprintf("%-28s %6d records\n", name, sources[name]))
		total += sources[name]
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Records:        %d\n", total))
	sb.WriteString(fmt.Sprintf("Keywords:       %d\n", keywords))
	sb.WriteString(fmt.Sprintf("Explanations:   %d\n", references))
	sb.WriteString(fmt.Sprintf("General rules:  %d", rules))
	p.printBox("KNOWLEDGE BASE", sb.String())
}
