package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/texspell/texspell/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	markerStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	fixStyle      = lipgloss.NewStyle().Foreground(success)
	ruleStyle     = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Options controls how much of each diagnostic is shown.
type Options struct {
	// MaxReplacements caps the suggestions listed per diagnostic; 0 lists
	// none.
	MaxReplacements int
	// ContextLines is the number of unflagged lines shown on each side of
	// the flagged lines.
	ContextLines int
}

// RenderReport formats a checked document for the terminal. Each diagnostic
// is shown against the document line it points into; a diagnostic whose
// span cannot be cut from the document degrades to a single line.
func RenderReport(report *domain.Report, opts Options) string {
	var b strings.Builder

	title := headerStyle.Render("texspell") + "  " + titleStyle.Render(filepath.Base(report.Document))
	meta := dimStyle.Render("language " + report.Language)
	if report.Revision != "" {
		meta += dimStyle.Render("  rev " + report.Revision)
	}
	b.WriteString(boxStyle.Render(title + "\n" + meta))
	b.WriteString("\n\n")

	if len(report.Diagnostics) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		renderSkipped(&b, report.Skipped)
		return b.String()
	}

	src := newSource(report.Source)
	for i, d := range report.Diagnostics {
		renderDiagnostic(&b, src, report.Document, d, opts)
		if i < len(report.Diagnostics)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	renderSummary(&b, report)
	renderSkipped(&b, report.Skipped)
	return b.String()
}

func renderDiagnostic(b *strings.Builder, src *source, doc string, d domain.ReconciledDiagnostic, opts Options) {
	ex, err := src.excerpt(d.DocumentOffset, d.DocumentLength, max(0, opts.ContextLines))
	if err != nil {
		renderFallback(b, d, err)
		return
	}

	location := fileStyle.Render(fmt.Sprintf("%s:%d:%d", doc, ex.line, ex.column))
	fmt.Fprintf(b, "  %s  %s\n", location, titleStyle.Render(d.Message))

	var tags []string
	if kind := humanize(d.IssueType); kind != "" {
		tags = append(tags, kind)
	}
	if d.RuleID != "" {
		tags = append(tags, ruleStyle.Render(d.RuleID))
	}
	if d.Approximate {
		tags = append(tags, warnStyle.Render("approximate position"))
	}
	if len(tags) > 0 {
		fmt.Fprintf(b, "  %s\n", dimStyle.Render(strings.Join(tags, dimStyle.Render(" · "))))
	}

	width := len(fmt.Sprint(ex.lines[len(ex.lines)-1].number))
	for _, l := range ex.lines {
		num := fmt.Sprintf("%*d", width, l.number)
		fmt.Fprintf(b, "  %s %s %s\n", dimStyle.Render(num), faintStyle.Render("│"), l.text)
		if l.marker != "" {
			// Only the carets are styled; styling would expand the tabs
			// that keep them aligned with the raw source line.
			indent := strings.TrimRight(l.marker, "^")
			carets := markerStyle.Render(l.marker[len(indent):])
			fmt.Fprintf(b, "  %s %s %s%s\n", strings.Repeat(" ", width), faintStyle.Render("│"), indent, carets)
		}
	}

	renderReplacements(b, d.Replacements, opts.MaxReplacements)
}

func renderFallback(b *strings.Builder, d domain.ReconciledDiagnostic, err error) {
	reason := err.Error()
	var re *domain.RenderError
	if errors.As(err, &re) {
		reason = re.Reason
	}
	fmt.Fprintf(b, "  %s  %s  %s\n",
		fileStyle.Render(fmt.Sprintf("offset %d (+%d)", d.DocumentOffset, d.DocumentLength)),
		titleStyle.Render(d.Message),
		warnStyle.Render("[excerpt unavailable: "+reason+"]"),
	)
	renderReplacements(b, d.Replacements, 0)
}

func renderReplacements(b *strings.Builder, replacements []string, limit int) {
	if limit <= 0 || len(replacements) == 0 {
		return
	}
	shown := replacements[:min(limit, len(replacements))]
	line := fixStyle.Render(strings.Join(shown, ", "))
	if rest := len(replacements) - len(shown); rest > 0 {
		line += dimStyle.Render(fmt.Sprintf("  +%d more", rest))
	}
	fmt.Fprintf(b, "  %s %s\n", dimStyle.Render("→"), line)
}

func renderSummary(b *strings.Builder, report *domain.Report) {
	n := len(report.Diagnostics)
	noun := "issues"
	if n == 1 {
		noun = "issue"
	}
	b.WriteString("  " + failStyle.Bold(true).Render(fmt.Sprintf("%d %s", n, noun)))
	if approx := report.ApproximateCount(); approx > 0 {
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%d approximate", approx)))
	}
	b.WriteString("\n")
}

func renderSkipped(b *strings.Builder, skipped []domain.RecordError) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", warnStyle.Render(fmt.Sprintf("%d malformed records skipped", len(skipped))))
	for _, s := range skipped {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(s.Error()))
	}
}

// humanize turns a service issue type such as "UnknownWord" into
// "Unknown word".
func humanize(issueType string) string {
	words := camelcase.Split(strings.TrimSpace(issueType))
	if len(words) == 0 {
		return ""
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}
