package tui

import (
	"fmt"
	"strings"

	"github.com/texspell/texspell/internal/domain"
)

// RenderLanguages lists the service catalog, one code per line.
func RenderLanguages(langs []domain.Language) string {
	if len(langs) == 0 {
		return "  " + dimStyle.Render("The service reported no languages.") + "\n"
	}

	width := 0
	for _, l := range langs {
		width = max(width, len(l.Code))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Languages") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(langs))) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")
	for _, l := range langs {
		pad := strings.Repeat(" ", width-len(l.Code))
		fmt.Fprintf(&b, "  %s%s  %s\n", headerStyle.Render(l.Code), pad, l.Name)
	}
	return b.String()
}
