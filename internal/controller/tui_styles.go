package controller

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/turretlint/internal/domain/ncode"
	m "github.com/mouse-blink/turretlint/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	severityStyles = map[m.Severity]lipgloss.Style{
		m.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		m.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		m.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}

	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")).Italic(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// addressStyles colours NC address words by their letter.
var addressStyles = map[byte]lipgloss.Style{
	'G': lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")).Bold(true),
	'M': lipgloss.NewStyle().Foreground(lipgloss.Color("#EA580C")).Bold(true),
	'X': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'Y': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'Z': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'U': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'V': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'W': lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
	'I': lipgloss.NewStyle().Foreground(lipgloss.Color("#0D9488")),
	'J': lipgloss.NewStyle().Foreground(lipgloss.Color("#0D9488")),
	'K': lipgloss.NewStyle().Foreground(lipgloss.Color("#0D9488")),
	'F': lipgloss.NewStyle().Foreground(lipgloss.Color("#9333EA")),
	'S': lipgloss.NewStyle().Foreground(lipgloss.Color("#DB2777")),
	'T': lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706")),
	'N': lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
	'P': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
	'Q': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
	'R': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
	'L': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
	'H': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
	'D': lipgloss.NewStyle().Foreground(lipgloss.Color("#0891B2")),
}

// highlightLine renders a program line with its address words coloured.
// Comment lines are rendered whole. Text between words is kept unstyled.
func highlightLine(line string) string {
	if ncode.IsComment(line) {
		return commentStyle.Render(line)
	}

	var b strings.Builder

	last := 0

	for _, w := range ncode.Words(line) {
		b.WriteString(line[last:w.Start])

		if style, ok := addressStyles[w.Address]; ok {
			b.WriteString(style.Render(line[w.Start:w.End]))
		} else {
			b.WriteString(line[w.Start:w.End])
		}

		last = w.End
	}

	b.WriteString(line[last:])

	return b.String()
}

func renderSeverity(s m.Severity) string {
	style, ok := severityStyles[s]
	if !ok {
		return string(s)
	}

	return style.Render(string(s))
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	textWidth := lipgloss.Width(text)
	if textWidth <= width {
		return text
	}

	gap := "   "

	// ticks before scrolling starts
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	effectiveStep := offset - pause

	runes := []rune(text + gap)
	n := len(runes)

	start := effectiveStep % n

	res := make([]rune, 0, width)
	for i := range width {
		idx := (start + i) % n
		res = append(res, runes[idx])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
