package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/turretlint/internal/model"
)

type reportScreen int

const (
	screenList reportScreen = iota
	screenDetail
)

type detailTab int

const (
	tabDiagnostics detailTab = iota
	tabCommon
	tabUpper
	tabLower
	tabCount
)

func (t detailTab) String() string {
	switch t {
	case tabDiagnostics:
		return "Diagnostics"
	case tabCommon:
		return "Common"
	case tabUpper:
		return "Upper"
	case tabLower:
		return "Lower"
	default:
		return ""
	}
}

// reportDelegate renders one program per row: worst severity, counts, path.
type reportDelegate struct {
	offset int
}

func (d reportDelegate) Height() int  { return 1 }
func (d reportDelegate) Spacing() int { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reportDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	ri, ok := item.(reportItem)
	if !ok {
		return
	}

	stats := ri.report.Analysis.Stats()
	path := string(ri.report.Source)

	// badge (8) + counts (12) + spacing (4)
	width := lm.Width() - 24

	countStyle := lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	var displayPath string

	if index == lm.Index() {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		displayPath = animateScroll(path, width, d.offset)
	} else {
		displayPath = truncateToWidth(path, width)
	}

	worst := ri.report.Worst()
	if worst == "" {
		worst = "clean"
	}

	line := fmt.Sprintf("%s  %s %s  %s",
		lipgloss.NewStyle().Width(8).Render(renderSeverity(worst)),
		countStyle.Render(fmt.Sprintf("%d", stats.Errors)),
		countStyle.Render(fmt.Sprintf("%d", stats.Warnings)),
		pathStyle.Render(displayPath),
	)
	_, _ = fmt.Fprint(w, line)
}

// reportModel browses saved reports: a program list and a per-program
// detail screen with diagnostics and the three streams.
type reportModel struct {
	width        int
	height       int
	reports      []m.Report
	fileList     list.Model
	delegate     reportDelegate
	screen       reportScreen
	tab          detailTab
	scroll       int
	animOffset   int
	lastSelected int
}

func newReportModel(reports []m.Report) reportModel {
	items := make([]list.Item, 0, len(reports))
	for _, r := range reports {
		items = append(items, reportItem{report: r})
	}

	delegate := reportDelegate{}
	fileList := list.New(items, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return reportModel{
		width:        80,
		height:       24,
		reports:      reports,
		fileList:     fileList,
		delegate:     delegate,
		lastSelected: 0,
	}
}

func (rm reportModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.fileList.SetWidth(rm.width)

		return rm, nil

	case tickMsg:
		if rm.screen == screenList && rm.fileList.FilterState() != list.Filtering {
			rm.animOffset++
			rm.delegate.offset = rm.animOffset
			rm.fileList.SetDelegate(rm.delegate)
		}

		return rm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return rm, tea.Quit
		}

		if rm.screen == screenDetail {
			return rm.updateDetail(msg)
		}

		return rm.updateList(msg)
	}

	return rm, nil
}

func (rm reportModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if rm.fileList.FilterState() == list.Filtering {
		var cmd tea.Cmd

		rm.fileList, cmd = rm.fileList.Update(msg)

		return rm, cmd
	}

	switch msg.String() {
	case "q":
		return rm, tea.Quit
	case "enter":
		if _, ok := rm.fileList.SelectedItem().(reportItem); ok {
			rm.screen = screenDetail
			rm.tab = tabDiagnostics
			rm.scroll = 0
		}

		return rm, nil
	}

	var cmd tea.Cmd

	rm.fileList, cmd = rm.fileList.Update(msg)

	if rm.fileList.Index() != rm.lastSelected {
		rm.lastSelected = rm.fileList.Index()
		rm.animOffset = 0
		rm.delegate.offset = 0
		rm.fileList.SetDelegate(rm.delegate)
	}

	return rm, cmd
}

func (rm reportModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return rm, tea.Quit
	case "esc", "backspace":
		rm.screen = screenList
	case "tab", "right", "l":
		rm.tab = (rm.tab + 1) % tabCount
		rm.scroll = 0
	case "shift+tab", "left", "h":
		rm.tab = (rm.tab + tabCount - 1) % tabCount
		rm.scroll = 0
	case "down", "j":
		if rm.scroll < rm.maxScroll() {
			rm.scroll++
		}
	case "up", "k":
		if rm.scroll > 0 {
			rm.scroll--
		}
	case "g":
		rm.scroll = 0
	case "G":
		rm.scroll = rm.maxScroll()
	}

	return rm, nil
}

func (rm reportModel) selected() (m.Report, bool) {
	item, ok := rm.fileList.SelectedItem().(reportItem)
	if !ok {
		return m.Report{}, false
	}

	return item.report, true
}

// bodyHeight is the number of content lines shown on the detail screen:
// title, stats, tabs, blank line and footer are reserved.
func (rm reportModel) bodyHeight() int {
	h := rm.height - 6
	if h < 3 {
		h = 3
	}

	return h
}

func (rm reportModel) maxScroll() int {
	report, ok := rm.selected()
	if !ok {
		return 0
	}

	n := len(detailLines(report, rm.tab)) - rm.bodyHeight()
	if n < 0 {
		return 0
	}

	return n
}

func (rm reportModel) View() string {
	if rm.screen == screenDetail {
		if report, ok := rm.selected(); ok {
			return rm.viewDetail(report)
		}
	}

	return rm.viewList()
}

func (rm reportModel) viewList() string {
	var errs, warns int

	for _, r := range rm.reports {
		errs += len(r.Analysis.Errors)
		warns += len(r.Analysis.Warnings)
	}

	title := titleStyle.Padding(1, 0, 0, 2).Render("turretlint reports")
	summary := lipgloss.NewStyle().Padding(0, 0, 1, 2).Render(fmt.Sprintf(
		"Programs: %s   Errors: %s   Warnings: %s",
		accentStyle.Render(fmt.Sprintf("%d", len(rm.reports))),
		accentStyle.Render(fmt.Sprintf("%d", errs)),
		accentStyle.Render(fmt.Sprintf("%d", warns)),
	))

	listHeight := rm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := rm.width - 6

	rm.fileList.SetHeight(listHeight)
	rm.fileList.SetWidth(listWidth)

	headers := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth).
		Render(fmt.Sprintf("%-8s  %5s %5s  %s", "Worst", "Err", "Warn", "Program"))

	table := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, headers, rm.fileList.View()))

	footer := mutedStyle.Align(lipgloss.Center).Width(rm.width).
		Render("↑/k up • ↓/j down • enter open • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, table, footer)
}

func (rm reportModel) viewDetail(report m.Report) string {
	stats := report.Analysis.Stats()

	title := titleStyle.Render(string(report.Source))
	summary := fmt.Sprintf("lines %d • common %d • upper %d • lower %d • %s %d • %s %d",
		stats.TotalLines, stats.CommonLines, stats.UpperLines, stats.LowerLines,
		renderSeverity(m.SeverityError), stats.Errors,
		renderSeverity(m.SeverityWarning), stats.Warnings,
	)

	tabs := make([]string, 0, tabCount)
	for t := detailTab(0); t < tabCount; t++ {
		if t == rm.tab {
			tabs = append(tabs, accentStyle.Bold(true).Underline(true).Render(t.String()))
		} else {
			tabs = append(tabs, mutedStyle.Render(t.String()))
		}
	}

	lines := detailLines(report, rm.tab)

	end := rm.scroll + rm.bodyHeight()
	if end > len(lines) {
		end = len(lines)
	}

	body := "(empty)"
	if rm.scroll < end {
		body = strings.Join(lines[rm.scroll:end], "\n")
	}

	footer := mutedStyle.Render("tab next • shift+tab prev • ↑/↓ scroll • esc back • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		strings.Join(tabs, "  "),
		"",
		body,
		footer,
	)
}

// detailLines renders the content of one tab of the detail screen.
func detailLines(report m.Report, tab detailTab) []string {
	switch tab {
	case tabCommon:
		return streamLines(report.Analysis.Common)
	case tabUpper:
		return streamLines(report.Analysis.Upper)
	case tabLower:
		return streamLines(report.Analysis.Lower)
	case tabDiagnostics, tabCount:
	}

	diags := mergeDiagnostics(report.Analysis, true)
	lines := make([]string, 0, len(diags)+2)

	for _, d := range diags {
		lines = append(lines, fmt.Sprintf("%s %s", lipgloss.NewStyle().Width(8).Render(renderSeverity(d.Severity)), d))
	}

	lines = append(lines,
		mutedStyle.Render(describeTurret(m.TurretUpper, report.Analysis.Machine.Upper)),
		mutedStyle.Render(describeTurret(m.TurretLower, report.Analysis.Machine.Lower)),
	)

	return lines
}

func streamLines(stream []m.ClassifiedLine) []string {
	lines := make([]string, 0, len(stream))

	for _, l := range stream {
		lines = append(lines, fmt.Sprintf("%s  %s%s",
			labelStyle.Render(fmt.Sprintf("N%04d", l.Number)),
			highlightLine(l.Text),
			stateFlags(l),
		))
	}

	return lines
}

func stateFlags(l m.ClassifiedLine) string {
	var flags []string

	if l.Tag == m.TagBalance {
		flags = append(flags, "BAL")
	}

	if l.Spindle != m.SpindleNone {
		flags = append(flags, string(l.Spindle))
	}

	if l.Milling {
		flags = append(flags, "MILL")
	}

	if l.CrossMachining {
		flags = append(flags, "CROSS")
	}

	if len(flags) == 0 {
		return ""
	}

	return "  " + mutedStyle.Render("["+strings.Join(flags, " ")+"]")
}
