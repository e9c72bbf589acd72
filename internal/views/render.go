package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	leftPaneWidth  = 58
	rightPaneWidth = 46
)

type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Padding(0, 1)
	leftPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(leftPaneWidth)
	rightPaneStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(rightPaneWidth)
	noticeStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Faint(true)
)

func RenderApp(data AppData) string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftPaneStyle.Render(data.LeftPane),
		rightPaneStyle.Render(data.RightPane),
	)

	status := ""
	if data.StatusLine != "" {
		if data.StatusIsError {
			status = statusErrStyle.Render("status: error: " + data.StatusLine)
		} else {
			status = statusStyle.Render("status: " + data.StatusLine)
		}
	}

	sections := []string{headerStyle.Render(data.Header), panes, status}
	if data.Notification != "" {
		sections = append(sections, noticeStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		sections = append(sections, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(leftPaneWidth-6),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
