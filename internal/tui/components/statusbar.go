package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	lastRefresh time.Time
	lastCommit  string
	branch      string
	message     string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// SetLastCommit updates the last commit summary.
func (s *StatusBar) SetLastCommit(msg string) {
	s.lastCommit = msg
}

// SetBranch updates the branch name.
func (s *StatusBar) SetBranch(name string) {
	s.branch = name
}

// SetMessage sets a transient message shown instead of the key hint.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	leftText := "?: help"
	if s.message != "" {
		leftText = s.message
	}
	if s.branch != "" {
		leftText += "  |  " + s.branch
	}
	if s.lastCommit != "" {
		leftText += "  |  last: " + s.lastCommit
	}

	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	right := lipgloss.NewStyle().Faint(true).
		Render("refreshed: " + s.lastRefresh.Format("15:04:05"))

	// Ensure right part is always visible
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}

	return leftRendered + " " + right
}
