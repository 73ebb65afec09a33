package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/interpretive-systems/stagetree/internal/diffview"
	"github.com/interpretive-systems/stagetree/internal/gitx"
)

// loadStatus snapshots the repo's status diff.
func loadStatus(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		d, err := gitx.Status(repoRoot)
		return statusMsg{diff: d, err: err}
	}
}

// loadFileDiff loads the preview rows for one file.
func loadFileDiff(repoRoot, path string) tea.Cmd {
	return func() tea.Msg {
		d, err := gitx.DiffHEAD(repoRoot, path)
		if err != nil {
			return fileDiffMsg{path: path, err: err}
		}
		return fileDiffMsg{path: path, rows: diffview.Rows(d)}
	}
}

// loadBranch loads the current branch name.
func loadBranch(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		name, err := gitx.CurrentBranch(repoRoot)
		return branchMsg{name: name, err: err}
	}
}

// loadLastCommit loads the last commit summary.
func loadLastCommit(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		s, err := gitx.LastCommitSummary(repoRoot)
		return lastCommitMsg{summary: s, err: err}
	}
}

// runCommit commits whatever is staged.
func runCommit(repoRoot, message string) tea.Cmd {
	return func() tea.Msg {
		return commitResultMsg{err: gitx.Commit(repoRoot, message)}
	}
}

// tickOnce schedules the fallback refresh.
func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// awaitChange resolves when the watcher reports working-tree activity.
// A nil channel (no watcher) never resolves.
func awaitChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fsEventMsg{}
	}
}
