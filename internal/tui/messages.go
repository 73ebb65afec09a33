package tui

import (
	"github.com/interpretive-systems/stagetree/internal/diffview"
	"github.com/interpretive-systems/stagetree/internal/gitx"
)

// tickMsg triggers the periodic fallback refresh.
type tickMsg struct{}

// fsEventMsg reports that the watcher saw working-tree activity.
type fsEventMsg struct{}

// statusMsg carries a fresh status diff snapshot.
type statusMsg struct {
	diff *gitx.StatusDiff
	err  error
}

// fileDiffMsg carries the preview rows for one file.
type fileDiffMsg struct {
	path string
	rows []diffview.Row
	err  error
}

// branchMsg carries the current branch name.
type branchMsg struct {
	name string
	err  error
}

// lastCommitMsg carries the last commit summary.
type lastCommitMsg struct {
	summary string
	err     error
}

// commitResultMsg reports the outcome of a commit.
type commitResultMsg struct {
	err error
}
