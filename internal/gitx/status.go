package gitx

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/interpretive-systems/stagetree/internal/difftree"
)

type entry struct {
	path string
	kind difftree.ChangeKind
}

// StatusDiff is the ordered changed-file list of a working repository,
// built from one `git status` run. It implements difftree.Diff.
type StatusDiff struct {
	entries []entry
	index   *WorkIndex
}

// Status snapshots the repo's current status diff.
func Status(repoRoot string) (*StatusDiff, error) {
	cmd := exec.Command("git", "-C", repoRoot, "status", "--porcelain", "-z")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return parseStatus(repoRoot, string(out)), nil
}

// parseStatus reads porcelain v1 NUL-terminated records: "XY path", with
// an extra NUL-separated origin path after rename/copy records.
func parseStatus(repoRoot, out string) *StatusDiff {
	d := &StatusDiff{
		index: &WorkIndex{repoRoot: repoRoot, states: map[string]difftree.StagedState{}},
	}
	tokens := strings.Split(out, "\x00")
	for i := 0; i < len(tokens); i++ {
		rec := tokens[i]
		if len(rec) < 4 || rec[2] != ' ' {
			continue
		}
		x, y := rec[0], rec[1]
		path := rec[3:]
		if x == 'R' || x == 'C' || y == 'R' || y == 'C' {
			i++ // skip origin path token
		}
		d.entries = append(d.entries, entry{path: path, kind: changeKind(x, y)})
		d.index.states[path] = stagedState(x, y)
	}
	return d
}

func isConflict(x, y byte) bool {
	if x == 'U' || y == 'U' {
		return true
	}
	return (x == 'D' && y == 'D') || (x == 'A' && y == 'A')
}

func changeKind(x, y byte) difftree.ChangeKind {
	if x == '?' {
		return difftree.ChangeUntracked
	}
	if isConflict(x, y) {
		return difftree.ChangeConflicted
	}
	code := x
	if code == ' ' {
		code = y
	}
	switch code {
	case 'A':
		return difftree.ChangeAdded
	case 'D':
		return difftree.ChangeDeleted
	case 'R':
		return difftree.ChangeRenamed
	case 'C':
		return difftree.ChangeCopied
	case 'T':
		return difftree.ChangeTypeChange
	default:
		return difftree.ChangeModified
	}
}

func stagedState(x, y byte) difftree.StagedState {
	switch {
	case x == '?':
		return difftree.Unstaged
	case isConflict(x, y):
		return difftree.Conflicted
	case x != ' ' && y != ' ':
		return difftree.PartiallyStaged
	case x != ' ':
		return difftree.Staged
	case y != ' ':
		return difftree.Unstaged
	default:
		return difftree.Disabled
	}
}

// Count returns the number of diff entries.
func (d *StatusDiff) Count() int {
	return len(d.entries)
}

// Name returns the repo-relative path of entry i, or "" out of range.
func (d *StatusDiff) Name(i int) string {
	if i < 0 || i >= len(d.entries) {
		return ""
	}
	return d.entries[i].path
}

// Status returns the change kind of entry i.
func (d *StatusDiff) Status(i int) difftree.ChangeKind {
	if i < 0 || i >= len(d.entries) {
		return difftree.ChangeModified
	}
	return d.entries[i].kind
}

// Index returns the staging index behind this diff.
func (d *StatusDiff) Index() difftree.Index {
	return d.index
}

// IsValid reports whether the diff was built from a repository.
func (d *StatusDiff) IsValid() bool {
	return d != nil
}

// IsStatusDiff is always true: a StatusDiff is by construction backed by
// the working index.
func (d *StatusDiff) IsStatusDiff() bool {
	return true
}

// WorkIndex exposes per-file staged states and staging mutations. It
// implements difftree.Index. Mutations write through the in-memory states
// so queries issued before the next snapshot observe the change.
type WorkIndex struct {
	repoRoot string
	states   map[string]difftree.StagedState
}

// IsStaged returns the staged state recorded for path. Paths the diff
// never saw report Disabled.
func (x *WorkIndex) IsStaged(path string) difftree.StagedState {
	if s, ok := x.states[path]; ok {
		return s
	}
	return difftree.Disabled
}

// SetStaged stages or unstages the given paths.
func (x *WorkIndex) SetStaged(paths []string, staged bool) error {
	if len(paths) == 0 {
		return nil
	}
	var args []string
	if staged {
		// -A so deletions are staged too, still scoped to the pathspecs
		args = append([]string{"-C", x.repoRoot, "add", "-A", "--"}, paths...)
	} else {
		args = append([]string{"-C", x.repoRoot, "restore", "--staged", "--"}, paths...)
	}
	cmd := exec.Command("git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %w: %s", args[2], err, string(out))
	}
	for _, p := range paths {
		if staged {
			x.states[p] = difftree.Staged
		} else {
			x.states[p] = difftree.Unstaged
		}
	}
	return nil
}
