// Package difftree builds a folder/file tree from the paths of a status
// diff and answers per-node display queries over it: tri-state check
// (staging) state, aggregated status characters, file kind, and the
// first/last commit touching a node. The tree is rebuilt from scratch
// whenever the diff is replaced; derived values are never cached and are
// recomputed from the live collaborators on every query.
package difftree

// CheckState is the aggregated staging state displayed for a node.
type CheckState int

const (
	// NotApplicable means the node has no check box: the diff is absent,
	// not a status diff, or no entry falls under the node.
	NotApplicable CheckState = iota
	Unchecked
	PartiallyChecked
	Checked
)

func (c CheckState) String() string {
	switch c {
	case Unchecked:
		return "unchecked"
	case PartiallyChecked:
		return "partial"
	case Checked:
		return "checked"
	default:
		return "n/a"
	}
}

// StagedState is the per-file state reported by the staging index.
type StagedState int

const (
	Disabled StagedState = iota
	Unstaged
	PartiallyStaged
	Staged
	Conflicted
)

// ChangeKind classifies one diff entry.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeModified
	ChangeDeleted
	ChangeRenamed
	ChangeCopied
	ChangeTypeChange
	ChangeUntracked
	ChangeConflicted
)

// StatusChar maps a change kind to its single canonical status character.
func (k ChangeKind) StatusChar() byte {
	switch k {
	case ChangeAdded:
		return 'A'
	case ChangeModified:
		return 'M'
	case ChangeDeleted:
		return 'D'
	case ChangeRenamed:
		return 'R'
	case ChangeCopied:
		return 'C'
	case ChangeTypeChange:
		return 'T'
	case ChangeUntracked:
		return 'U'
	case ChangeConflicted:
		return 'X'
	default:
		return '?'
	}
}

// SortOrder selects the direction of a history walk.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// Diff is the ordered changed-file list the tree is built from.
type Diff interface {
	Count() int
	Name(i int) string
	Status(i int) ChangeKind
	Index() Index
	IsValid() bool
	// IsStatusDiff reports whether the diff is backed by a working
	// staged/unstaged index; check states are meaningless otherwise.
	IsStatusDiff() bool
}

// Index is the staging index behind a status diff.
type Index interface {
	IsStaged(path string) StagedState
	SetStaged(paths []string, staged bool) error
}

// Commit identifies one commit surfaced for a node.
type Commit struct {
	ID      string
	ShortID string
}

// Submodule describes a registered submodule.
type Submodule struct {
	Name string
	Path string
	URL  string
}

// Walker advances through history filtered to a path. Implementations
// return the zero Commit and false when no commit touches the path.
type Walker interface {
	Next(pathFilter string) (Commit, bool)
}

// Repository is the repo the diff belongs to.
type Repository interface {
	WorkdirPath() string
	LookupSubmodule(relPath string) (Submodule, bool)
	Walker(order SortOrder) Walker
}

// Classifier labels a file by its name. It replaces the ambient settings
// singleton of older designs: callers construct one and hand it to the
// model explicitly.
type Classifier interface {
	Kind(filename string) string
}

// hasPathPrefix reports whether path is prefix itself or lies beneath it.
// Matching happens at '/' boundaries only, so "docs" never matches
// "docs2/readme". The empty prefix matches everything.
func hasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if len(path) < len(prefix) || path[:len(prefix)] != prefix {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
