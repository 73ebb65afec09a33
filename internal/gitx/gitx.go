// Package gitx implements the git-backed collaborators the diff tree
// consumes, by shelling out to the git binary.
package gitx

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/interpretive-systems/stagetree/internal/difftree"
	"gopkg.in/ini.v1"
)

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty git root")
	}
	return root, nil
}

// Repo is a handle to one working repository. It implements
// difftree.Repository.
type Repo struct {
	root string
}

// Open resolves path to its repository root.
func Open(path string) (*Repo, error) {
	root, err := RepoRoot(path)
	if err != nil {
		return nil, err
	}
	return &Repo{root: root}, nil
}

// WorkdirPath returns the absolute working-directory root.
func (r *Repo) WorkdirPath() string {
	return r.root
}

// LookupSubmodule resolves a workdir-relative path against the repo's
// registered submodules. A missing or unparsable .gitmodules means no
// submodule, never an error.
func (r *Repo) LookupSubmodule(relPath string) (difftree.Submodule, bool) {
	if relPath == "" {
		return difftree.Submodule{}, false
	}
	cfg, err := ini.Load(filepath.Join(r.root, ".gitmodules"))
	if err != nil {
		return difftree.Submodule{}, false
	}
	for _, sec := range cfg.Sections() {
		name, ok := strings.CutPrefix(sec.Name(), "submodule ")
		if !ok {
			continue
		}
		if sec.Key("path").String() != relPath {
			continue
		}
		return difftree.Submodule{
			Name: strings.Trim(name, `"`),
			Path: relPath,
			URL:  sec.Key("url").String(),
		}, true
	}
	return difftree.Submodule{}, false
}

// Walker returns a history walker over the repo, newest or oldest first.
func (r *Repo) Walker(order difftree.SortOrder) difftree.Walker {
	return &LogWalker{repoRoot: r.root, oldestFirst: order == difftree.OldestFirst}
}

// LogWalker walks commit history via git log. The path filter given to
// the first Next call is captured for the walker's lifetime; callers
// create a fresh walker per query.
type LogWalker struct {
	repoRoot    string
	oldestFirst bool
	loaded      bool
	lines       []string
}

// Next returns the next commit touching pathFilter, or false when history
// is exhausted or unreadable.
func (w *LogWalker) Next(pathFilter string) (difftree.Commit, bool) {
	if !w.loaded {
		w.loaded = true
		args := []string{"-C", w.repoRoot, "log", "--format=%H %h"}
		if w.oldestFirst {
			args = append(args, "--reverse")
		}
		if pathFilter != "" {
			args = append(args, "--", pathFilter)
		}
		out, err := exec.Command("git", args...).Output()
		if err == nil {
			for _, l := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
				if l = strings.TrimSpace(l); l != "" {
					w.lines = append(w.lines, l)
				}
			}
		}
	}
	if len(w.lines) == 0 {
		return difftree.Commit{}, false
	}
	line := w.lines[0]
	w.lines = w.lines[1:]
	id, short, _ := strings.Cut(line, " ")
	return difftree.Commit{ID: id, ShortID: short}, true
}

// DiffHEAD returns a unified diff between HEAD and the working tree for a single file.
func DiffHEAD(repoRoot, path string) (string, error) {
	var args []string
	if isTracked(repoRoot, path) {
		args = []string{"-C", repoRoot, "diff", "--no-color", "--text", "HEAD", "--", path}
	} else {
		// For untracked files, show diff vs /dev/null
		args = []string{"-C", repoRoot, "diff", "--no-color", "--no-index", "--text", "/dev/null", path}
	}
	cmd := exec.Command("git", args...)
	b, err := cmd.CombinedOutput()
	if err != nil && len(b) == 0 {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return string(b), nil
}

func isTracked(repoRoot, path string) bool {
	cmd := exec.Command("git", "-C", repoRoot, "ls-files", "--error-unmatch", "--", path)
	return cmd.Run() == nil
}

// Commit performs a git commit with the given message.
func Commit(repoRoot, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("empty commit message")
	}
	cmd := exec.Command("git", "-C", repoRoot, "commit", "-m", message)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit: %w: %s", err, string(out))
	}
	return nil
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	b, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// LastCommitSummary returns short hash and subject of last commit.
func LastCommitSummary(repoRoot string) (string, error) {
	cmd := exec.Command("git", "-C", repoRoot, "log", "-1", "--pretty=format:%h %s")
	b, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
