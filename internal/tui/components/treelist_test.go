package components

import (
	"testing"

	"github.com/interpretive-systems/stagetree/internal/difftree"
)

type listDiff struct {
	paths []string
}

func (d *listDiff) Count() int { return len(d.paths) }
func (d *listDiff) Name(i int) string { return d.paths[i] }
func (d *listDiff) Status(int) difftree.ChangeKind { return difftree.ChangeModified }
func (d *listDiff) Index() difftree.Index { return noIndex{} }
func (d *listDiff) IsValid() bool { return true }
func (d *listDiff) IsStatusDiff() bool { return true }

type noIndex struct{}

func (noIndex) IsStaged(string) difftree.StagedState { return difftree.Unstaged }
func (noIndex) SetStaged([]string, bool) error { return nil }

func relPaths(rows []TreeRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.RelPath)
	}
	return out
}

func newListModel(paths ...string) *difftree.Model {
	m := difftree.NewModel(nil, nil)
	m.SetDiff(&listDiff{paths: paths})
	return m
}

func TestTreeList_FlattenDepthFirst(t *testing.T) {
	l := NewTreeList(newListModel("src/a.c", "src/sub/b.c", "readme.md"))
	l.Reload()

	want := []string{"src", "src/a.c", "src/sub", "src/sub/b.c", "readme.md"}
	got := relPaths(l.Rows())
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
	if r := l.Rows()[0]; r.IsLeaf || r.Depth != 0 {
		t.Fatalf("src row = %+v, want depth-0 folder", r)
	}
	if r := l.Rows()[3]; r.Depth != 2 || !r.IsLeaf || r.Name != "b.c" {
		t.Fatalf("deep leaf row = %+v", r)
	}
}

func TestTreeList_CollapseHidesSubtree(t *testing.T) {
	l := NewTreeList(newListModel("src/a.c", "src/sub/b.c", "readme.md"))
	l.Reload()

	// Select "src" and collapse it.
	l.GoToTop()
	if !l.ToggleCollapse() {
		t.Fatal("collapse on folder failed")
	}
	got := relPaths(l.Rows())
	if len(got) != 2 || got[0] != "src" || got[1] != "readme.md" {
		t.Fatalf("collapsed rows = %v", got)
	}

	if !l.ToggleCollapse() {
		t.Fatal("expand failed")
	}
	if len(l.Rows()) != 5 {
		t.Fatalf("expanded rows = %v", relPaths(l.Rows()))
	}

	// Collapsing a leaf is a no-op.
	l.GoToBottom()
	if l.ToggleCollapse() {
		t.Fatal("collapse on leaf should report false")
	}
}

func TestTreeList_ReloadKeepsSelectionByPath(t *testing.T) {
	m := newListModel("a.txt", "b.txt", "c.txt")
	l := NewTreeList(m)
	l.Reload()
	l.MoveSelection(2)
	if l.SelectedRow().RelPath != "c.txt" {
		t.Fatalf("selected %q", l.SelectedRow().RelPath)
	}

	// Rebuild with c.txt in a different position.
	m.SetDiff(&listDiff{paths: []string{"c.txt", "a.txt"}})
	l.Reload()
	if l.SelectedRow().RelPath != "c.txt" {
		t.Fatalf("selection lost, now %q", l.SelectedRow().RelPath)
	}

	// Rebuild without it falls back to the top.
	m.SetDiff(&listDiff{paths: []string{"a.txt"}})
	l.Reload()
	if l.SelectedRow().RelPath != "a.txt" {
		t.Fatalf("fallback selection %q", l.SelectedRow().RelPath)
	}
}

func TestTreeList_RenderWindow(t *testing.T) {
	l := NewTreeList(newListModel("a.txt", "b.txt", "c.txt", "d.txt"))
	l.Reload()
	l.GoToBottom()

	lines := l.Render(2, func(r TreeRow, sel bool) string {
		if sel {
			return "> " + r.Name
		}
		return "  " + r.Name
	})
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[1] != "> d.txt" {
		t.Fatalf("selection not visible: %v", lines)
	}
}
