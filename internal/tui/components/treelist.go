package components

import (
	"github.com/interpretive-systems/stagetree/internal/difftree"
)

// TreeRow is one visible line of the flattened tree.
type TreeRow struct {
	Handle  difftree.Handle
	Depth   int
	RelPath string
	Name    string
	IsLeaf  bool
}

// TreeList manages the left pane: the flattened visible rows of a diff
// tree plus selection, scroll offset, and collapse state. Collapse state
// is keyed by relative path so it survives tree rebuilds.
type TreeList struct {
	model     *difftree.Model
	rows      []TreeRow
	selected  int
	offset    int
	collapsed map[string]bool
}

// NewTreeList creates a list over the given model.
func NewTreeList(m *difftree.Model) *TreeList {
	return &TreeList{model: m, collapsed: map[string]bool{}}
}

// Reload re-flattens the tree from the model, keeping the selection on
// the same relative path when it still exists.
func (t *TreeList) Reload() {
	var keep string
	if r := t.SelectedRow(); r != nil {
		keep = r.RelPath
	}

	t.rows = t.rows[:0]
	var walk func(parent difftree.Handle, depth int)
	walk = func(parent difftree.Handle, depth int) {
		for row := 0; row < t.model.RowCount(parent); row++ {
			h := t.model.Child(parent, row)
			rel, _ := t.model.Data(h, difftree.RoleEdit).(string)
			name, _ := t.model.Data(h, difftree.RoleDisplay).(string)
			leaf := !t.model.HasChildren(h)
			t.rows = append(t.rows, TreeRow{
				Handle:  h,
				Depth:   depth,
				RelPath: rel,
				Name:    name,
				IsLeaf:  leaf,
			})
			if !leaf && !t.collapsed[rel] {
				walk(h, depth+1)
			}
		}
	}
	walk(difftree.InvalidHandle, 0)

	t.selected = 0
	if keep != "" {
		for i, r := range t.rows {
			if r.RelPath == keep {
				t.selected = i
				break
			}
		}
	}
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

// Rows returns the current visible rows.
func (t *TreeList) Rows() []TreeRow {
	return t.rows
}

// Selected returns the selected row index.
func (t *TreeList) Selected() int {
	return t.selected
}

// SelectedRow returns the selected row, or nil when the list is empty.
func (t *TreeList) SelectedRow() *TreeRow {
	if len(t.rows) == 0 || t.selected < 0 || t.selected >= len(t.rows) {
		return nil
	}
	return &t.rows[t.selected]
}

// IsCollapsed reports whether the folder at relPath is collapsed.
func (t *TreeList) IsCollapsed(relPath string) bool {
	return t.collapsed[relPath]
}

// ToggleCollapse flips the selected folder's collapse state. Returns
// false when the selection is not a folder.
func (t *TreeList) ToggleCollapse() bool {
	r := t.SelectedRow()
	if r == nil || r.IsLeaf {
		return false
	}
	t.collapsed[r.RelPath] = !t.collapsed[r.RelPath]
	t.Reload()
	return true
}

// MoveSelection moves the selection by delta, clamped to the list.
func (t *TreeList) MoveSelection(delta int) bool {
	if len(t.rows) == 0 {
		return false
	}
	newSel := t.selected + delta
	if newSel < 0 {
		newSel = 0
	}
	if newSel >= len(t.rows) {
		newSel = len(t.rows) - 1
	}
	changed := newSel != t.selected
	t.selected = newSel
	return changed
}

// GoToTop moves selection to the first row.
func (t *TreeList) GoToTop() bool {
	if len(t.rows) == 0 || t.selected == 0 {
		return false
	}
	t.selected = 0
	return true
}

// GoToBottom moves selection to the last row.
func (t *TreeList) GoToBottom() bool {
	if len(t.rows) == 0 {
		return false
	}
	last := len(t.rows) - 1
	if t.selected == last {
		return false
	}
	t.selected = last
	return true
}

// EnsureVisible keeps the selected row inside the viewport window.
func (t *TreeList) EnsureVisible(visibleCount int) {
	if len(t.rows) == 0 || visibleCount <= 0 {
		return
	}
	if t.offset < 0 {
		t.offset = 0
	}
	maxStart := len(t.rows) - visibleCount
	if maxStart < 0 {
		maxStart = 0
	}
	if t.offset > maxStart {
		t.offset = maxStart
	}
	if t.selected < t.offset {
		t.offset = t.selected
	} else if t.selected >= t.offset+visibleCount {
		t.offset = t.selected - visibleCount + 1
		if t.offset < 0 {
			t.offset = 0
		}
	}
	if t.offset > maxStart {
		t.offset = maxStart
	}
}

// Render renders up to height rows through the caller's row formatter.
func (t *TreeList) Render(height int, format func(row TreeRow, selected bool) string) []string {
	lines := make([]string, 0, height)
	if len(t.rows) == 0 {
		lines = append(lines, "No changes detected")
		return lines
	}
	t.EnsureVisible(height)
	end := t.offset + height
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		lines = append(lines, format(t.rows[i], i == t.selected))
	}
	return lines
}
