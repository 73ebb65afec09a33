package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/stagetree/internal/conf"
	"github.com/interpretive-systems/stagetree/internal/difftree"
	"github.com/interpretive-systems/stagetree/internal/tui/components"
)

type testDiff struct {
	paths []string
	index *testIndex
}

func (d *testDiff) Count() int { return len(d.paths) }
func (d *testDiff) Name(i int) string { return d.paths[i] }
func (d *testDiff) Status(int) difftree.ChangeKind { return difftree.ChangeModified }
func (d *testDiff) Index() difftree.Index { return d.index }
func (d *testDiff) IsValid() bool { return true }
func (d *testDiff) IsStatusDiff() bool { return true }

type testIndex struct {
	states map[string]difftree.StagedState
}

func (x *testIndex) IsStaged(p string) difftree.StagedState { return x.states[p] }

func (x *testIndex) SetStaged(paths []string, staged bool) error {
	for _, p := range paths {
		if staged {
			x.states[p] = difftree.Staged
		} else {
			x.states[p] = difftree.Unstaged
		}
	}
	return nil
}

func baseModelForTest() model {
	tree := difftree.NewModel(nil, conf.Default())
	tree.SetDiff(&testDiff{
		paths: []string{"src/a.c", "src/b.c"},
		index: &testIndex{states: map[string]difftree.StagedState{
			"src/a.c": difftree.Staged,
			"src/b.c": difftree.Unstaged,
		}},
	})
	list := components.NewTreeList(tree)
	list.Reload()

	bar := components.NewStatusBar()
	refreshed, _ := time.Parse(time.TimeOnly, "12:34:56")
	bar.SetLastRefresh(refreshed)

	m := model{
		repoRoot:  ".",
		theme:     darkTheme(),
		tree:      tree,
		list:      list,
		bar:       bar,
		width:     80,
		height:    16,
		leftWidth: 30,
	}
	m.recalcViewport()
	return m
}

func keyMsg(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_TreeRender(t *testing.T) {
	m := baseModelForTest()
	plain := ansi.Strip(m.View())

	if !strings.HasPrefix(plain, "Staging | src (M)") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	if !strings.Contains(plain, "│") {
		t.Fatal("expected vertical divider in view")
	}
	// src holds one staged and one unstaged file.
	if !strings.Contains(plain, "[~] src/") {
		t.Fatalf("expected partially checked folder, got:\n%s", plain)
	}
	if !strings.Contains(plain, "[x] a.c") {
		t.Fatalf("expected checked leaf, got:\n%s", plain)
	}
	if !strings.Contains(plain, "[ ] b.c") {
		t.Fatalf("expected unchecked leaf, got:\n%s", plain)
	}
	if !strings.Contains(plain, "refreshed: 12:34:56") {
		t.Fatalf("expected bottom bar timestamp, got: %q", plain)
	}
}

func TestView_FolderDetailsInRightPane(t *testing.T) {
	m := baseModelForTest()
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "checked: partial") {
		t.Fatalf("expected folder detail pane, got:\n%s", plain)
	}
}

func TestUpdate_SpaceTogglesSubtree(t *testing.T) {
	m := baseModelForTest()

	// Selection starts on the src folder; space stages everything under it.
	next, _ := m.Update(keyMsg(" "))
	m = next.(model)

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "[x] src/") {
		t.Fatalf("expected checked folder after staging, got:\n%s", plain)
	}
	if !strings.Contains(plain, "[x] b.c") {
		t.Fatalf("expected staged leaf after staging, got:\n%s", plain)
	}

	// Space again unstages the whole subtree.
	next, _ = m.Update(keyMsg(" "))
	m = next.(model)
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "[ ] src/") {
		t.Fatalf("expected unchecked folder after unstaging, got:\n%s", plain)
	}
}

func TestUpdate_NavigationChangesTitle(t *testing.T) {
	m := baseModelForTest()
	next, _ := m.Update(keyMsg("j"))
	m = next.(model)

	plain := ansi.Strip(m.View())
	if !strings.HasPrefix(plain, "Staging | src/a.c (M)") {
		t.Fatalf("unexpected header after move: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	if !strings.Contains(plain, "Loading diff…") {
		t.Fatalf("expected pending diff for leaf, got:\n%s", plain)
	}
}

func TestUpdate_HelpOverlay(t *testing.T) {
	m := baseModelForTest()
	next, _ := m.Update(keyMsg("?"))
	m = next.(model)

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "Stage / unstage subtree") {
		t.Fatalf("expected help overlay, got:\n%s", plain)
	}
}
