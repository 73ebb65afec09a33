package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/stagetree/internal/conf"
	"github.com/interpretive-systems/stagetree/internal/diffview"
	"github.com/interpretive-systems/stagetree/internal/difftree"
	"github.com/interpretive-systems/stagetree/internal/gitx"
	"github.com/interpretive-systems/stagetree/internal/prefs"
	"github.com/interpretive-systems/stagetree/internal/tui/components"
)

type model struct {
	repoRoot string
	theme    Theme
	tree     *difftree.Model
	list     *components.TreeList
	bar      *components.StatusBar
	changes  <-chan struct{}

	width     int
	height    int
	leftWidth int
	showHelp  bool
	showKind  bool

	rightVP  viewport.Model
	diffFor  string // relative path the viewport rows belong to
	diffRows []diffview.Row

	commitOpen  bool
	committing  bool
	commitInput textinput.Model
}

// Run opens the staging tree TUI on the given repository root.
func Run(repoRoot string) error {
	repo, err := gitx.Open(repoRoot)
	if err != nil {
		return fmt.Errorf("open repo: %w", err)
	}

	p := prefs.Load(repoRoot)
	tree := difftree.NewModel(repo, conf.Default())
	list := components.NewTreeList(tree)
	bar := components.NewStatusBar()
	tree.Watch(difftree.Watcher{
		Reset: func() { list.Reload() },
		CheckStateChanged: func(h difftree.Handle, s difftree.CheckState) {
			verb := "unstaged"
			if s == difftree.Checked {
				verb = "staged"
			}
			if rel, ok := tree.Data(h, difftree.RoleEdit).(string); ok && rel != "" {
				bar.SetMessage(verb + " " + rel)
			} else {
				bar.SetMessage(verb + " everything")
			}
		},
	})

	m := model{
		repoRoot:  repoRoot,
		theme:     themeByName(p.Theme),
		tree:      tree,
		list:      list,
		bar:       bar,
		showKind:  p.ShowKind,
		leftWidth: p.LeftWidth,
	}
	if w, err := newRepoWatcher(repoRoot); err == nil {
		m.changes = w.Changes()
		defer w.Close()
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadStatus(m.repoRoot),
		loadBranch(m.repoRoot),
		loadLastCommit(m.repoRoot),
		tickOnce(),
		awaitChange(m.changes),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.leftWidth == 0 {
			m.leftWidth = m.width / 3
			if m.leftWidth < 24 {
				m.leftWidth = 24
			}
		}
		m.recalcViewport()
		return m, nil

	case tickMsg:
		return m, tea.Batch(loadStatus(m.repoRoot), tickOnce())

	case fsEventMsg:
		return m, tea.Batch(loadStatus(m.repoRoot), awaitChange(m.changes))

	case statusMsg:
		if msg.err != nil {
			m.bar.SetMessage(fmt.Sprintf("status error: %v", msg.err))
			return m, nil
		}
		m.tree.SetDiff(msg.diff) // fires Reset, which reloads the list
		m.bar.SetLastRefresh(time.Now())
		m.diffFor = ""
		return m, m.refreshRight()

	case fileDiffMsg:
		if msg.err != nil {
			m.bar.SetMessage(fmt.Sprintf("diff error: %v", msg.err))
			return m, nil
		}
		if r := m.list.SelectedRow(); r != nil && r.RelPath == msg.path {
			m.diffFor = msg.path
			m.diffRows = msg.rows
			m.recalcViewport()
		}
		return m, nil

	case branchMsg:
		if msg.err == nil {
			m.bar.SetBranch(msg.name)
		}
		return m, nil

	case lastCommitMsg:
		if msg.err == nil {
			m.bar.SetLastCommit(msg.summary)
		}
		return m, nil

	case commitResultMsg:
		m.committing = false
		if msg.err != nil {
			m.bar.SetMessage(fmt.Sprintf("commit error: %v", msg.err))
			return m, nil
		}
		m.commitOpen = false
		m.bar.SetMessage("committed")
		return m, tea.Batch(loadStatus(m.repoRoot), loadLastCommit(m.repoRoot))
	}
	return m, nil
}

func (m model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commitOpen {
		return m.handleCommitKey(key)
	}
	if m.showHelp {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "j", "down":
		if m.list.MoveSelection(1) {
			return m, m.refreshRight()
		}
	case "k", "up":
		if m.list.MoveSelection(-1) {
			return m, m.refreshRight()
		}
	case "g":
		if m.list.GoToTop() {
			return m, m.refreshRight()
		}
	case "G":
		if m.list.GoToBottom() {
			return m, m.refreshRight()
		}
	case "enter", "o", "h", "l":
		if m.list.ToggleCollapse() {
			return m, m.refreshRight()
		}
	case " ":
		if r := m.list.SelectedRow(); r != nil {
			checked := m.tree.CheckState(r.Handle) == difftree.Checked
			if m.tree.SetChecked(r.Handle, !checked) {
				// re-snapshot so change kinds stay truthful
				return m, loadStatus(m.repoRoot)
			}
			m.bar.SetMessage("staging failed")
		}
	case "t":
		m.showKind = !m.showKind
		_ = prefs.SaveShowKind(m.repoRoot, m.showKind)
	case "y":
		if r := m.list.SelectedRow(); r != nil {
			if err := clipboard.WriteAll(r.RelPath); err != nil {
				m.bar.SetMessage(fmt.Sprintf("clipboard error: %v", err))
			} else {
				m.bar.SetMessage("copied " + r.RelPath)
			}
		}
	case "c":
		ti := textinput.New()
		ti.Placeholder = "Commit message"
		ti.Prompt = "> "
		ti.Focus()
		m.commitInput = ti
		m.commitOpen = true
		m.recalcViewport()
	case "r":
		return m, tea.Batch(loadStatus(m.repoRoot), loadLastCommit(m.repoRoot))
	case "<", "H":
		m.leftWidth -= 2
		if m.leftWidth < 20 {
			m.leftWidth = 20
		}
		_ = prefs.SaveLeftWidth(m.repoRoot, m.leftWidth)
		m.recalcViewport()
	case ">", "L":
		m.leftWidth += 2
		if max := m.width - 20; m.leftWidth > max && max >= 20 {
			m.leftWidth = max
		}
		_ = prefs.SaveLeftWidth(m.repoRoot, m.leftWidth)
		m.recalcViewport()
	case "pgdown":
		m.rightVP.ViewDown()
	case "pgup":
		m.rightVP.ViewUp()
	case "J", "ctrl+d":
		m.rightVP.HalfViewDown()
	case "K", "ctrl+u":
		m.rightVP.HalfViewUp()
	}
	return m, nil
}

func (m model) handleCommitKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		if !m.committing {
			m.commitOpen = false
			m.recalcViewport()
		}
		return m, nil
	case "enter":
		if m.committing {
			return m, nil
		}
		msg := strings.TrimSpace(m.commitInput.Value())
		if msg == "" {
			m.bar.SetMessage("empty commit message")
			return m, nil
		}
		m.committing = true
		return m, runCommit(m.repoRoot, msg)
	}
	var cmd tea.Cmd
	m.commitInput, cmd = m.commitInput.Update(key)
	return m, cmd
}

// refreshRight rebuilds the right pane for the current selection: a diff
// preview for leaves, node details for folders.
func (m *model) refreshRight() tea.Cmd {
	r := m.list.SelectedRow()
	if r == nil {
		m.diffFor = ""
		m.diffRows = nil
		m.recalcViewport()
		return nil
	}
	if r.IsLeaf {
		if m.diffFor == r.RelPath {
			m.recalcViewport()
			return nil
		}
		m.diffRows = nil
		m.rightVP.GotoTop()
		m.recalcViewport()
		return loadFileDiff(m.repoRoot, r.RelPath)
	}
	m.diffFor = ""
	m.diffRows = nil
	m.rightVP.GotoTop()
	m.recalcViewport()
	return nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftW := m.leftWidth
	if leftW < 20 {
		leftW = 20
	}
	rightW := m.width - leftW - 1
	if rightW < 1 {
		rightW = 1
	}
	sep := m.theme.DividerText("│")

	top := "Staging | " + m.topTitle()
	hr := m.theme.DividerText(strings.Repeat("─", m.width))

	var overlay []string
	if m.showHelp {
		overlay = m.helpOverlayLines(m.width)
	}
	if m.commitOpen {
		overlay = append(overlay, m.commitOverlayLines(m.width)...)
	}

	contentHeight := m.height - 4 - len(overlay)
	if contentHeight < 1 {
		contentHeight = 1
	}

	leftLines := m.list.Render(contentHeight, m.renderRow)
	m.rightVP.Width = rightW
	m.rightVP.Height = contentHeight
	rightLines := strings.Split(m.rightVP.View(), "\n")

	var b strings.Builder
	b.WriteString(top)
	b.WriteByte('\n')
	b.WriteString(hr)
	b.WriteByte('\n')
	for i := 0; i < contentHeight; i++ {
		var l, r string
		if i < len(leftLines) {
			l = padToWidth(leftLines[i], leftW)
		} else {
			l = strings.Repeat(" ", leftW)
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(l)
		b.WriteString(sep)
		b.WriteString(padToWidth(r, rightW))
		b.WriteByte('\n')
	}
	for _, line := range overlay {
		b.WriteString(padToWidth(line, m.width))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("─", m.width))
	b.WriteByte('\n')
	b.WriteString(m.bar.Render(m.width))
	return b.String()
}

func (m model) topTitle() string {
	r := m.list.SelectedRow()
	if r == nil {
		return ""
	}
	status := m.tree.StatusSummary(r.Handle)
	if status == "" {
		return r.RelPath
	}
	return fmt.Sprintf("%s (%s)", r.RelPath, status)
}

// renderRow formats one tree line: selection marker, indentation, fold
// arrow, tri-state box, name, status chars, optional kind.
func (m model) renderRow(row components.TreeRow, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	indent := strings.Repeat("  ", row.Depth)

	arrow := "  "
	if !row.IsLeaf {
		if m.list.IsCollapsed(row.RelPath) {
			arrow = "▸ "
		} else {
			arrow = "▾ "
		}
	}

	var box string
	state := m.tree.CheckState(row.Handle)
	switch state {
	case difftree.Checked:
		box = "[x] "
	case difftree.PartiallyChecked:
		box = "[~] "
	case difftree.Unchecked:
		box = "[ ] "
	default:
		box = "    "
	}

	name := row.Name
	if !row.IsLeaf {
		name += "/"
	}
	status := m.tree.StatusSummary(row.Handle)
	switch {
	case strings.ContainsRune(status, 'X'):
		name = m.theme.DelText(name)
	case state == difftree.Checked:
		name = m.theme.AddText(name)
	case state == difftree.PartiallyChecked:
		name = m.theme.MetaText(name)
	}

	line := marker + indent + arrow + box + name
	if status != "" {
		line += "  " + faint(status)
	}
	if m.showKind {
		if kind := m.tree.Kind(row.Handle); kind != "" {
			line += "  " + faint("("+kind+")")
		}
	}
	return line
}

// recalcViewport rebuilds the right pane content for the current
// selection and dimensions.
func (m *model) recalcViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	leftW := m.leftWidth
	if leftW < 20 {
		leftW = 20
	}
	rightW := m.width - leftW - 1
	if rightW < 1 {
		rightW = 1
	}
	overlayH := 0
	if m.showHelp {
		overlayH += len(m.helpOverlayLines(m.width))
	}
	if m.commitOpen {
		overlayH += len(m.commitOverlayLines(m.width))
	}
	contentHeight := m.height - 4 - overlayH
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.rightVP.Width = rightW
	m.rightVP.Height = contentHeight
	m.rightVP.SetContent(strings.Join(m.rightBodyLines(rightW), "\n"))
}

func (m model) rightBodyLines(width int) []string {
	r := m.list.SelectedRow()
	if r == nil {
		return []string{""}
	}
	if !r.IsLeaf {
		return m.nodeDetailLines(r)
	}
	if m.diffFor != r.RelPath {
		return []string{"Loading diff…"}
	}
	if len(m.diffRows) == 0 {
		return []string{faint("(no text diff)")}
	}
	lines := make([]string, 0, len(m.diffRows))
	for _, row := range m.diffRows {
		switch row.Kind {
		case diffview.RowHunk:
			lines = append(lines, faint(strings.Repeat("·", width)))
		case diffview.RowContext:
			lines = append(lines, "  "+row.Left)
		case diffview.RowAdd:
			lines = append(lines, m.theme.AddText("+ "+row.Right))
		case diffview.RowDel:
			lines = append(lines, m.theme.DelText("- "+row.Left))
		case diffview.RowReplace:
			lines = append(lines, m.theme.DelText("- "+row.Left))
			lines = append(lines, m.theme.AddText("+ "+row.Right))
		}
	}
	return lines
}

// nodeDetailLines summarizes a folder node from the model's roles.
func (m model) nodeDetailLines(r *components.TreeRow) []string {
	h := r.Handle
	lines := []string{
		bold(r.Name + "/"),
		"",
		"path:    " + asString(m.tree.Data(h, difftree.RoleTooltip)),
		"status:  " + m.tree.StatusSummary(h),
		"checked: " + m.tree.CheckState(h).String(),
	}
	if kind := m.tree.Kind(h); kind != "" {
		lines = append(lines, "kind:    "+kind)
	}
	if c, ok := m.tree.FirstCommit(h); ok {
		lines = append(lines, "added:   "+c.ShortID)
	}
	if c, ok := m.tree.LastCommit(h); ok {
		lines = append(lines, "touched: "+c.ShortID)
	}
	return lines
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func (m model) helpOverlayLines(width int) []string {
	title := bold("Help — press '?' or Esc to close")
	keys := []string{
		"j/k or arrows   Move selection",
		"enter/o/h/l     Expand / collapse folder",
		"space           Stage / unstage subtree",
		"J/K, PgDn/PgUp  Scroll right pane",
		"</> or H/L      Adjust left pane width",
		"t               Toggle kind column",
		"y               Copy path",
		"c               Commit staged changes",
		"r               Refresh now",
		"g / G           Top / Bottom",
		"q               Quit",
	}
	lines := make([]string, 0, 2+len(keys))
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, title)
	lines = append(lines, keys...)
	return lines
}

func (m model) commitOverlayLines(width int) []string {
	lines := make([]string, 0, 4)
	lines = append(lines, strings.Repeat("─", width))
	title := "Commit staged changes (enter: commit, esc: cancel)"
	if m.committing {
		title = "Committing…"
	}
	lines = append(lines, bold(title))
	lines = append(lines, m.commitInput.View())
	return lines
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
