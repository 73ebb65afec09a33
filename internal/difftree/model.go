package difftree

// Role selects which display value a Data query answers.
type Role int

const (
	RoleDisplay Role = iota // leaf name
	RoleEdit                // path relative to the tree root
	RoleTooltip             // full path including the root segment
	RoleCheck               // tri-state check value
	RoleKind                // file kind / submodule label
	RoleAdded               // first commit touching the node
	RoleModified            // most recent commit touching the node
	RoleStatus              // aggregated status characters
)

// Flags describes how a view may interact with a node.
type Flags uint8

const (
	FlagEnabled Flags = 1 << iota
	FlagSelectable
	FlagUserCheckable
)

// Handle addresses a node within one tree generation. Handles are
// invalidated wholesale when the diff is replaced; a stale handle degrades
// every query to its neutral sentinel. The zero Handle stands for the
// invisible root: a valid parent for row addressing but not a queryable
// node.
type Handle struct {
	gen  uint64
	slot int
}

// InvalidHandle is the invisible root / no-value handle.
var InvalidHandle Handle

// IsValid reports whether the handle addresses a real node.
func (h Handle) IsValid() bool {
	return h.gen != 0
}

// Watcher receives change notifications from a Model. Nil fields are
// skipped.
type Watcher struct {
	// Reset fires after the diff has been replaced and the tree rebuilt.
	// All previously obtained handles are invalid once it fires.
	Reset func()
	// RowChanged fires for a single node whose value for role must be
	// re-queried.
	RowChanged func(h Handle, role Role)
	// CheckStateChanged fires once per SetChecked call with the value the
	// mutation was asked to apply.
	CheckStateChanged func(h Handle, state CheckState)
}

// Model exposes row/column/parent addressing over the diff tree and
// answers per-node role queries. It is not safe for concurrent use: all
// reads and mutations must happen on the same goroutine, the way a UI
// event loop drives them.
type Model struct {
	repo     Repository
	settings Classifier
	diff     Diff
	root     *Node
	nodes    []*Node
	slots    map[*Node]int
	gen      uint64
	watchers []Watcher
}

// NewModel creates an empty model over the given collaborators. Either
// may be nil; the corresponding roles then answer with their sentinel.
func NewModel(repo Repository, settings Classifier) *Model {
	return &Model{repo: repo, settings: settings}
}

// Watch registers a change consumer.
func (m *Model) Watch(w Watcher) {
	m.watchers = append(m.watchers, w)
}

// SetDiff replaces the observed diff and rebuilds the tree in one pass.
// The previous tree is discarded whole; no node survives. An invalid diff
// leaves the tree as-is but still fires Reset, matching a view's need to
// re-sync after any replacement attempt.
func (m *Model) SetDiff(d Diff) {
	if d != nil && d.IsValid() {
		m.diff = d
		rootName := ""
		if m.repo != nil {
			rootName = m.repo.WorkdirPath()
		}
		m.gen++
		m.root = buildTree(rootName, d)
		m.rebuildArena()
	}
	for _, w := range m.watchers {
		if w.Reset != nil {
			w.Reset()
		}
	}
}

func (m *Model) rebuildArena() {
	m.nodes = m.nodes[:0]
	m.slots = make(map[*Node]int)
	var walk func(n *Node)
	walk = func(n *Node) {
		m.slots[n] = len(m.nodes)
		m.nodes = append(m.nodes, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(m.root)
}

// node resolves a handle. The zero handle resolves to the root so that it
// can play the invisible-root role in row addressing; handles from an
// older generation resolve to nil.
func (m *Model) node(h Handle) *Node {
	if h.gen == 0 {
		return m.root
	}
	if h.gen != m.gen || h.slot < 0 || h.slot >= len(m.nodes) {
		return nil
	}
	return m.nodes[h.slot]
}

func (m *Model) handleFor(n *Node) Handle {
	slot, ok := m.slots[n]
	if !ok {
		return InvalidHandle
	}
	return Handle{gen: m.gen, slot: slot}
}

// Root returns the handle of the tree's root node, or InvalidHandle when
// no tree has been built.
func (m *Model) Root() Handle {
	if m.root == nil {
		return InvalidHandle
	}
	return m.handleFor(m.root)
}

// RowCount returns the number of children under parent. Without a valid
// diff every count is zero.
func (m *Model) RowCount(parent Handle) int {
	if m.diff == nil || !m.diff.IsValid() {
		return 0
	}
	n := m.node(parent)
	if n == nil {
		return 0
	}
	return len(n.children)
}

// ColumnCount is fixed: the tree renders a single column.
func (m *Model) ColumnCount() int {
	return 1
}

// HasChildren reports whether parent has any child rows.
func (m *Model) HasChildren(parent Handle) bool {
	if m.root == nil {
		return false
	}
	n := m.node(parent)
	return n != nil && n.HasChildren()
}

// Child returns the handle for the given child row of parent.
func (m *Model) Child(parent Handle, row int) Handle {
	if row < 0 || row >= m.RowCount(parent) {
		return InvalidHandle
	}
	return m.handleFor(m.node(parent).children[row])
}

// Parent returns the parent handle of h, or InvalidHandle when h is a
// top-level row (a child of the invisible root) or stale.
func (m *Model) Parent(h Handle) Handle {
	n := m.node(h)
	if n == nil || n.parent == nil || n.parent == m.root {
		return InvalidHandle
	}
	return m.handleFor(n.parent)
}

// Row returns h's row within its parent, or -1 for a stale handle or the
// root.
func (m *Model) Row(h Handle) int {
	n := m.node(h)
	if n == nil || n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// ItemFlags reports how a view may interact with h. Every addressable
// node is user-checkable.
func (m *Model) ItemFlags(h Handle) Flags {
	if !h.IsValid() || m.node(h) == nil {
		return 0
	}
	return FlagEnabled | FlagSelectable | FlagUserCheckable
}

// Data answers a role query. Unknown roles, stale handles, and
// not-applicable values yield nil; query errors never surface here.
func (m *Model) Data(h Handle, role Role) any {
	if !h.IsValid() {
		return nil
	}
	n := m.node(h)
	if n == nil {
		return nil
	}
	switch role {
	case RoleDisplay:
		return n.Name()
	case RoleEdit:
		return n.Path(true)
	case RoleTooltip:
		return n.Path(false)
	case RoleCheck:
		if cs := m.CheckState(h); cs != NotApplicable {
			return cs
		}
	case RoleKind:
		return m.Kind(h)
	case RoleAdded:
		if c, ok := m.FirstCommit(h); ok {
			return c
		}
	case RoleModified:
		if c, ok := m.LastCommit(h); ok {
			return c
		}
	case RoleStatus:
		return m.StatusSummary(h)
	}
	return nil
}

// matchingPaths collects every diff entry at or beneath the node's
// relative path. Folders cannot be staged themselves, so their state is
// always derived from these files.
func (m *Model) matchingPaths(n *Node) []string {
	prefix := n.Path(true)
	var paths []string
	for i := 0; i < m.diff.Count(); i++ {
		if name := m.diff.Name(i); hasPathPrefix(name, prefix) {
			paths = append(paths, name)
		}
	}
	return paths
}

// CheckState derives the node's tri-state check value from the staged
// states of the diff entries beneath it. A diff that is not backed by a
// working index, or a node no entry falls under, has no check state.
func (m *Model) CheckState(h Handle) CheckState {
	n := m.node(h)
	if n == nil || m.diff == nil || !m.diff.IsValid() || !m.diff.IsStatusDiff() {
		return NotApplicable
	}
	paths := m.matchingPaths(n)
	if len(paths) == 0 {
		return NotApplicable
	}
	index := m.diff.Index()
	staged := 0
	for _, path := range paths {
		switch index.IsStaged(path) {
		case PartiallyStaged:
			return PartiallyChecked
		case Staged:
			staged++
			// Disabled, Unstaged, Conflicted count as not staged.
		}
	}
	switch {
	case staged == 0:
		return Unchecked
	case staged == len(paths):
		return Checked
	default:
		return PartiallyChecked
	}
}

// SetChecked applies a check-state change: it writes the matched file set
// through to the staging index and notifies the node's immediate child
// rows, its ancestors up to (excluding) the root, and the node itself.
// Only immediate children are notified; deeper descendants stay stale
// until re-queried. Reports whether the mutation was applied.
func (m *Model) SetChecked(h Handle, staged bool) bool {
	return m.setChecked(h, staged, false)
}

// setChecked is SetChecked with a skipPersist escape hatch: recompute and
// notify without re-writing the staged set. Reserved for cascaded callers
// that have already persisted; nothing sets it yet.
func (m *Model) setChecked(h Handle, staged, skipPersist bool) bool {
	n := m.node(h)
	if n == nil || !h.IsValid() || m.diff == nil || !m.diff.IsValid() {
		return false
	}
	files := m.matchingPaths(n)
	if !skipPersist {
		if err := m.diff.Index().SetStaged(files, staged); err != nil {
			return false
		}
	}

	for _, child := range n.children {
		m.notifyRow(m.handleFor(child), RoleCheck)
	}
	for p := n.parent; p != nil && p.parent != nil; p = p.parent {
		m.notifyRow(m.handleFor(p), RoleCheck)
	}
	m.notifyRow(h, RoleCheck)

	value := Unchecked
	if staged {
		value = Checked
	}
	for _, w := range m.watchers {
		if w.CheckStateChanged != nil {
			w.CheckStateChanged(h, value)
		}
	}
	return true
}

func (m *Model) notifyRow(h Handle, role Role) {
	for _, w := range m.watchers {
		if w.RowChanged != nil {
			w.RowChanged(h, role)
		}
	}
}

// StatusSummary returns the distinct status characters of the entries
// beneath the node, in first-occurrence order, or "" without a valid
// diff.
func (m *Model) StatusSummary(h Handle) string {
	n := m.node(h)
	if n == nil || m.diff == nil || !m.diff.IsValid() {
		return ""
	}
	prefix := n.Path(true)
	var status []byte
	for i := 0; i < m.diff.Count(); i++ {
		if !hasPathPrefix(m.diff.Name(i), prefix) {
			continue
		}
		ch := m.diff.Status(i).StatusChar()
		seen := false
		for _, b := range status {
			if b == ch {
				seen = true
				break
			}
		}
		if !seen {
			status = append(status, ch)
		}
	}
	return string(status)
}

// Kind labels the node: "Submodule" when the repository resolves its
// relative path to one, otherwise whatever the classifier says about its
// display name.
func (m *Model) Kind(h Handle) string {
	n := m.node(h)
	if n == nil {
		return ""
	}
	if m.repo != nil {
		if _, ok := m.repo.LookupSubmodule(n.Path(true)); ok {
			return "Submodule"
		}
	}
	if m.settings == nil {
		return ""
	}
	return m.settings.Kind(n.Name())
}

// FirstCommit surfaces the oldest commit touching the node's path.
func (m *Model) FirstCommit(h Handle) (Commit, bool) {
	return m.touchingCommit(h, OldestFirst)
}

// LastCommit surfaces the most recent commit touching the node's path.
func (m *Model) LastCommit(h Handle) (Commit, bool) {
	return m.touchingCommit(h, NewestFirst)
}

func (m *Model) touchingCommit(h Handle, order SortOrder) (Commit, bool) {
	n := m.node(h)
	if n == nil || m.repo == nil {
		return Commit{}, false
	}
	w := m.repo.Walker(order)
	if w == nil {
		return Commit{}, false
	}
	return w.Next(n.Path(true))
}
