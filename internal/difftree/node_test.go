package difftree

import (
	"reflect"
	"strings"
	"testing"
)

func buildFromPaths(rootName string, paths []string) *Node {
	root := newNode(rootName, nil)
	for _, p := range paths {
		root.addPath(strings.Split(p, "/"), 0)
	}
	return root
}

func leafPaths(n *Node) []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.HasChildren() {
			out = append(out, n.Path(true))
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, c := range n.Children() {
		walk(c)
	}
	return out
}

func TestBuild_LeavesMatchEntryPaths(t *testing.T) {
	paths := []string{
		"src/a.c",
		"src/b.c",
		"src/sub/deep.c",
		"docs/readme.md",
		"Makefile",
	}
	root := buildFromPaths("/work/repo", paths)

	got := leafPaths(root)
	if !reflect.DeepEqual(got, paths) {
		t.Fatalf("leaf paths = %v, want %v", got, paths)
	}
}

func TestBuild_ChildOrderIsFirstSeen(t *testing.T) {
	root := buildFromPaths("repo", []string{
		"zebra/x.go",
		"alpha/y.go",
		"zebra/a.go",
		"middle.txt",
	})

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	want := []string{"zebra", "alpha", "middle.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("top-level order = %v, want %v", names, want)
	}

	zebra := root.Children()[0]
	if zebra.Children()[0].Name() != "x.go" || zebra.Children()[1].Name() != "a.go" {
		t.Fatalf("zebra children out of order: %v, %v",
			zebra.Children()[0].Name(), zebra.Children()[1].Name())
	}
}

func TestBuild_RebuildIsDeterministic(t *testing.T) {
	paths := []string{"a/b/c.txt", "a/d.txt", "e.txt", "a/b/f.txt"}
	first := buildFromPaths("repo", paths)
	second := buildFromPaths("repo", paths)

	var shape func(n *Node) string
	shape = func(n *Node) string {
		var b strings.Builder
		b.WriteString(n.Name())
		b.WriteByte('[')
		for _, c := range n.Children() {
			b.WriteString(shape(c))
		}
		b.WriteByte(']')
		return b.String()
	}
	if shape(first) != shape(second) {
		t.Fatalf("shapes differ:\n%s\n%s", shape(first), shape(second))
	}
}

func TestNode_Path(t *testing.T) {
	root := buildFromPaths("/work/repo", []string{"src/sub/x.c"})
	src := root.Children()[0]
	sub := src.Children()[0]
	x := sub.Children()[0]

	if got := root.Path(false); got != "/work/repo" {
		t.Fatalf("root full path = %q", got)
	}
	if got := root.Path(true); got != "" {
		t.Fatalf("root relative path = %q, want empty", got)
	}
	if got := x.Path(false); got != "/work/repo/src/sub/x.c" {
		t.Fatalf("leaf full path = %q", got)
	}
	if got := x.Path(true); got != "src/sub/x.c" {
		t.Fatalf("leaf relative path = %q", got)
	}
	// Relative is the full path minus exactly the root segment.
	if full, rel := sub.Path(false), sub.Path(true); full != "/work/repo/"+rel {
		t.Fatalf("full %q does not extend relative %q", full, rel)
	}
}

func TestNode_ParentBackReference(t *testing.T) {
	root := buildFromPaths("repo", []string{"a/b.txt"})
	a := root.Children()[0]
	b := a.Children()[0]
	if b.Parent() != a || a.Parent() != root || root.Parent() != nil {
		t.Fatal("parent chain broken")
	}
}

func TestHasPathPrefix_SegmentBoundaries(t *testing.T) {
	cases := []struct {
		path, prefix string
		want         bool
	}{
		{"docs/readme.md", "docs", true},
		{"docs", "docs", true},
		{"docs2/readme.md", "docs", false},
		{"docs.txt", "docs", false},
		{"src/a.c", "", true},
		{"src/a.c", "src/a.c", true},
		{"src/a.c.bak", "src/a.c", false},
		{"src", "src/a.c", false},
	}
	for _, c := range cases {
		if got := hasPathPrefix(c.path, c.prefix); got != c.want {
			t.Errorf("hasPathPrefix(%q, %q) = %v, want %v", c.path, c.prefix, got, c.want)
		}
	}
}
