package conf

import "testing"

func TestKind(t *testing.T) {
	s := Default()
	if got := s.Kind("main.go"); got != "Go source file" {
		t.Fatalf("Kind(main.go) = %q", got)
	}
	if got := s.Kind("README.MD"); got != "Markdown document" {
		t.Fatalf("Kind(README.MD) = %q", got)
	}
	if got := s.Kind("Makefile"); got != "" {
		t.Fatalf("Kind(Makefile) = %q, want empty", got)
	}
}

func TestSetKind_Override(t *testing.T) {
	s := Default()
	s.SetKind(".go", "Gopher food")
	if got := s.Kind("x.go"); got != "Gopher food" {
		t.Fatalf("override ignored: %q", got)
	}
	s.SetKind(".zig", "Zig source file")
	if got := s.Kind("x.zig"); got != "Zig source file" {
		t.Fatalf("new extension ignored: %q", got)
	}
}
