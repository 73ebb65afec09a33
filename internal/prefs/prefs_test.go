package prefs

import (
	"os/exec"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}

	if p := Load(dir); p.KindSet || p.ThemeSet || p.LeftSet {
		t.Fatalf("fresh repo has prefs set: %+v", p)
	}

	if err := SaveShowKind(dir, true); err != nil {
		t.Fatal(err)
	}
	if err := SaveTheme(dir, "light"); err != nil {
		t.Fatal(err)
	}
	if err := SaveLeftWidth(dir, 42); err != nil {
		t.Fatal(err)
	}
	if err := SaveLeftWidth(dir, 0); err == nil {
		t.Fatal("expected error for zero width")
	}

	p := Load(dir)
	if !p.KindSet || !p.ShowKind {
		t.Fatalf("showKind not round-tripped: %+v", p)
	}
	if !p.ThemeSet || p.Theme != "light" {
		t.Fatalf("theme not round-tripped: %+v", p)
	}
	if !p.LeftSet || p.LeftWidth != 42 {
		t.Fatalf("leftWidth not round-tripped: %+v", p)
	}
}
