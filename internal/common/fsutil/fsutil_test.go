package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cases := map[string]string{
		"":                "",
		"/tmp":            "/tmp",
		"rel/thingsd.yml": "rel/thingsd.yml",
		"~":               home,
		"~/thingsd.yaml":  filepath.Join(home, "thingsd.yaml"),
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("%q: err=%v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestFirstRegularFile(t *testing.T) {
	d := t.TempDir()
	f := filepath.Join(d, "thingsd.toml")
	if err := os.WriteFile(f, []byte("addr=\":1\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := FirstRegularFile(filepath.Join(d, "missing.yaml"), d, f)
	if !ok || got != f {
		t.Fatalf("expected %q, got %q ok=%v", f, got, ok)
	}
	if _, ok := FirstRegularFile(filepath.Join(d, "nope"), ""); ok {
		t.Fatalf("expected no match")
	}
}
