package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolve_FindsPaddedFolder(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "day-01-color-picker", "day-02-json-viewer", "hq")

	got, err := Resolve(root, 2, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got != "day-02-json-viewer" {
		t.Errorf("expected day-02-json-viewer, got %q", got)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "day-01-color-picker")

	got, err := Resolve(root, 3, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no match, got %q", got)
	}
}

func TestResolve_DoesNotMatchLongerNumbers(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "day-010-ten", "day-1-unpadded", "day-01")

	got, err := Resolve(root, 1, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no match for day 1, got %q", got)
	}
}

func TestResolve_ThreeDigitDays(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "day-100-centennial")

	got, err := Resolve(root, 100, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got != "day-100-centennial" {
		t.Errorf("expected day-100-centennial, got %q", got)
	}
}

func TestResolve_SkipsFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "day-05-notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(root, 5, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("files must not resolve, got %q", got)
	}
}

func TestResolve_AmbiguousPicksSmallest(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "day-07-zeta", "day-07-alpha", "day-07-beta")

	r, err := NewResolver(root, "day-")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Resolve(7); got != "day-07-alpha" {
		t.Errorf("expected day-07-alpha, got %q", got)
	}
	if got := r.Matches(7); len(got) != 3 {
		t.Errorf("expected 3 matches, got %v", got)
	}
}

func TestResolve_CustomPrefix(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "p09-thing")

	got, err := Resolve(root, 9, "p")
	if err != nil {
		t.Fatal(err)
	}
	if got != "p09-thing" {
		t.Errorf("expected p09-thing, got %q", got)
	}
}

func TestResolve_MissingRoot(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "gone"), 1, "day-")
	if err == nil {
		t.Error("expected error for missing root")
	}
}
