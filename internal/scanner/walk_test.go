package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_PrunesHiddenAndExcluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pl"), "")
	writeFile(t, filepath.Join(root, "lib", "b.pl"), "")
	writeFile(t, filepath.Join(root, ".git", "config"), "")
	writeFile(t, filepath.Join(root, "CVS", "Entries"), "")
	writeFile(t, filepath.Join(root, ".hidden"), "")
	writeFile(t, filepath.Join(root, "lib", "skip.tmp"), "")

	w, err := NewWalker([]string{"CVS"}, []string{"*.tmp"})
	if err != nil {
		t.Fatal(err)
	}
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{
		filepath.Join(root, "a.pl"):        true,
		filepath.Join(root, "lib", "b.pl"): true,
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %d entries", files, len(want))
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestWalker_DottedRootNotPruned(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, ".workdir")
	writeFile(t, filepath.Join(root, "a.pl"), "")

	w, err := NewWalker(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want the one file under the dotted root", files)
	}
}

func TestWalker_BadPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewWalker([]string{"["}, nil); err == nil {
		t.Fatal("expected error for invalid glob")
	}
}
