package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEphemeralWorkspaceIsRemoved(t *testing.T) {
	ws, err := Open(t.TempDir(), "ignored", Ephemeral, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ws.Persistent() {
		t.Error("Expected ephemeral workspace")
	}

	src := writeSource(t, t.TempDir(), "a.jpg", "page")
	if _, err := ws.Place(src, "b.jpg", false); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ws.Close()
	ws.Close()

	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, got %v", ws.Dir, err)
	}
}

func TestPersistentWorkspaceSurvivesClose(t *testing.T) {
	out := t.TempDir()
	ws, err := Open(out, "renamed pages", Persistent, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if ws.Dir != filepath.Join(out, "renamed pages") {
		t.Errorf("Expected workspace under output dir, got %s", ws.Dir)
	}

	ws.Close()
	if _, err := os.Stat(ws.Dir); err != nil {
		t.Errorf("Expected persistent workspace to remain, got %v", err)
	}
}

func TestPlaceMoveAndCopy(t *testing.T) {
	ws, err := Open(t.TempDir(), "", Ephemeral, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	srcDir := t.TempDir()
	moved := writeSource(t, srcDir, "moved.jpg", "one")
	copied := writeSource(t, srcDir, "copied.jpg", "two")

	dst, err := ws.Place(moved, "x.jpg", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := os.Stat(moved); !os.IsNotExist(err) {
		t.Error("Expected source to be gone after move")
	}
	if data, _ := os.ReadFile(dst); string(data) != "one" {
		t.Errorf("Expected moved content, got %q", data)
	}

	dst, err = ws.Place(copied, "y.jpg", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := os.Stat(copied); err != nil {
		t.Error("Expected source to remain after copy")
	}
	if data, _ := os.ReadFile(dst); string(data) != "two" {
		t.Errorf("Expected copied content, got %q", data)
	}

	files, err := os.ReadDir(ws.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 workspace files, got %v", files)
	}
}

func TestPlaceDisambiguatesCollisions(t *testing.T) {
	ws, err := Open(t.TempDir(), "", Ephemeral, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	srcDir := t.TempDir()
	first, err := ws.Place(writeSource(t, srcDir, "a.jpg", "a"), "2024-01-15 DN bib1 001_002_003.jpg", false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ws.Place(writeSource(t, srcDir, "b.jpg", "b"), "2024-01-15 DN bib1 001_002_003.jpg", false)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(first) != "2024-01-15 DN bib1 001_002_003.jpg" {
		t.Errorf("Unexpected first name %s", first)
	}
	if filepath.Base(second) != "2024-01-15 DN bib1 001_002_003(1).jpg" {
		t.Errorf("Expected counter suffix, got %s", second)
	}
}

func TestPlaceMissingSourceReleasesName(t *testing.T) {
	ws, err := Open(t.TempDir(), "", Ephemeral, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	if _, err := ws.Place(filepath.Join(t.TempDir(), "gone.jpg"), "n.jpg", false); err == nil {
		t.Fatal("Expected an error for a missing source")
	}

	dst, err := ws.Place(writeSource(t, t.TempDir(), "ok.jpg", "ok"), "n.jpg", false)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dst) != "n.jpg" {
		t.Errorf("Expected failed claim to be released, got %s", dst)
	}
}

func TestRestore(t *testing.T) {
	ws, err := Open(t.TempDir(), "", Ephemeral, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	srcDir := t.TempDir()
	src := writeSource(t, srcDir, "bib1_20240115_001_002_003.jpg", "page")
	dst, err := ws.Place(src, "2024-01-15 DN bib1 001_002_003.jpg", false)
	if err != nil {
		t.Fatal(err)
	}

	if err := ws.Restore(dst, src); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if data, _ := os.ReadFile(src); string(data) != "page" {
		t.Errorf("Expected source restored, got %q", data)
	}

	other := writeSource(t, t.TempDir(), "x.jpg", "x")
	dst, err = ws.Place(other, "y.jpg", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Restore(dst, src); err == nil {
		t.Error("Expected restore over an existing file to fail")
	}
}
