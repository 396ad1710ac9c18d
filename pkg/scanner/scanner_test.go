package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func createFiles(t *testing.T, fs afero.Fs, root string, files []string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := afero.WriteFile(fs, fullPath, []byte("test content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("Rel() error = %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestFileWalker_Enumerate_TopLevelOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/data"
	createFiles(t, fs, root, []string{
		"b.txt",
		"a.pdf",
		".hidden_file",
		"subdir/file3.txt",
	})

	walker := NewFileWalker(fs)
	files, err := walker.Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}

	want := []string{"a.pdf", "b.txt"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("Enumerate() = %v, want %v", got, want)
	}
}

func TestFileWalker_Enumerate_Recursive(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/data"
	createFiles(t, fs, root, []string{
		"file1.txt",
		"subdir/file3.txt",
		"subdir/deeper/file4.txt",
		".hidden_file",
		".hidden_dir/visible.txt",
	})

	walker := NewFileWalker(fs)
	walker.Recursive = true

	files, err := walker.Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}

	want := []string{"file1.txt", "subdir/deeper/file4.txt", "subdir/file3.txt"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("Enumerate() = %v, want %v", got, want)
	}
}

func TestFileWalker_Enumerate_IncludeHidden(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/data"
	createFiles(t, fs, root, []string{
		"file1.txt",
		".hidden_file",
		".hidden_dir/.hidden_file2",
	})

	walker := NewFileWalker(fs)
	walker.Recursive = true
	walker.IncludeHidden = true

	files, err := walker.Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}

	if len(files) != 3 {
		t.Errorf("Expected 3 files, got %d: %v", len(files), files)
	}
}

func TestFileWalker_Enumerate_NonExistentDir(t *testing.T) {
	walker := NewFileWalker(afero.NewMemMapFs())
	if _, err := walker.Enumerate("/non/existent/directory"); err == nil {
		t.Error("Expected error for non-existent directory")
	}
}

func TestFileWalker_Enumerate_SkipsSymlinks(t *testing.T) {
	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	linkPath := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(filePath, linkPath); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	for _, recursive := range []bool{false, true} {
		walker := NewFileWalker(afero.NewOsFs())
		walker.Recursive = recursive

		files, err := walker.Enumerate(tempDir)
		if err != nil {
			t.Fatalf("Enumerate() error = %v", err)
		}
		if len(files) != 1 || files[0] != filePath {
			t.Errorf("recursive=%v: expected only %s, got %v", recursive, filePath, files)
		}
	}
}

func TestFileWalker_WalkDirs_BottomUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/data"
	for _, dir := range []string{"A/B/C", "A/D", "E", ".git/objects"} {
		if err := fs.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
	}

	walker := NewFileWalker(fs)
	dirs, err := walker.WalkDirs(root)
	if err != nil {
		t.Fatalf("WalkDirs() error = %v", err)
	}

	want := []string{"E", "A/D", "A/B/C", "A/B", "A"}
	if got := relPaths(t, root, dirs); !reflect.DeepEqual(got, want) {
		t.Errorf("WalkDirs() = %v, want %v", got, want)
	}
}

func TestIsHidden(t *testing.T) {
	tests := map[string]bool{
		".bashrc":  true,
		".git":     true,
		"file.txt": false,
		".":        false,
		"..":       false,
	}
	for name, want := range tests {
		if got := IsHidden(name); got != want {
			t.Errorf("IsHidden(%q) = %v, want %v", name, got, want)
		}
	}
}
