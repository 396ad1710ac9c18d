package settings

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/categories"
)

const settingsPath = "/home/user/.file-organizer/settings.json"

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	store := Open(afero.NewMemMapFs(), settingsPath)

	got := store.Snapshot()
	if !got.FileTypes.Equal(categories.Default()) {
		t.Errorf("Expected default categories, got %v", got.FileTypes.Names())
	}
	if got.Theme != ThemeLight {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
	if got.LastFolder != "" {
		t.Errorf("LastFolder = %q, want empty", got.LastFolder)
	}
}

func TestOpen_MalformedFileUsesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, content := range []string{"{not json", `{"file_types": null}`, `{"file_types": {}}`} {
		if err := afero.WriteFile(fs, settingsPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		store := Open(fs, settingsPath)
		if !store.Snapshot().FileTypes.Equal(categories.Default()) {
			t.Errorf("content %q: expected default categories", content)
		}
	}
}

func TestOpen_PreservesCategoryOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{
    "file_types": {"Zeta": [".z"], "Alpha": [".A"]},
    "last_folder": "/tmp/downloads",
    "theme": "dark"
}`
	if err := afero.WriteFile(fs, settingsPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := Open(fs, settingsPath).Snapshot()
	names := got.FileTypes.Names()
	if len(names) != 2 || names[0] != "Zeta" || names[1] != "Alpha" {
		t.Errorf("Names() = %v, want [Zeta Alpha]", names)
	}
	if got.FileTypes.Classify(".a") != "Alpha" {
		t.Error("Expected extension to be normalized on load")
	}
	if got.LastFolder != "/tmp/downloads" || got.Theme != ThemeDark {
		t.Errorf("Unexpected settings: %+v", got)
	}
}

func TestStore_AddCategoryPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := Open(fs, settingsPath)

	if _, err := store.AddCategory("Archives"); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if _, err := store.AddExtension("Archives", "ZIP"); err != nil {
		t.Fatalf("AddExtension() error = %v", err)
	}

	reopened := Open(fs, settingsPath).Snapshot()
	if got := reopened.FileTypes.Classify(".zip"); got != "Archives" {
		t.Errorf("Classify(.zip) after reload = %q, want Archives", got)
	}
	names := reopened.FileTypes.Names()
	if names[len(names)-1] != "Archives" {
		t.Errorf("Expected Archives last, got %v", names)
	}

	data, err := afero.ReadFile(fs, settingsPath)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("settings file is not valid JSON: %v", err)
	}
	for _, key := range []string{"file_types", "last_folder", "theme"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("settings file missing key %q", key)
		}
	}
	if exists, _ := afero.Exists(fs, settingsPath+".tmp"); exists {
		t.Error("临时文件应已被重命名")
	}
}

func TestStore_ErrorsLeaveSnapshotUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := Open(fs, settingsPath)
	before := store.Snapshot()

	if _, err := store.AddCategory("Documents"); !errors.Is(err, categories.ErrCategoryExists) {
		t.Errorf("Expected ErrCategoryExists, got %v", err)
	}
	if _, err := store.AddExtension("Documents", ".pdf"); !errors.Is(err, categories.ErrExtensionExists) {
		t.Errorf("Expected ErrExtensionExists, got %v", err)
	}
	if _, err := store.AddExtension("Nope", ".x"); !errors.Is(err, categories.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
	if _, err := store.SetTheme("sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("Expected ErrInvalidTheme, got %v", err)
	}

	if !store.Snapshot().FileTypes.Equal(before.FileTypes) {
		t.Error("失败的更新不应修改设置")
	}
	if exists, _ := afero.Exists(fs, settingsPath); exists {
		t.Error("失败的更新不应写入设置文件")
	}
}

func TestStore_SaveFailureKeepsSnapshot(t *testing.T) {
	store := Open(afero.NewReadOnlyFs(afero.NewMemMapFs()), settingsPath)

	if _, err := store.AddCategory("Archives"); err == nil {
		t.Fatal("Expected error on read-only filesystem")
	}
	if store.Snapshot().FileTypes.Has("Archives") {
		t.Error("保存失败时不应发布新设置")
	}
}

func TestStore_SnapshotIsImmutable(t *testing.T) {
	store := Open(afero.NewMemMapFs(), settingsPath)
	snap := store.Snapshot()

	if _, err := store.AddCategory("Archives"); err != nil {
		t.Fatal(err)
	}
	if snap.FileTypes.Has("Archives") {
		t.Error("旧快照不应看到新分类")
	}
}

func TestStore_Theme(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := Open(fs, settingsPath)

	got, err := store.ToggleTheme()
	if err != nil {
		t.Fatal(err)
	}
	if got.Theme != ThemeDark {
		t.Errorf("Theme = %q, want dark", got.Theme)
	}
	if _, err := store.SetTheme(ThemeLight); err != nil {
		t.Fatal(err)
	}
	if Open(fs, settingsPath).Snapshot().Theme != ThemeLight {
		t.Error("Expected persisted theme light")
	}
}

func TestStore_SetLastFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := Open(fs, settingsPath)

	if err := store.SetLastFolder("/data/downloads"); err != nil {
		t.Fatal(err)
	}

	data, _ := afero.ReadFile(fs, settingsPath)
	if !strings.Contains(string(data), `"last_folder": "/data/downloads"`) {
		t.Errorf("settings file = %s", data)
	}
}

func TestParseTheme(t *testing.T) {
	if theme, err := ParseTheme("dark"); err != nil || theme != ThemeDark {
		t.Errorf("ParseTheme(dark) = %q, %v", theme, err)
	}
	if _, err := ParseTheme("Dark"); err == nil {
		t.Error("Expected error for unknown theme")
	}
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle() mismatch")
	}
}
