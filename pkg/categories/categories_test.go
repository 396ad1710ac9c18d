package categories

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestClassify_CaseInsensitive(t *testing.T) {
	m := Default()

	tests := map[string]string{
		".pdf":  "Documents",
		".PDF":  "Documents",
		".Pdf":  "Documents",
		".png":  "Images",
		".JPEG": "Images",
		".mkv":  "Videos",
		".FLAC": "Music",
	}

	for ext, want := range tests {
		if got := m.Classify(ext); got != want {
			t.Errorf("Classify(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestClassify_CatchAll(t *testing.T) {
	m := Default()

	for _, ext := range []string{"", ".zip", ".unknown", ".tar", "."} {
		if got := m.Classify(ext); got != Others {
			t.Errorf("Classify(%q) = %q, want %q", ext, got, Others)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	m := New(
		Category{Name: "Text", Extensions: []string{".txt"}},
		Category{Name: "Documents", Extensions: []string{".txt", ".pdf"}},
	)

	if got := m.Classify(".txt"); got != "Text" {
		t.Errorf("Classify(.txt) = %q, want Text", got)
	}
	if got := m.Classify(".pdf"); got != "Documents" {
		t.Errorf("Classify(.pdf) = %q, want Documents", got)
	}
}

func TestClassify_Pure(t *testing.T) {
	m := Default()
	before, _ := json.Marshal(m)

	first := m.Classify(".DOCX")
	second := m.Classify(".DOCX")
	if first != second {
		t.Errorf("Classify 结果不一致: %q != %q", first, second)
	}

	after, _ := json.Marshal(m)
	if string(before) != string(after) {
		t.Error("Classify 不应修改分类表")
	}
}

func TestNew_NormalizesExtensions(t *testing.T) {
	m := New(Category{Name: " Logs ", Extensions: []string{"LOG", ".Log", ".txt", "", "  "}})

	exts, ok := m.Extensions("Logs")
	if !ok {
		t.Fatal("Expected category Logs to exist")
	}
	if len(exts) != 2 || exts[0] != ".log" || exts[1] != ".txt" {
		t.Errorf("Expected [.log .txt], got %v", exts)
	}
}

func TestWithCategory(t *testing.T) {
	m := Default()

	next, err := m.WithCategory("Archives")
	if err != nil {
		t.Fatalf("WithCategory() error = %v", err)
	}
	if m.Has("Archives") {
		t.Error("WithCategory 不应修改原分类表")
	}
	if !next.Has("Archives") {
		t.Error("Expected new map to contain Archives")
	}
	names := next.Names()
	if names[len(names)-1] != "Archives" {
		t.Errorf("Expected Archives to be appended last, got %v", names)
	}

	if _, err := next.WithCategory("Archives"); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("Expected ErrCategoryExists, got %v", err)
	}
	if _, err := next.WithCategory("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
}

func TestWithExtension(t *testing.T) {
	m := Default()

	next, err := m.WithExtension("Documents", "MD")
	if err != nil {
		t.Fatalf("WithExtension() error = %v", err)
	}
	if got := next.Classify(".md"); got != "Documents" {
		t.Errorf("Classify(.md) = %q, want Documents", got)
	}
	if got := m.Classify(".md"); got != Others {
		t.Errorf("原分类表被修改: Classify(.md) = %q", got)
	}

	if _, err := next.WithExtension("Documents", ".Md"); !errors.Is(err, ErrExtensionExists) {
		t.Errorf("Expected ErrExtensionExists, got %v", err)
	}
	if _, err := next.WithExtension("Nope", ".md"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
	if _, err := next.WithExtension("Documents", "."); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("Expected ErrInvalidExtension, got %v", err)
	}
}

func TestJSON_RoundTripPreservesOrder(t *testing.T) {
	m := New(
		Category{Name: "Zeta", Extensions: []string{".z"}},
		Category{Name: "Alpha", Extensions: []string{".a", ".b"}},
		Category{Name: "Empty"},
	)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"Zeta":[".z"],"Alpha":[".a",".b"],"Empty":[]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded CategoryMap
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(m) {
		t.Errorf("round trip mismatch: %v != %v", decoded.Names(), m.Names())
	}
}

func TestJSON_DuplicateKeyLastWins(t *testing.T) {
	var m CategoryMap
	if err := json.Unmarshal([]byte(`{"A":[".x"],"B":[".b"],"A":[".y"]}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	names := m.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Expected [A B], got %v", names)
	}
	if got := m.Classify(".y"); got != "A" {
		t.Errorf("Classify(.y) = %s, want A", got)
	}
	if got := m.Classify(".x"); got != Others {
		t.Errorf("Classify(.x) = %s, want %s", got, Others)
	}
}

func TestJSON_RejectsNonObject(t *testing.T) {
	var m CategoryMap
	if err := json.Unmarshal([]byte(`[".pdf"]`), &m); err == nil {
		t.Error("Expected error for array input")
	}
	if err := json.Unmarshal([]byte(`{"Docs": 3}`), &m); err == nil {
		t.Error("Expected error for non-array extensions")
	}
}

func TestFolderName(t *testing.T) {
	tests := map[string]string{
		"Documents":     "Documents",
		"📄 Documents":   "Documents",
		"🖼️ Images":     "Images",
		"❓ Others":      "Others",
		"C++":           "C++",
		"a/b":           "a_b",
		"🎵":             Others,
		"..":            Others,
		"  Spaced Out ": "Spaced Out",
	}

	for in, want := range tests {
		if got := FolderName(in); got != want {
			t.Errorf("FolderName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMIME(t *testing.T) {
	if got := MIME(".PNG"); got != "image/png" {
		t.Errorf("MIME(.PNG) = %q, want image/png", got)
	}
	if got := MIME("pdf"); got != "application/pdf" {
		t.Errorf("MIME(pdf) = %q, want application/pdf", got)
	}
	if got := MIME(".nothing-known"); got != "" {
		t.Errorf("MIME(.nothing-known) = %q, want empty", got)
	}
}
