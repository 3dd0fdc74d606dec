package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveInlineBody(t *testing.T) {
	snippet, err := Resolve(Request{Body: "a\nb"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(snippet.Lines) != 2 || snippet.Lines[0] != "a" || snippet.Lines[1] != "b" {
		t.Errorf("Lines = %v, want [a b]", snippet.Lines)
	}
	if snippet.Region != "" {
		t.Errorf("inline bodies carry no extraction target, got %q", snippet.Region)
	}
	if snippet.Origin != "" {
		t.Errorf("inline bodies carry no origin, got %q", snippet.Origin)
	}
}

func TestResolveExternalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.go")
	content := "a\n//@start region=r\nb\n//@end region=r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	snippet, err := Resolve(Request{File: path, Region: "r"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(snippet.Lines) != 4 {
		t.Errorf("Lines = %v, want 4 lines", snippet.Lines)
	}
	if snippet.Region != "r" {
		t.Errorf("Region = %q, want r", snippet.Region)
	}
	if snippet.Origin != path {
		t.Errorf("Origin = %q, want %q", snippet.Origin, path)
	}
}

func TestResolveBodyWinsOverFile(t *testing.T) {
	snippet, err := Resolve(Request{Body: "inline", File: "/does/not/exist"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(snippet.Lines) != 1 || snippet.Lines[0] != "inline" {
		t.Errorf("Lines = %v, want [inline]", snippet.Lines)
	}
}

func TestResolveUnresolved(t *testing.T) {
	if _, err := Resolve(Request{}); !errors.Is(err, ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(Request{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"one.go":         "//@start region=alpha\nx\n//@end region=alpha\n",
		"two.py":         "# plain\nval # @start region=beta\n# @end region=beta\n",
		"plain.txt":      "no markup here\n",
		".hidden/sec.go": "//@start region=hidden\n//@end\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	got := make(map[string]string)
	for _, e := range entries {
		got[e.Region] = filepath.Base(e.File)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want alpha and beta only", entries)
	}
	if got["alpha"] != "one.go" || got["beta"] != "two.py" {
		t.Errorf("entries = %v", got)
	}
}

func TestScanDirSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.go")
	if err := os.WriteFile(path, []byte("//@start region=r\n//@end\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanDir(path)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Region != "r" || entries[0].File != path {
		t.Errorf("entries = %v", entries)
	}
}
