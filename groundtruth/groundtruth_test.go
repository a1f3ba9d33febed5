package groundtruth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gt_dataset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDataset(t, `[
		{"path": "cropped_images/batch_0_sample_0.png", "gt": "hello world"},
		{"path": "batch_0_sample_1.png", "gt": "second"}
	]`)

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	text, ok := idx.Lookup("batch_0_sample_0")
	if !ok || text != "hello world" {
		t.Fatalf("Lookup = %q, %v", text, ok)
	}
	if _, ok := idx.Lookup("missing"); ok {
		t.Fatal("unexpected hit for missing id")
	}
}

func TestLoadDuplicateLastWins(t *testing.T) {
	path := writeDataset(t, `[
		{"path": "a/doc.png", "gt": "first"},
		{"path": "b/doc.png", "gt": "second"}
	]`)

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if text, _ := idx.Lookup("doc"); text != "second" {
		t.Fatalf("Lookup after duplicate = %q, want second", text)
	}
	if idx.Duplicates() != 1 {
		t.Fatalf("Duplicates = %d, want 1", idx.Duplicates())
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeDataset(t, `{"not": "an array"}`)
	if _, err := Load(path); !errors.Is(err, ErrDataFormat) {
		t.Fatalf("err = %v, want ErrDataFormat", err)
	}

	path = writeDataset(t, `[{"gt": "missing path"}]`)
	if _, err := Load(path); !errors.Is(err, ErrDataFormat) {
		t.Fatalf("err = %v, want ErrDataFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDocumentID(t *testing.T) {
	cases := map[string]string{
		"cropped_images/batch_0_sample_0.png": "batch_0_sample_0",
		"doc.json":                            "doc",
		"a/b/c.tar.gz":                        "c.tar",
		"noext":                               "noext",
	}
	for in, want := range cases {
		if got := DocumentID(in); got != want {
			t.Errorf("DocumentID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripPageSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"doc1_0", "doc1", true},
		{"doc1_12", "doc1", true},
		{"doc1", "", false},
		{"doc1_a", "", false},
		{"_0", "", false},
		{"doc1_", "", false},
	}
	for _, tc := range cases {
		got, ok := StripPageSuffix(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("StripPageSuffix(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
