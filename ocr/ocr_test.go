package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tak-akashi/test-ocr-models/extract"
)

func TestInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_doc.png")
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	meta := map[string]string{"psm": "6"}
	in, err := InputFromFile(path,
		WithLanguages("eng", "jpn"),
		WithRegion(Region{X: 0, Y: 0, Width: 10, Height: 10}),
		WithDPI(300),
		WithMetadata(meta),
	)
	if err != nil {
		t.Fatalf("InputFromFile() error = %v", err)
	}
	if in.ID != "sample_doc" {
		t.Errorf("ID = %q, want sample_doc", in.ID)
	}
	if in.Format != ImageFormatPNG {
		t.Errorf("Format = %q, want %q", in.Format, ImageFormatPNG)
	}
	if !reflect.DeepEqual(in.Languages, []string{"eng", "jpn"}) {
		t.Errorf("Languages = %v", in.Languages)
	}
	if in.Region == nil || in.Region.Width != 10 {
		t.Errorf("Region = %v", in.Region)
	}
	if in.DPI != 300 {
		t.Errorf("DPI = %d", in.DPI)
	}
	meta["psm"] = "3"
	if in.Metadata["psm"] != "6" {
		t.Errorf("Metadata not copied: %v", in.Metadata)
	}
}

func TestInputFromFileUnsupportedExtension(t *testing.T) {
	if _, err := InputFromFile("document.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestWithRegionEmptyClears(t *testing.T) {
	in := Input{Region: &Region{Width: 5, Height: 5}}
	WithRegion(Region{})(&in)
	if in.Region != nil {
		t.Errorf("Region = %v, want nil", in.Region)
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]ImageFormat{
		"a.png":  ImageFormatPNG,
		"a.JPG":  ImageFormatJPEG,
		"a.jpeg": ImageFormatJPEG,
		"a.tif":  ImageFormatTIFF,
		"a.tiff": ImageFormatTIFF,
		"a.bmp":  ImageFormatBMP,
	}
	for path, want := range cases {
		got, ok := FormatForPath(path)
		if !ok || got != want {
			t.Errorf("FormatForPath(%q) = %q, %v; want %q", path, got, ok, want)
		}
	}
	if _, ok := FormatForPath("a.webp"); ok {
		t.Error("FormatForPath accepted webp")
	}
}

func TestResultDocument(t *testing.T) {
	words := []extract.Fragment{{Content: "hi", Points: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}}
	doc := Result{PlainText: "hi", Words: words}.Document()
	if len(doc.Words) != 1 || doc.Text != "" {
		t.Errorf("Document() = %+v", doc)
	}

	doc = Result{PlainText: "fallback"}.Document()
	if doc.Text != "fallback" {
		t.Errorf("Document() text fallback = %q", doc.Text)
	}
}

func TestWithTesseractOptions(t *testing.T) {
	var in Input
	WithTesseractPSM(6)(&in)
	WithTesseractWhitelist("0123456789")(&in)
	if in.Metadata["tessedit_pageseg_mode"] != "6" {
		t.Errorf("psm = %q", in.Metadata["tessedit_pageseg_mode"])
	}
	if in.Metadata["tessedit_char_whitelist"] != "0123456789" {
		t.Errorf("whitelist = %q", in.Metadata["tessedit_char_whitelist"])
	}
}

type fakeEngine struct {
	calls []string
	err   error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	f.calls = append(f.calls, in.ID)
	if f.err != nil {
		return Result{}, f.err
	}
	return Result{InputID: in.ID}, nil
}

func TestRecognizeSequential(t *testing.T) {
	engine := &fakeEngine{}
	inputs := []Input{{ID: "a"}, {ID: "b"}}
	results, err := Recognize(context.Background(), engine, inputs)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if len(results) != 2 || results[0].InputID != "a" || results[1].InputID != "b" {
		t.Errorf("results = %+v", results)
	}
	if !reflect.DeepEqual(engine.calls, []string{"a", "b"}) {
		t.Errorf("calls = %v", engine.calls)
	}
}

func TestRecognizePropagatesError(t *testing.T) {
	wantErr := errors.New("engine down")
	if _, err := Recognize(context.Background(), &fakeEngine{err: wantErr}, []Input{{ID: "a"}}); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
}

func TestRecognizeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Recognize(ctx, &fakeEngine{}, []Input{{ID: "a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
