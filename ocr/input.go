package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InputOption mutates an OCR input built from an image file.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithRegion sets the recognition region on the OCR input.
func WithRegion(region Region) InputOption {
	return func(in *Input) {
		if region.IsEmpty() {
			in.Region = nil
			return
		}
		in.Region = &region
	}
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// FormatForPath maps an image file extension to its content type.
func FormatForPath(path string) (ImageFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ImageFormatPNG, true
	case ".jpg", ".jpeg":
		return ImageFormatJPEG, true
	case ".tif", ".tiff":
		return ImageFormatTIFF, true
	case ".bmp":
		return ImageFormatBMP, true
	default:
		return "", false
	}
}

// InputFromFile builds an OCR input from an image file on disk. The input ID
// is the file stem, matching the document id convention used for ground-truth
// lookups.
func InputFromFile(path string, opts ...InputOption) (Input, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return Input{}, fmt.Errorf("unsupported image extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read image: %w", err)
	}

	base := filepath.Base(path)
	in := Input{
		ID:     strings.TrimSuffix(base, filepath.Ext(base)),
		Image:  data,
		Format: format,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
