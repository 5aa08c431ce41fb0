package filesink

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/user/scansheet/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewRenderer()
	sink := New(testBaseDir, fs, renderer)

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveProbeJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewRenderer()
	sink := New(testBaseDir, fs, renderer)

	data := []byte(`{"format": {}}`)
	if err := sink.SaveProbeJSON(data); err != nil {
		t.Fatalf("SaveProbeJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "probe.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveHeader(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewRenderer()
	sink := New(testBaseDir, fs, renderer)

	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if err := sink.SaveHeader(img); err != nil {
		t.Fatalf("SaveHeader failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "header.png")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if len(saved) == 0 {
		t.Error("expected non-empty PNG data")
	}
}

func TestSink_SaveThumbnail(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewRenderer()
	sink := New(testBaseDir, fs, renderer)

	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	if err := sink.SaveThumbnail(3, img); err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "thumbnails", "thumbnail-0003.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
}

func TestSink_SaveSheet(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := mocks.NewRenderer()
	sink := New(testBaseDir, fs, renderer)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := sink.SaveSheet(img); err != nil {
		t.Fatalf("SaveSheet failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "sheet.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
}
