package smartprober

import (
	"context"
	"errors"
	"testing"

	"github.com/user/scansheet/pkg/mocks"
)

func TestProbe_PrefersFFprobe(t *testing.T) {
	ffprobe := mocks.NewProber(mocks.SampleProbe())
	native := mocks.NewProber(mocks.SampleProbe())
	p := New(ffprobe, native, mocks.NewLogger())

	if _, err := p.Probe(context.Background(), "/videos/sample.mkv"); err != nil {
		t.Fatalf("Probe: %v", err)
	}

	if len(ffprobe.ProbedPaths()) != 1 {
		t.Error("expected ffprobe backend to be used")
	}
	if len(native.ProbedPaths()) != 0 {
		t.Error("native backend should not run when ffprobe is available")
	}
}

func TestProbe_FallsBackToMP4(t *testing.T) {
	ffprobe := mocks.NewProber(mocks.SampleProbe())
	ffprobe.Unavailable = true
	native := mocks.NewProber(mocks.SampleProbe())
	p := New(ffprobe, native, mocks.NewLogger())

	if _, err := p.Probe(context.Background(), "/videos/sample.MP4"); err != nil {
		t.Fatalf("Probe: %v", err)
	}

	if len(native.ProbedPaths()) != 1 {
		t.Error("expected native backend to be used")
	}
}

func TestProbe_NoBackendForInput(t *testing.T) {
	ffprobe := mocks.NewProber(mocks.SampleProbe())
	ffprobe.Unavailable = true
	native := mocks.NewProber(mocks.SampleProbe())
	p := New(ffprobe, native, mocks.NewLogger())

	_, err := p.Probe(context.Background(), "/videos/sample.mkv")
	if !errors.Is(err, ErrNoProberAvailable) {
		t.Errorf("expected ErrNoProberAvailable, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	ffprobe := mocks.NewProber(mocks.SampleProbe())
	ffprobe.Unavailable = true
	native := mocks.NewProber(mocks.SampleProbe())

	if !New(ffprobe, native, mocks.NewLogger()).Available() {
		t.Error("expected availability via the native backend")
	}
}
