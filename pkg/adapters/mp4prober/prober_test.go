package mp4prober

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/scansheet/pkg/adapters/osfilesystem"
)

func TestProbe_NotAnMP4(t *testing.T) {
	p := New(osfilesystem.New())

	path := filepath.Join(t.TempDir(), "bogus.mp4")
	if err := os.WriteFile(path, []byte("certainly not an mp4"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Probe(context.Background(), path); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestProbe_MissingFile(t *testing.T) {
	p := New(osfilesystem.New())

	if _, err := p.Probe(context.Background(), "/nonexistent/file.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCodecName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"avc1", "h264"},
		{"hev1", "hevc"},
		{"mp4a", "aac"},
		{"Opus", "opus"},
		{"", "N/A"},
		{"xyzw", "xyzw"},
	}
	for _, c := range cases {
		if got := codecName(c.in); got != c.want {
			t.Errorf("codecName(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestGCD(t *testing.T) {
	if got := gcd(1920, 1080); got != 120 {
		t.Errorf("gcd(1920,1080): got %d", got)
	}
	if got := gcd(640, 480); got != 160 {
		t.Errorf("gcd(640,480): got %d", got)
	}
}
