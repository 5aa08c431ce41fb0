package ffprober

import (
	"testing"
)

const sampleJSON = `{
  "streams": [
    {
      "codec_type": "video",
      "codec_name": "h264",
      "profile": "High",
      "pix_fmt": "yuv420p",
      "color_range": "tv",
      "color_space": "bt709",
      "width": 1920,
      "height": 1080,
      "sample_aspect_ratio": "1:1",
      "display_aspect_ratio": "16:9",
      "avg_frame_rate": "24000/1001"
    },
    {
      "codec_type": "video",
      "codec_name": "mjpeg",
      "width": 600,
      "height": 600,
      "avg_frame_rate": "0/0"
    },
    {
      "codec_type": "audio",
      "codec_name": "aac",
      "sample_rate": "48000",
      "channels": 2,
      "channel_layout": "stereo",
      "tags": {"language": "eng", "title": "Commentary"}
    },
    {
      "codec_type": "audio",
      "codec_name": "ac3",
      "sample_rate": "44100",
      "channels": 6,
      "channel_layout": "5.1"
    },
    {
      "codec_type": "subtitle",
      "codec_name": "subrip",
      "tags": {"language": "jpn"}
    }
  ],
  "format": {
    "duration": "3671.400000",
    "bit_rate": "2500000"
  }
}`

func TestParseOutput(t *testing.T) {
	probe, err := parseOutput([]byte(sampleJSON), "movie.mkv", "/v/movie.mkv", 1024)
	if err != nil {
		t.Fatalf("parseOutput: %v", err)
	}

	if probe.FileName != "movie.mkv" || probe.FileSize != 1024 {
		t.Errorf("file info: %+v", probe)
	}
	if probe.Duration != 3671 {
		t.Errorf("duration: expected 3671, got %d", probe.Duration)
	}
	if probe.Bitrate != 2500000 {
		t.Errorf("bitrate: got %d", probe.Bitrate)
	}

	// The mjpeg cover art stream is skipped.
	if len(probe.VideoStreams) != 1 {
		t.Fatalf("video streams: expected 1, got %d", len(probe.VideoStreams))
	}
	v := probe.VideoStreams[0]
	if v.CodecName != "h264" || v.Width != 1920 || v.Height != 1080 {
		t.Errorf("video stream: %+v", v)
	}
	if v.FrameRate < 23.97 || v.FrameRate > 23.98 {
		t.Errorf("frame rate: got %g", v.FrameRate)
	}

	if len(probe.AudioStreams) != 2 {
		t.Fatalf("audio streams: expected 2, got %d", len(probe.AudioStreams))
	}
	a := probe.AudioStreams[0]
	if a.SampleRate != "48 kHz" || a.Channels != "2" || a.Language != "eng" {
		t.Errorf("audio stream 0: %+v", a)
	}
	// Missing tags resolve to the N/A marker.
	if probe.AudioStreams[1].Language != "N/A" || probe.AudioStreams[1].Title != "N/A" {
		t.Errorf("audio stream 1: %+v", probe.AudioStreams[1])
	}
	if probe.AudioStreams[1].SampleRate != "44 kHz" {
		t.Errorf("audio stream 1 sample rate: %q", probe.AudioStreams[1].SampleRate)
	}

	if len(probe.SubtitleStreams) != 1 {
		t.Fatalf("subtitle streams: expected 1, got %d", len(probe.SubtitleStreams))
	}
	if probe.SubtitleStreams[0].Language != "jpn" || probe.SubtitleStreams[0].Title != "N/A" {
		t.Errorf("subtitle stream: %+v", probe.SubtitleStreams[0])
	}
}

func TestParseOutput_BadJSON(t *testing.T) {
	if _, err := parseOutput([]byte("not json"), "f", "/f", 0); err == nil {
		t.Error("expected error for undecodable output")
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"0/0", 0},
		{"0/1", 0},
		{"", 0},
		{"abc/def", 0},
	}
	for _, c := range cases {
		if got := parseFrameRate(c.in); got != c.want {
			t.Errorf("parseFrameRate(%q): expected %g, got %g", c.in, c.want, got)
		}
	}
}

func TestFormatSampleRate(t *testing.T) {
	if got := formatSampleRate("48000"); got != "48 kHz" {
		t.Errorf("got %q", got)
	}
	if got := formatSampleRate(""); got != "N/A" {
		t.Errorf("got %q", got)
	}
}
