// Package mediainfo holds the probed metadata of a media file and the
// formatted views of it that end up on the scan sheet.
package mediainfo

import "strings"

// Probe is the raw result of introspecting a media file. Adapters fill it
// from ffprobe output or from parsing the container directly.
type Probe struct {
	FileName string
	FilePath string
	FileSize int64
	Duration int // seconds
	Bitrate  int // bits per second

	VideoStreams    []VideoStream
	AudioStreams    []AudioStream
	SubtitleStreams []SubtitleStream
}

// VideoStream describes one video stream. Cover-art streams (png, jpeg,
// mjpeg) are excluded by the probing adapters.
type VideoStream struct {
	CodecName  string
	Profile    string
	PixFmt     string
	ColorRange string
	ColorSpace string
	Width      int
	Height     int
	SAR        string
	DAR        string
	FrameRate  float64
}

// AudioStream describes one audio stream. SampleRate is pre-formatted by
// the prober ("48 kHz"), Channels is the channel count as a string.
type AudioStream struct {
	CodecName     string
	Language      string
	Title         string
	SampleRate    string
	Channels      string
	ChannelLayout string
}

// SubtitleStream describes one subtitle stream.
type SubtitleStream struct {
	CodecName string
	Language  string
	Title     string
}

// JoinUnique joins the distinct values with sep, keeping first-seen order
// and dropping the exclude marker. All-excluded input yields "".
func JoinUnique(values []string, exclude, sep string) string {
	seen := make(map[string]bool, len(values))
	var kept []string
	for _, v := range values {
		if v == exclude || seen[v] {
			continue
		}
		seen[v] = true
		kept = append(kept, v)
	}
	return strings.Join(kept, sep)
}
