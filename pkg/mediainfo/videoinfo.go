package mediainfo

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// VideoInfo wraps a Probe and exposes the display strings the sheet header
// shows. Audio and subtitle values are aggregated over all streams of their
// kind; video values come from the active video stream.
type VideoInfo struct {
	probe  Probe
	active int

	audioCodec      string
	audioLang       string
	audioTitle      string
	audioSampleRate string
	audioChannel    string

	subtitleCodec string
	subtitleLang  string
	subtitleTitle string
}

// NewVideoInfo builds a VideoInfo with stream 0 active. It fails when the
// probe found no usable video stream.
func NewVideoInfo(probe Probe) (*VideoInfo, error) {
	v := &VideoInfo{probe: probe}

	codecs := make([]string, 0, len(probe.AudioStreams))
	langs := make([]string, 0, len(probe.AudioStreams))
	titles := make([]string, 0, len(probe.AudioStreams))
	rates := make([]string, 0, len(probe.AudioStreams))
	channels := make([]string, 0, len(probe.AudioStreams))
	layouts := make([]string, 0, len(probe.AudioStreams))
	for _, s := range probe.AudioStreams {
		codecs = append(codecs, s.CodecName)
		langs = append(langs, s.Language)
		titles = append(titles, s.Title)
		rates = append(rates, s.SampleRate)
		channels = append(channels, s.Channels)
		layouts = append(layouts, s.ChannelLayout)
	}
	v.audioCodec = JoinUnique(codecs, "N/A", "/")
	v.audioLang = JoinUnique(langs, "N/A", "/")
	v.audioTitle = JoinUnique(titles, "N/A", "/")
	v.audioSampleRate = JoinUnique(rates, "N/A", "/")
	v.audioChannel = fmt.Sprintf("%s(%s@%s)",
		JoinUnique(layouts, "N/A", "/"),
		JoinUnique(channels, "N/A", "/"),
		v.audioSampleRate)

	subCodecs := make([]string, 0, len(probe.SubtitleStreams))
	subLangs := make([]string, 0, len(probe.SubtitleStreams))
	subTitles := make([]string, 0, len(probe.SubtitleStreams))
	for _, s := range probe.SubtitleStreams {
		subCodecs = append(subCodecs, s.CodecName)
		subLangs = append(subLangs, s.Language)
		subTitles = append(subTitles, s.Title)
	}
	v.subtitleCodec = JoinUnique(subCodecs, "N/A", "/")
	v.subtitleLang = JoinUnique(subLangs, "N/A", "/")
	v.subtitleTitle = JoinUnique(subTitles, "N/A", "/")

	if err := v.SetActiveStream(0); err != nil {
		return nil, err
	}
	return v, nil
}

// SetActiveStream selects the video stream the sheet describes and samples
// from.
func (v *VideoInfo) SetActiveStream(index int) error {
	if len(v.probe.VideoStreams) == 0 {
		return fmt.Errorf("no video streams available")
	}
	if index < 0 || index >= len(v.probe.VideoStreams) {
		return fmt.Errorf("video stream %d is not available (file has %d)", index, len(v.probe.VideoStreams))
	}
	v.active = index
	return nil
}

// ActiveStreamIndex returns the selected video stream index.
func (v *VideoInfo) ActiveStreamIndex() int { return v.active }

// ActiveStream returns the selected video stream.
func (v *VideoInfo) ActiveStream() VideoStream { return v.probe.VideoStreams[v.active] }

// FileName returns the base name of the probed file.
func (v *VideoInfo) FileName() string { return v.probe.FileName }

// FilePath returns the full path of the probed file.
func (v *VideoInfo) FilePath() string { return v.probe.FilePath }

// Duration returns the container duration in whole seconds.
func (v *VideoInfo) Duration() int { return v.probe.Duration }

// Width returns the active stream's frame width in pixels.
func (v *VideoInfo) Width() int { return v.ActiveStream().Width }

// Height returns the active stream's frame height in pixels.
func (v *VideoInfo) Height() int { return v.ActiveStream().Height }

// FileSizeMiB formats the file size as "1,234.56 MiB".
func (v *VideoInfo) FileSizeMiB() string {
	return numberPrinter.Sprintf("%.2f MiB", float64(v.probe.FileSize)/1024/1024)
}

// DurationString formats the duration as H:MM:SS with unpadded hours.
func (v *VideoInfo) DurationString() string {
	d := v.probe.Duration
	return fmt.Sprintf("%d:%02d:%02d", d/3600, d%3600/60, d%60)
}

// BitrateKbps formats the overall bitrate as "4,321.00 kbps".
func (v *VideoInfo) BitrateKbps() string {
	return numberPrinter.Sprintf("%.2f kbps", float64(v.probe.Bitrate)/1000)
}

// VideoCodec formats the active stream's codec as
// "h264 (High, 3x8bit)" with channels and depth taken from the pixel
// format.
func (v *VideoInfo) VideoCodec() string {
	s := v.ActiveStream()
	depth, channels := pixelFormatDepthChannels(s.PixFmt)
	return fmt.Sprintf("%s (%s, %dx%dbit)", s.CodecName, s.Profile, channels, depth)
}

// VideoColor formats the active stream's pixel format and color tags as
// "yuv420p (tv, bt709)".
func (v *VideoInfo) VideoColor() string {
	s := v.ActiveStream()
	return fmt.Sprintf("%s (%s, %s)", s.PixFmt, s.ColorRange, s.ColorSpace)
}

// FrameSize formats the active stream's dimensions as
// "1920x1080 (1:1/16:9)". Aspect ratios with a component over two digits
// are shortened to a two-decimal quotient.
func (v *VideoInfo) FrameSize() string {
	s := v.ActiveStream()
	return fmt.Sprintf("%dx%d (%s/%s)", s.Width, s.Height, shortAspectRatio(s.SAR), shortAspectRatio(s.DAR))
}

// FrameRateString formats the active stream's frame rate as "23.98 fps".
func (v *VideoInfo) FrameRateString() string {
	return fmt.Sprintf("%.2f fps", v.ActiveStream().FrameRate)
}

// Resolve maps each field group to its display key/value pairs. "F" is the
// file, "V" the active video stream, "A" the aggregated audio streams and
// "S" the aggregated subtitle streams.
func (v *VideoInfo) Resolve() map[string]map[string]string {
	return map[string]map[string]string{
		"F": {
			"name":     v.probe.FileName,
			"size":     v.FileSizeMiB(),
			"duration": v.DurationString(),
			"bitrate":  v.BitrateKbps(),
		},
		"V": {
			"codec":     v.VideoCodec(),
			"color":     v.VideoColor(),
			"frameSize": v.FrameSize(),
			"frameRate": v.FrameRateString(),
		},
		"A": {
			"codec":      v.audioCodec,
			"lang":       v.audioLang,
			"title":      v.audioTitle,
			"sampleRate": v.audioSampleRate,
			"channel":    v.audioChannel,
		},
		"S": {
			"codec": v.subtitleCodec,
			"lang":  v.subtitleLang,
			"title": v.subtitleTitle,
		},
	}
}

// Lookup resolves one display value by field group and key, failing on
// unknown names so configuration mistakes surface instead of rendering an
// empty cell.
func (v *VideoInfo) Lookup(field, key string) (string, error) {
	group, ok := v.Resolve()[field]
	if !ok {
		return "", fmt.Errorf("unknown metadata field %q", field)
	}
	value, ok := group[key]
	if !ok {
		return "", fmt.Errorf("unknown metadata key %q in field %q", key, field)
	}
	return value, nil
}

// Summary returns the human-readable metadata lines for console output.
func (v *VideoInfo) Summary() []string {
	return []string{
		fmt.Sprintf("File Name: %s", v.probe.FileName),
		fmt.Sprintf("File Size:        %s", v.FileSizeMiB()),
		fmt.Sprintf("Duration:         %s", v.DurationString()),
		fmt.Sprintf("Bitrate:          %s", v.BitrateKbps()),
		fmt.Sprintf("Audio Codec:      %s", v.audioCodec),
		fmt.Sprintf("Audio Language:   %s", v.audioLang),
		fmt.Sprintf("Audio Title:      %s", v.audioTitle),
		fmt.Sprintf("Video Codec:      %s", v.VideoCodec()),
		fmt.Sprintf("Video color:      %s", v.VideoColor()),
		fmt.Sprintf("Frame Size:       %s", v.FrameSize()),
		fmt.Sprintf("Framerate:        %s", v.FrameRateString()),
		fmt.Sprintf("Subtitle Codec:   %s", v.subtitleCodec),
		fmt.Sprintf("Subtitle Language:%s", v.subtitleLang),
		fmt.Sprintf("Subtitle Title:   %s", v.subtitleTitle),
	}
}

// shortAspectRatio shortens ratios like "186:157" to "1.18" while leaving
// compact ones like "16:9" alone. Unparseable input passes through.
func shortAspectRatio(ratio string) string {
	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return ratio
	}
	if len(parts[0]) <= 2 && len(parts[1]) <= 2 {
		return ratio
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return ratio
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return ratio
	}
	return fmt.Sprintf("%.2f", num/den)
}
