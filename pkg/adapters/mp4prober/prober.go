// Package mp4prober probes MP4 containers natively with mp4ff, for systems
// without ffprobe installed.
package mp4prober

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/scansheet/pkg/mediainfo"
	"github.com/user/scansheet/pkg/ports"
)

// Prober implements ports.Prober by walking the moov box of a progressive
// MP4 file. Color and profile details are not recoverable this way and
// resolve to the N/A marker.
type Prober struct {
	fs ports.FileSystem
}

// New creates a new Prober.
func New(fs ports.FileSystem) *Prober {
	return &Prober{fs: fs}
}

// Available always reports true; parsing needs no external tool.
func (p *Prober) Available() bool { return true }

// Probe parses the MP4 container and resolves its track metadata.
func (p *Prober) Probe(ctx context.Context, path string) (mediainfo.Probe, error) {
	size, err := p.fs.FileSize(path)
	if err != nil {
		return mediainfo.Probe{}, fmt.Errorf("stat input file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return mediainfo.Probe{}, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return mediainfo.Probe{}, fmt.Errorf("decode mp4 %s: %w", path, err)
	}
	if mp4File.Moov == nil {
		return mediainfo.Probe{}, fmt.Errorf("mp4 %s has no moov box", path)
	}

	probe := mediainfo.Probe{
		FileName: filepath.Base(path),
		FilePath: path,
		FileSize: size,
	}

	moov := mp4File.Moov
	var durationSec float64
	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		durationSec = float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale)
		probe.Duration = int(durationSec)
	}
	if durationSec > 0 {
		probe.Bitrate = int(float64(size) * 8 / durationSec)
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}

		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			probe.VideoStreams = append(probe.VideoStreams, videoStream(trak))
		case "soun":
			probe.AudioStreams = append(probe.AudioStreams, mediainfo.AudioStream{
				CodecName:     codecName(sampleEntryType(trak)),
				Language:      trackLanguage(trak),
				Title:         "N/A",
				SampleRate:    "N/A",
				Channels:      "N/A",
				ChannelLayout: "N/A",
			})
		case "sbtl", "subt", "text":
			probe.SubtitleStreams = append(probe.SubtitleStreams, mediainfo.SubtitleStream{
				CodecName: codecName(sampleEntryType(trak)),
				Language:  trackLanguage(trak),
				Title:     "N/A",
			})
		}
	}

	return probe, nil
}

var _ ports.Prober = (*Prober)(nil)

func videoStream(trak *mp4.TrakBox) mediainfo.VideoStream {
	stream := mediainfo.VideoStream{
		CodecName:  codecName(sampleEntryType(trak)),
		Profile:    "N/A",
		PixFmt:     "N/A",
		ColorRange: "N/A",
		ColorSpace: "N/A",
		SAR:        "1:1",
	}

	if trak.Tkhd != nil {
		// Track header dimensions are 16.16 fixed point.
		stream.Width = int(trak.Tkhd.Width >> 16)
		stream.Height = int(trak.Tkhd.Height >> 16)
	}
	if stream.Width > 0 && stream.Height > 0 {
		d := gcd(stream.Width, stream.Height)
		stream.DAR = fmt.Sprintf("%d:%d", stream.Width/d, stream.Height/d)
	}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 && mdhd.Duration > 0 {
		if count := sampleCount(trak); count > 0 {
			seconds := float64(mdhd.Duration) / float64(mdhd.Timescale)
			stream.FrameRate = float64(count) / seconds
		}
	}

	return stream
}

// sampleEntryType returns the four-character code of the track's first
// sample description ("avc1", "mp4a", ...), or "" when missing.
func sampleEntryType(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	children := trak.Mdia.Minf.Stbl.Stsd.Children
	if len(children) == 0 {
		return ""
	}
	return children[0].Type()
}

func sampleCount(trak *mp4.TrakBox) int {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsz == nil {
		return 0
	}
	return int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
}

func trackLanguage(trak *mp4.TrakBox) string {
	if trak.Mdia.Mdhd == nil {
		return "N/A"
	}
	lang := trak.Mdia.Mdhd.GetLanguage()
	if lang == "" {
		return "N/A"
	}
	return lang
}

// codecName maps sample entry codes to the codec names ffprobe reports, so
// sheets look the same whichever prober ran.
func codecName(entryType string) string {
	switch entryType {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	case "mp4a":
		return "aac"
	case "ac-3":
		return "ac3"
	case "ec-3":
		return "eac3"
	case "Opus":
		return "opus"
	case "fLaC":
		return "flac"
	case "tx3g", "text":
		return "mov_text"
	case "wvtt":
		return "webvtt"
	case "stpp":
		return "ttml"
	case "":
		return "N/A"
	default:
		return entryType
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
