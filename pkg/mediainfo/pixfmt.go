package mediainfo

type pixFmtSpec struct {
	depth    int
	channels int
}

// pixFmtTable maps ffmpeg pixel format names to their typical component
// depth and channel count. Covers the formats seen in distribution files;
// packed RGB variants share an entry per channel count.
var pixFmtTable = map[string]pixFmtSpec{
	"yuv410p":        {8, 3},
	"yuv411p":        {8, 3},
	"yuv420p":        {8, 3},
	"yuvj420p":       {8, 3},
	"yuv422p":        {8, 3},
	"yuvj422p":       {8, 3},
	"yuv444p":        {8, 3},
	"yuvj444p":       {8, 3},
	"nv12":           {8, 3},
	"nv21":           {8, 3},
	"yuv420p10le":    {10, 3},
	"yuv422p10le":    {10, 3},
	"yuv444p10le":    {10, 3},
	"yuv420p12le":    {12, 3},
	"yuv422p12le":    {12, 3},
	"yuv444p12le":    {12, 3},
	"p010le":         {10, 3},
	"yuva420p":       {8, 4},
	"yuva420p10le":   {10, 4},
	"gray":           {8, 1},
	"gray10le":       {10, 1},
	"gray16le":       {16, 1},
	"monob":          {1, 1},
	"monow":          {1, 1},
	"rgb24":          {8, 3},
	"bgr24":          {8, 3},
	"gbrp":           {8, 3},
	"gbrp10le":       {10, 3},
	"gbrp12le":       {12, 3},
	"rgba":           {8, 4},
	"bgra":           {8, 4},
	"argb":           {8, 4},
	"abgr":           {8, 4},
	"rgb48le":        {16, 3},
	"rgba64le":       {16, 4},
	"pal8":           {8, 1},
	"ya8":            {8, 2},
	"vuya":           {8, 4},
	"x2rgb10le":      {10, 3},
	"yuv420p16le":    {16, 3},
	"yuv422p16le":    {16, 3},
	"yuv444p16le":    {16, 3},
	"uyvy422":        {8, 3},
	"yuyv422":        {8, 3},
}

// pixelFormatDepthChannels looks up the typical depth and channel count of
// a pixel format. Unknown formats fall back to 8-bit 3-channel rather than
// failing the whole probe.
func pixelFormatDepthChannels(pixFmt string) (depth, channels int) {
	if spec, ok := pixFmtTable[pixFmt]; ok {
		return spec.depth, spec.channels
	}
	return 8, 3
}
