package ffmpegextract

import "testing"

func TestSecondsToHHMMSS(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{75, "00:01:15"},
		{3600, "01:00:00"},
		{5025, "01:23:45"},
	}
	for _, c := range cases {
		if got := secondsToHHMMSS(c.in); got != c.want {
			t.Errorf("secondsToHHMMSS(%d): expected %q, got %q", c.in, c.want, got)
		}
	}
}
