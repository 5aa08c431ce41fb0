package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var placeholderPattern = regexp.MustCompile(`\{([^:{}]+)(?::([^{}]+))?\}`)

// ValidateOutputFormat checks an output filename format: it must end in
// .png and may only use the {timestamp[:directives]} and {file_name}
// placeholders.
func ValidateOutputFormat(format string) error {
	if !strings.HasSuffix(format, ".png") {
		return fmt.Errorf("output_filename_format must end with .png, got %q", format)
	}
	for _, match := range placeholderPattern.FindAllStringSubmatch(format, -1) {
		field, directives := match[1], match[2]
		switch field {
		case "file_name":
		case "timestamp":
			if directives != "" {
				if _, err := formatTimestamp(directives, time.Time{}); err != nil {
					return fmt.Errorf("output_filename_format: %w", err)
				}
			}
		default:
			return fmt.Errorf("unknown placeholder {%s} in output_filename_format %q", field, format)
		}
	}
	return nil
}

// ExpandOutputName renders an output filename format with the given source
// file name and timestamp. The format must have passed ValidateOutputFormat.
func ExpandOutputName(format, fileName string, now time.Time) (string, error) {
	var expandErr error
	expanded := placeholderPattern.ReplaceAllStringFunc(format, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		field, directives := groups[1], groups[2]
		switch field {
		case "file_name":
			return fileName
		case "timestamp":
			if directives == "" {
				directives = "%H%M%S"
			}
			value, err := formatTimestamp(directives, now)
			if err != nil {
				expandErr = err
				return match
			}
			return value
		default:
			expandErr = fmt.Errorf("unknown placeholder {%s}", field)
			return match
		}
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

// formatTimestamp renders the strftime-style directives used in output
// filename formats. Only date and time directives are supported.
func formatTimestamp(layout string, t time.Time) (string, error) {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			b.WriteByte(layout[i])
			continue
		}
		i++
		if i >= len(layout) {
			return "", fmt.Errorf("timestamp format ends with a bare %%")
		}
		switch layout[i] {
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'M':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&b, "%02d", t.Second())
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("unsupported timestamp directive %%%c", layout[i])
		}
	}
	return b.String(), nil
}
