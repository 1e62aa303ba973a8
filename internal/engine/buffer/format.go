package buffer

import "strings"

// Format is a line-ending convention.
type Format uint8

const (
	// FormatUnix terminates lines with "\n".
	FormatUnix Format = iota
	// FormatDos terminates lines with "\r\n".
	FormatDos
	// FormatMac terminates lines with "\r".
	FormatMac
)

func (f Format) String() string {
	switch f {
	case FormatDos:
		return "dos"
	case FormatMac:
		return "mac"
	default:
		return "unix"
	}
}

// Newline returns the line terminator for the format.
func (f Format) Newline() string {
	switch f {
	case FormatDos:
		return "\r\n"
	case FormatMac:
		return "\r"
	default:
		return "\n"
	}
}

// ParseFormat maps a format name to a Format, defaulting to unix.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "dos", "crlf":
		return FormatDos
	case "mac", "cr":
		return FormatMac
	default:
		return FormatUnix
	}
}

// trimNewline returns s without its trailing line terminator, along
// with the number of chars removed. All three conventions are
// recognized regardless of the buffer's own format.
func trimNewline(s string) (string, int) {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2], 2
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1], 1
	}
	return s, 0
}
