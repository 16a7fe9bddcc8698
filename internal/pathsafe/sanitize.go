package pathsafe

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxComponentLength is the byte limit for a single path component.
	MaxComponentLength = 255

	// Placeholder replaces names that sanitize to nothing.
	Placeholder = "unnamed"

	reservedSuffix = "_safe"
)

var (
	illegalChars     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	repeatedUnders   = regexp.MustCompile(`_{2,}`)
	repeatedSpaces   = regexp.MustCompile(`\s+`)
	extensionPattern = regexp.MustCompile(`^\.[\p{L}\p{N}]{1,16}$`)
)

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true, "CLOCK$": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Sanitize turns free-form text into a single filesystem-safe path component.
//
// Characters that are illegal on Windows or POSIX filesystems become "_",
// runs of "_" and whitespace collapse, and leading/trailing separators and
// dots are trimmed. Reserved device names get a "_safe" suffix. The result is
// truncated to MaxComponentLength bytes; when preserveExt is set the
// extension survives truncation. Sanitize never returns an empty string.
func Sanitize(raw string, preserveExt bool) string {
	name := norm.NFKC.String(raw)

	ext := ""
	if preserveExt {
		if i := strings.LastIndex(name, "."); i > 0 && extensionPattern.MatchString(name[i:]) {
			ext = name[i:]
			name = name[:i]
		}
	}

	name = illegalChars.ReplaceAllString(name, "_")
	name = repeatedUnders.ReplaceAllString(name, "_")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	name = strings.Trim(name, "_. ")

	if name == "" {
		name = Placeholder
	}

	if reservedNames[strings.ToUpper(name)] {
		name += reservedSuffix
	}

	name = Truncate(name, MaxComponentLength-len(ext))
	return name + ext
}

// Truncate cuts s to at most limit bytes without splitting a rune and trims
// trailing separators left at the cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], "_. ")
}
