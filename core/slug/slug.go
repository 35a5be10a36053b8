// Package slug derives output filenames from an entry's date and title.
//
// Names are deterministic: the same (date, title) pair always maps to the
// same name, so two entries that share both collide and the later write
// wins.
package slug

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

const (
	// MaxStemLength bounds the filename without its extension, in runes.
	MaxStemLength = 50
	// Extension is appended to every generated name.
	Extension = ".md"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	illegal    = regexp.MustCompile(`[/?<>\\:*|"]`)
	control    = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reserved   = regexp.MustCompile(`^\.+$`)
	windows    = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	trailing   = regexp.MustCompile(`[. ]+$`)
)

// For returns "<YYYY-MM-DD>-<title>" made safe for a single path
// component, cut to MaxStemLength runes, with Extension appended.
// An empty or unparseable date leaves the date segment empty.
func For(date, title string) string {
	stem := Sanitize(FormatDate(date) + "-" + whitespace.ReplaceAllString(strings.ToLower(title), "-"))
	return truncate(stem, MaxStemLength) + Extension
}

// FormatDate renders date as YYYY-MM-DD in UTC, or "" when it does not
// parse as an instant.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	t, err := dateparse.ParseIn(date, time.UTC)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// Sanitize removes everything that cannot appear in a file name on common
// filesystems: path separators, reserved punctuation, control characters,
// dot-only and Windows device names, and trailing dots or spaces.
func Sanitize(name string) string {
	name = illegal.ReplaceAllString(name, "")
	name = control.ReplaceAllString(name, "")
	name = reserved.ReplaceAllString(name, "")
	name = windows.ReplaceAllString(name, "")
	return trailing.ReplaceAllString(name, "")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
