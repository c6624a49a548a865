package upload

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// allowedExtensions lists the lowercase suffixes accepted for attachments.
var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// File is a submitted file as received from a form or API call.
type File struct {
	Name    string
	Content io.Reader
}

// Present reports whether a file was actually submitted.
func (f *File) Present() bool {
	return f != nil && f.Content != nil && f.Name != ""
}

// Allowed reports whether the original file name carries a whitelisted extension.
func Allowed(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(name[idx+1:])]
	return ok
}

var asciiOnly = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
})))

// SecureFilename reduces name to a flat, ASCII-only file name that is safe
// to join to the upload directory. It returns "" when nothing usable is left.
func SecureFilename(name string) string {
	name = baseName(name)
	normalized, _, err := transform.String(asciiOnly, name)
	if err != nil {
		return ""
	}
	normalized = strings.Join(strings.Fields(normalized), "_")

	var b strings.Builder
	for _, r := range normalized {
		if isSafeRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// ActivityFilename names an attachment stored when an activity is created.
func ActivityFilename(serial int, original string) string {
	safe := SecureFilename(original)
	if safe == "" {
		return ""
	}
	return fmt.Sprintf("%d_%s", serial, safe)
}

// LogFilename names a file attached to an update log entry.
func LogFilename(serial int, at time.Time, original string) string {
	safe := SecureFilename(original)
	if safe == "" {
		return ""
	}
	return fmt.Sprintf("log_%d_%s_%s", serial, at.Format("20060102150405"), safe)
}

func baseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	default:
		return false
	}
}
