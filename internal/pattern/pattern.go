// Package pattern compiles glob patterns into path predicates and answers the
// static questions the task generator asks about them: is a pattern negative,
// is it dynamic, and what is its literal base directory.
//
// Matching is delegated to doublestar; everything here works on slash-separated
// paths regardless of the host OS.
package pattern

import (
	"path"
	"strings"
)

const (
	negationMark = "!"
	globstar     = "**"
)

// Options controls how patterns are interpreted.
type Options struct {
	// CaseSensitive disables case folding in matching and grouping.
	CaseSensitive bool
	// Dot allows wildcards to match names starting with a period.
	Dot bool
}

// IsNegative reports whether the pattern excludes paths.
// A leading "!(" is an extglob group, not a negation.
func IsNegative(pattern string) bool {
	return strings.HasPrefix(pattern, negationMark) && !strings.HasPrefix(pattern, "!(")
}

// Positive strips the negation mark.
func Positive(pattern string) string {
	return strings.TrimPrefix(pattern, negationMark)
}

// IsDynamic reports whether the pattern contains glob magic and therefore needs
// a directory walk. Case-insensitive matching makes every pattern dynamic since
// the literal spelling may not exist on disk.
func IsDynamic(pattern string, opts Options) bool {
	if pattern == "" {
		return false
	}
	if !opts.CaseSensitive || strings.Contains(pattern, `\`) {
		return true
	}
	if strings.ContainsAny(pattern, "*?") || strings.HasPrefix(pattern, negationMark) {
		return true
	}
	if hasCharacterClass(pattern) {
		return true
	}
	return hasBraceExpansion(pattern)
}

func hasCharacterClass(pattern string) bool {
	open := strings.Index(pattern, "[")
	if open == -1 {
		return false
	}
	return strings.Contains(pattern[open+1:], "]")
}

func hasBraceExpansion(pattern string) bool {
	open := strings.Index(pattern, "{")
	if open == -1 {
		return false
	}
	closing := strings.Index(pattern[open+1:], "}")
	if closing == -1 {
		return false
	}
	content := pattern[open : open+1+closing]
	return strings.Contains(content, ",") || strings.Contains(content, "..")
}

// Base returns the longest leading directory of the pattern that contains no
// glob magic. A literal pattern's base is its parent directory; a pattern with
// no directory part has base ".".
func Base(pattern string) string {
	base, _ := SplitBase(pattern)
	return base
}

// SplitBase splits pattern into its unescaped base directory and the pattern
// remainder relative to that base. Trailing slashes stay with the remainder.
func SplitBase(pattern string) (base, rest string) {
	trimmed := strings.TrimRight(pattern, "/")
	if trimmed == "" && pattern != "" {
		return "/", ""
	}

	cut := len(trimmed)
	if i := firstMagic(trimmed); i >= 0 {
		cut = i
	}

	slash := strings.LastIndex(trimmed[:cut], "/")
	switch {
	case slash < 0:
		return ".", pattern
	case slash == 0:
		return "/", pattern[1:]
	}
	return unescape(pattern[:slash]), pattern[slash+1:]
}

// firstMagic returns the index of the first unescaped glob metacharacter or -1.
func firstMagic(pattern string) int {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '*', '?', '[', '{':
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Segments splits a slash-separated pattern or path, dropping empty segments.
func Segments(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// RemoveDuplicateSlashes collapses runs of "/" into one.
func RemoveDuplicateSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// RemoveLeadingDotSegment strips any number of leading "./".
func RemoveLeadingDotSegment(p string) string {
	for strings.HasPrefix(p, "./") && len(p) > 2 {
		p = p[2:]
	}
	return p
}

// AffectsDepth reports whether a negative pattern can exclude a whole
// directory: it ends in "/**" or its last segment is literal.
func AffectsDepth(pattern string) bool {
	if strings.HasSuffix(pattern, "/"+globstar) {
		return true
	}
	return !IsDynamic(path.Base(pattern), Options{CaseSensitive: true})
}

// IsHidden reports whether any segment of the slash path starts with a period.
// For a pattern this means it names a dot segment explicitly, which lets it
// match hidden entries even when Dot is off.
func IsHidden(p string) bool {
	for _, segment := range Segments(p) {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}
	return false
}
