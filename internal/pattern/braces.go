package pattern

import (
	"strconv"
	"strings"
)

// maxRangeSize caps "{1..n}" expansion; larger ranges stay literal.
const maxRangeSize = 1024

// ExpandBraces expands "{a,b}" alternations and "{1..3}" / "{a..e}" ranges into
// separate patterns. Braces without a separator are kept literally.
func ExpandBraces(pattern string) []string {
	open, closing, ok := findBraces(pattern)
	if !ok {
		return []string{pattern}
	}

	prefix, body, suffix := pattern[:open], pattern[open+1:closing], pattern[closing+1:]

	alternatives := splitAlternatives(body)
	if len(alternatives) < 2 {
		expanded, ok := expandRange(body)
		if !ok {
			var out []string
			for _, inner := range ExpandBraces(body) {
				for _, rest := range ExpandBraces(suffix) {
					out = append(out, prefix+"{"+inner+"}"+rest)
				}
			}
			return dedupe(out)
		}
		alternatives = expanded
	}

	var out []string
	for _, alt := range alternatives {
		out = append(out, ExpandBraces(prefix+alt+suffix)...)
	}
	return dedupe(out)
}

// findBraces locates the first unescaped "{" and its matching "}".
func findBraces(pattern string) (int, int, bool) {
	open := -1
	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			if open == -1 {
				open = i
			}
			depth++
		case '}':
			if open == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return open, i, true
			}
		}
	}
	return 0, 0, false
}

// splitAlternatives splits on top-level unescaped commas.
func splitAlternatives(body string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func expandRange(body string) ([]string, bool) {
	from, to, ok := strings.Cut(body, "..")
	if !ok || from == "" || to == "" {
		return nil, false
	}

	if lo, err := strconv.Atoi(from); err == nil {
		hi, err := strconv.Atoi(to)
		if err != nil {
			return nil, false
		}
		return sequence(lo, hi, strconv.Itoa)
	}

	if len(from) == 1 && len(to) == 1 && isLetter(from[0]) && isLetter(to[0]) {
		return sequence(int(from[0]), int(to[0]), func(c int) string { return string(rune(c)) })
	}
	return nil, false
}

func sequence(lo, hi int, format func(int) string) ([]string, bool) {
	step := 1
	if hi < lo {
		step = -1
	}
	if (hi-lo)*step >= maxRangeSize {
		return nil, false
	}

	var out []string
	for v := lo; ; v += step {
		out = append(out, format(v))
		if v == hi {
			break
		}
	}
	return out, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// EscapeBraces makes every unescaped brace literal. Used when brace expansion
// is disabled so the matcher does not treat them as alternation.
func EscapeBraces(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
			continue
		}
		if c == '{' || c == '}' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// DisableGlobstar turns every "**" segment into "*" so it no longer crosses
// directory boundaries.
func DisableGlobstar(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		if segment == globstar {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, "/")
}

// Escape backslash-escapes every character with glob meaning so path can be
// used as a literal pattern.
func Escape(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case strings.IndexByte("()*?[]{|}", c) >= 0:
			b.WriteByte('\\')
		case c == '!' && i == 0:
			b.WriteByte('\\')
		case strings.IndexByte("!+@", c) >= 0 && i+1 < len(path) && path[i+1] == '(':
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
