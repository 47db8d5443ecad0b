package diff

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const devNull = "/dev/null"

// normalizePath folds decomposed (NFD) file names, as written by macOS, into
// NFC so the same file compares equal across platforms.
func normalizePath(p string) string {
	return norm.NFC.String(p)
}

// unquote undoes git's C-style quoting of paths with special characters.
func unquote(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// parseSidePath extracts the path from the remainder of a "--- " or "+++ "
// line. isNull is true for /dev/null.
func parseSidePath(rest, prefix string) (path string, isNull bool) {
	// Plain diff(1) output appends a tab and a timestamp.
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = rest[:i]
	}
	rest = unquote(strings.TrimRight(rest, " "))
	if rest == devNull {
		return "", true
	}
	return strings.TrimPrefix(rest, prefix), false
}

// parseGitHeader splits the remainder of a "diff --git " line into its a/ and
// b/ paths. Unquoted paths may contain spaces, so when several " b/" splits
// are possible the one yielding identical sides wins.
func parseGitHeader(rest string) (oldPath, newPath string, ok bool) {
	if strings.HasPrefix(rest, `"`) {
		end := closingQuote(rest)
		if end < 0 {
			return "", "", false
		}
		left := unquote(rest[:end+1])
		right := unquote(strings.TrimSpace(rest[end+1:]))
		return strings.TrimPrefix(left, "a/"), strings.TrimPrefix(right, "b/"), true
	}
	if !strings.HasPrefix(rest, "a/") {
		return "", "", false
	}

	first := -1
	for i := 0; ; {
		j := strings.Index(rest[i:], " b/")
		if j < 0 {
			break
		}
		split := i + j
		if first < 0 {
			first = split
		}
		if rest[2:split] == rest[split+3:] {
			return rest[2:split], rest[split+3:], true
		}
		i = split + 1
	}
	if first < 0 {
		// Quoted new side only.
		if k := strings.Index(rest, ` "`); k >= 0 {
			return rest[2:k], strings.TrimPrefix(unquote(rest[k+1:]), "b/"), true
		}
		return "", "", false
	}
	return rest[2:first], rest[first+3:], true
}

func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// parseBinaryPaths reads "Binary files A and B differ".
func parseBinaryPaths(line string) (oldPath, newPath string, oldNull, newNull bool) {
	body := strings.TrimSuffix(strings.TrimPrefix(line, "Binary files "), " differ")
	i := strings.Index(body, " and ")
	if i < 0 {
		return "", "", false, false
	}
	oldPath, oldNull = parseSidePath(body[:i], "a/")
	newPath, newNull = parseSidePath(body[i+5:], "b/")
	return oldPath, newPath, oldNull, newNull
}
