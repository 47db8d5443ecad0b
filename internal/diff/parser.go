package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

type parseState int

const (
	scanningHeader parseState = iota
	inHunk
)

// parser holds the running state of one Parse call.
type parser struct {
	state parseState
	out   ParsedDiff

	sawGitHeader         bool
	gitOld, gitNew       string
	minusPath, plusPath  string
	sawMinus, sawPlus    bool
	minusNull, plusNull  bool
	renameFrom, renameTo string

	// cursors into the current hunk
	oldLine, newLine int
	oldLeft, newLeft int
}

// Parse converts the unified diff of a single file into a ParsedDiff.
//
// Parse never fails: truncated or malformed text yields fewer (or no) hunks
// and a FilePath of "unknown" when no header names the file. A "Binary files
// ... differ" marker short-circuits to IsBinary with no hunks. Text holding
// several files should go through ParseFiles; Parse stops at the second
// "diff --git" header.
func Parse(text string) ParsedDiff {
	p := &parser{out: ParsedDiff{Status: StatusModified, Hunks: []Hunk{}}}

	for _, line := range splitLines(text) {
		if p.state == inHunk {
			if p.consume(line) {
				continue
			}
			p.state = scanningHeader
		}
		if done := p.header(line); done {
			break
		}
	}

	p.finish()
	return p.out
}

// header handles a line outside any hunk. It returns true when parsing
// should stop.
func (p *parser) header(line string) bool {
	switch {
	case strings.HasPrefix(line, "diff --git "):
		if p.sawGitHeader {
			return true
		}
		p.sawGitHeader = true
		if o, n, ok := parseGitHeader(strings.TrimPrefix(line, "diff --git ")); ok {
			p.gitOld, p.gitNew = o, n
		}
	case strings.HasPrefix(line, "new file mode"):
		p.out.Status = StatusAdded
	case strings.HasPrefix(line, "deleted file mode"):
		p.out.Status = StatusDeleted
	case strings.HasPrefix(line, "rename from "):
		p.renameFrom = unquote(strings.TrimPrefix(line, "rename from "))
		p.out.Status = StatusRenamed
	case strings.HasPrefix(line, "rename to "):
		p.renameTo = unquote(strings.TrimPrefix(line, "rename to "))
		p.out.Status = StatusRenamed
	case strings.HasPrefix(line, "--- "):
		p.minusPath, p.minusNull = parseSidePath(strings.TrimPrefix(line, "--- "), "a/")
		p.sawMinus = true
	case strings.HasPrefix(line, "+++ "):
		p.plusPath, p.plusNull = parseSidePath(strings.TrimPrefix(line, "+++ "), "b/")
		p.sawPlus = true
	case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"):
		o, n, oNull, nNull := parseBinaryPaths(line)
		if !p.sawMinus {
			p.minusPath, p.minusNull, p.sawMinus = o, oNull, o != "" || oNull
		}
		if !p.sawPlus {
			p.plusPath, p.plusNull, p.sawPlus = n, nNull, n != "" || nNull
		}
		p.markBinary()
		return true
	case line == "GIT binary patch":
		p.markBinary()
		return true
	case strings.HasPrefix(line, "@@ "):
		p.openHunk(line)
	}
	return false
}

func (p *parser) markBinary() {
	p.out.IsBinary = true
	p.out.Hunks = []Hunk{}
	p.out.Additions = 0
	p.out.Deletions = 0
}

func (p *parser) openHunk(line string) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	h := Hunk{
		OldStart: atoi(m[1], 1),
		OldLines: atoi(m[2], 1),
		NewStart: atoi(m[3], 1),
		NewLines: atoi(m[4], 1),
		Header:   line,
		Section:  m[5],
		Lines:    []DiffLine{},
	}
	p.out.Hunks = append(p.out.Hunks, h)
	p.oldLine, p.newLine = h.OldStart, h.NewStart
	p.oldLeft, p.newLeft = h.OldLines, h.NewLines
	p.state = inHunk
}

// consume attributes line to the open hunk. It returns false for a line that
// does not belong to the hunk, which ends the hunk.
func (p *parser) consume(line string) bool {
	h := &p.out.Hunks[len(p.out.Hunks)-1]

	if strings.HasPrefix(line, `\`) {
		if n := len(h.Lines); n > 0 {
			h.Lines[n-1].NoNewline = true
			return true
		}
		return false
	}
	if p.oldLeft == 0 && p.newLeft == 0 {
		return false
	}

	// Some editors strip the lone space of an empty context line.
	if line == "" {
		line = " "
	}

	switch line[0] {
	case '+':
		if p.newLeft == 0 {
			return false
		}
		h.Lines = append(h.Lines, DiffLine{Type: LineAddition, NewLineNo: intPtr(p.newLine), Content: line[1:]})
		p.newLine++
		p.newLeft--
		p.out.Additions++
	case '-':
		if p.oldLeft == 0 {
			return false
		}
		h.Lines = append(h.Lines, DiffLine{Type: LineDeletion, OldLineNo: intPtr(p.oldLine), Content: line[1:]})
		p.oldLine++
		p.oldLeft--
		p.out.Deletions++
	case ' ':
		if p.oldLeft == 0 || p.newLeft == 0 {
			return false
		}
		h.Lines = append(h.Lines, DiffLine{
			Type:      LineContext,
			OldLineNo: intPtr(p.oldLine),
			NewLineNo: intPtr(p.newLine),
			Content:   line[1:],
		})
		p.oldLine++
		p.newLine++
		p.oldLeft--
		p.newLeft--
	default:
		return false
	}
	return true
}

// finish resolves the file paths and status from whatever headers were seen.
func (p *parser) finish() {
	oldPath, newPath := p.gitOld, p.gitNew
	if p.sawMinus {
		oldPath = p.minusPath
	}
	if p.sawPlus {
		newPath = p.plusPath
	}
	if p.renameFrom != "" {
		oldPath = p.renameFrom
	}
	if p.renameTo != "" {
		newPath = p.renameTo
	}

	switch {
	case p.minusNull && p.out.Status == StatusModified:
		p.out.Status = StatusAdded
	case p.plusNull && p.out.Status == StatusModified:
		p.out.Status = StatusDeleted
	}
	if p.out.Status == StatusAdded {
		oldPath = ""
	}
	if p.out.Status == StatusDeleted {
		newPath = ""
	}

	p.out.OldPath = normalizePath(oldPath)
	p.out.NewPath = normalizePath(newPath)
	switch {
	case p.out.NewPath != "":
		p.out.FilePath = p.out.NewPath
	case p.out.OldPath != "":
		p.out.FilePath = p.out.OldPath
	default:
		p.out.FilePath = UnknownPath
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
