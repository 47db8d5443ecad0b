package diff

import (
	"unicode"
	"unicode/utf8"
)

// SpanKind tags a highlighted run of text.
type SpanKind string

const (
	SpanNormal  SpanKind = "normal"
	SpanAdded   SpanKind = "added"
	SpanRemoved SpanKind = "removed"
)

// Span is a run of text rendered with one highlight.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// WordDiff is the word-level highlighting of a changed line pair.
//
// Spans is the merged inline rendering; its normal+added text equals the new
// line. Old and New are the per-side projections used by split views and
// reproduce the old and new lines exactly. Whitespace is never highlighted.
type WordDiff struct {
	Spans []Span `json:"spans"`
	Old   []Span `json:"old"`
	New   []Span `json:"new"`
}

// Words highlights the words that changed between oldLine and newLine.
//
// Pure insertions and deletions and identical lines are answered without
// running the LCS. Otherwise the cost is quadratic in the token count, see
// WordsLimited for a capped variant.
func Words(oldLine, newLine string) WordDiff {
	switch {
	case oldLine == "" && newLine == "":
		empty := []Span{{Kind: SpanNormal, Text: ""}}
		return WordDiff{Spans: empty, Old: empty, New: empty}
	case oldLine == "":
		return WordDiff{
			Spans: []Span{{Kind: SpanAdded, Text: newLine}},
			Old:   []Span{{Kind: SpanNormal, Text: ""}},
			New:   []Span{{Kind: SpanAdded, Text: newLine}},
		}
	case newLine == "":
		return WordDiff{
			Spans: []Span{{Kind: SpanRemoved, Text: oldLine}},
			Old:   []Span{{Kind: SpanRemoved, Text: oldLine}},
			New:   []Span{{Kind: SpanNormal, Text: ""}},
		}
	case oldLine == newLine:
		same := []Span{{Kind: SpanNormal, Text: newLine}}
		return WordDiff{Spans: same, Old: same, New: same}
	}
	return wordsLCS(tokenize(oldLine), tokenize(newLine))
}

// WordsLimited is Words with a cap on the tokens of either line. Past the cap
// it reports ok=false and the caller should fall back to whole-line
// highlighting.
func WordsLimited(oldLine, newLine string, maxTokens int) (WordDiff, bool) {
	if oldLine == "" || newLine == "" || oldLine == newLine {
		return Words(oldLine, newLine), true
	}
	a, b := tokenize(oldLine), tokenize(newLine)
	if maxTokens > 0 && (len(a) > maxTokens || len(b) > maxTokens) {
		return WordDiff{}, false
	}
	return wordsLCS(a, b), true
}

func wordsLCS(a, b []string) WordDiff {
	var wd spanBuilder
	for _, e := range LCS(a, b) {
		ws := isSpace(e.Token)
		switch e.Kind {
		case EditEqual:
			wd.addInline(SpanNormal, e.Token)
			wd.addOld(SpanNormal, e.Token)
			wd.addNew(SpanNormal, e.Token)
		case EditDelete:
			if ws {
				wd.addOld(SpanNormal, e.Token)
				continue
			}
			wd.addInline(SpanRemoved, e.Token)
			wd.addOld(SpanRemoved, e.Token)
		case EditInsert:
			if ws {
				wd.addInline(SpanNormal, e.Token)
				wd.addNew(SpanNormal, e.Token)
				continue
			}
			wd.addInline(SpanAdded, e.Token)
			wd.addNew(SpanAdded, e.Token)
		}
	}
	return WordDiff{Spans: wd.spans, Old: wd.oldSide, New: wd.newSide}
}

type spanBuilder struct {
	spans, oldSide, newSide []Span
}

func (b *spanBuilder) addInline(k SpanKind, text string) { b.spans = appendSpan(b.spans, k, text) }
func (b *spanBuilder) addOld(k SpanKind, text string) { b.oldSide = appendSpan(b.oldSide, k, text) }
func (b *spanBuilder) addNew(k SpanKind, text string) { b.newSide = appendSpan(b.newSide, k, text) }

// appendSpan merges text into the last span when the kinds match.
func appendSpan(spans []Span, k SpanKind, text string) []Span {
	if n := len(spans); n > 0 && spans[n-1].Kind == k {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Kind: k, Text: text})
}

// tokenize splits s into alternating runs of whitespace and non-whitespace.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	prevSpace := false
	for i, r := range s {
		sp := unicode.IsSpace(r)
		if i > 0 && sp != prevSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		prevSpace = sp
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isSpace(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return tok != "" && unicode.IsSpace(r)
}
