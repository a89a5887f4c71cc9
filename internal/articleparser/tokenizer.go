package articleparser

import (
	"regexp"
	"strings"

	"NewspaperAnalyzer/internal/domain"
)

var fieldMarkers = []string{domain.MarkerSummary, domain.MarkerPage, domain.MarkerRelevance}

// fieldEnds lists the markers that close each field. The relevance field
// has none and runs to the end of the block.
var fieldEnds = map[string][]string{
	domain.MarkerSummary:   {domain.MarkerPage, domain.MarkerRelevance},
	domain.MarkerPage:      {domain.MarkerRelevance},
	domain.MarkerRelevance: nil,
}

// emphasis matches a single-line **...** span.
var emphasis = regexp.MustCompile(`\*\*([^\n]*?)\*\*`)

// section is one marker occurrence; start is the offset right after the glyph.
type section struct {
	marker string
	start  int
}

// block is one article candidate with the positions of its marker glyphs.
type block struct {
	raw      string
	header   string
	sections []section
}

// tokenize records every marker glyph of a block. Text before the first
// marker is the header.
func tokenize(raw string) block {
	b := block{raw: raw}

	marker, pos := nextMarker(raw, 0)
	if pos < 0 {
		b.header = raw
		return b
	}
	b.header = raw[:pos]

	for pos >= 0 {
		start := pos + len(marker)
		b.sections = append(b.sections, section{marker: marker, start: start})
		marker, pos = nextMarker(raw, start)
	}

	return b
}

func nextMarker(s string, from int) (string, int) {
	return firstOf(s, from, fieldMarkers)
}

func firstOf(s string, from int, markers []string) (string, int) {
	best, bestPos := "", -1
	for _, m := range markers {
		if i := strings.Index(s[from:], m); i >= 0 && (bestPos < 0 || from+i < bestPos) {
			best, bestPos = m, from+i
		}
	}
	return best, bestPos
}

// section returns the field introduced by the first occurrence of marker.
// It runs up to the first of the marker's closing glyphs, so other glyphs
// inside the field are kept as text.
func (b block) section(marker string) (string, bool) {
	for _, s := range b.sections {
		if s.marker != marker {
			continue
		}
		end := len(b.raw)
		if _, pos := firstOf(b.raw, s.start, fieldEnds[marker]); pos >= 0 {
			end = pos
		}
		return b.raw[s.start:end], true
	}
	return "", false
}

// title returns the first non-empty emphasized span of the block.
func (b block) title() (string, bool) {
	for _, m := range emphasis.FindAllStringSubmatch(b.raw, -1) {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t, true
		}
	}
	return "", false
}

func (b block) summary() (string, bool) {
	text, ok := b.section(domain.MarkerSummary)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(text), true
}

// page reads the value after the page label; the label may follow other text.
func (b block) page() (string, bool) {
	text, ok := b.section(domain.MarkerPage)
	if !ok {
		return "", false
	}
	for _, label := range domain.PageLabels {
		if i := strings.Index(text, label); i >= 0 {
			value := strings.TrimSpace(text[i+len(label):])
			return value, value != ""
		}
	}
	return "", false
}

// relevance reads the value after the relevance label, which must open the section.
func (b block) relevance() (string, bool) {
	text, ok := b.section(domain.MarkerRelevance)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	for _, label := range domain.RelevanceLabels {
		if rest, found := strings.CutPrefix(text, label); found {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
