// Package chunker splits long documents into bounded, paragraph-aligned
// segments for the language model.
package chunker

import (
	"errors"
	"strings"

	"NewspaperAnalyzer/internal/domain"
)

// DefaultMaxSize is the chunk size used for newspaper text, in characters.
const DefaultMaxSize = 15000

// ErrInvalidSize is returned for a non-positive maximum size.
var ErrInvalidSize = errors.New("chunk size must be > 0")

// Split cuts text into chunks of at most maxSize characters. A chunk ends at
// the last paragraph break inside the window when one exists after the
// cursor; otherwise it is cut at the hard limit. Chunk texts are trimmed and
// empty chunks are dropped. Page markers may end up split; callers must not
// rely on them staying intact.
func Split(text string, maxSize int) ([]domain.Chunk, error) {
	if maxSize <= 0 {
		return nil, ErrInvalidSize
	}

	runes := []rune(text)
	var chunks []domain.Chunk

	for cursor := 0; cursor < len(runes); {
		end := min(cursor+maxSize, len(runes))

		if end < len(runes) {
			if brk := lastParagraphBreak(runes, cursor, end); brk > cursor {
				end = brk
			}
		}

		if chunk := strings.TrimSpace(string(runes[cursor:end])); chunk != "" {
			chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: chunk})
		}
		cursor = end
	}

	return chunks, nil
}

// lastParagraphBreak returns the start of the last "\n\n" lying entirely in
// runes[from:to], or -1.
func lastParagraphBreak(runes []rune, from, to int) int {
	for i := to - 2; i >= from; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i
		}
	}
	return -1
}
