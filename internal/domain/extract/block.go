package extract

import (
	"sort"
	"strings"
)

// Block is a brace-delimited span of text. Open is the offset of the opening
// '{' and Close the offset of its matching '}'.
type Block struct {
	Open  int
	Close int
}

// Contains reports whether offset lies strictly inside the block.
func (b Block) Contains(offset int) bool {
	return offset > b.Open && offset < b.Close
}

// Encloses reports whether other sits strictly inside b.
func (b Block) Encloses(other Block) bool {
	return other.Open > b.Open && other.Close < b.Close
}

// Body returns the text between the braces.
func (b Block) Body(text string) string {
	return text[b.Open+1 : b.Close]
}

// FindBlock locates the block that follows a declaration ending at from.
// The header between from and the first '{' must not contain a ';', which
// marks a declaration without a body. The block closes when the running
// brace balance returns to zero. Braces inside strings and comments are
// counted like any other.
func FindBlock(text string, from int) (Block, bool) {
	if from < 0 || from > len(text) {
		return Block{}, false
	}
	rel := strings.IndexAny(text[from:], "{;")
	if rel < 0 || text[from+rel] == ';' {
		return Block{}, false
	}
	open := from + rel

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return Block{Open: open, Close: i}, true
			}
		}
	}
	return Block{}, false
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) line(offset int) int {
	return sort.Search(len(l), func(i int) bool { return l[i] > offset })
}
