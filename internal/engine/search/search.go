// Package search resolves "nearest next/previous match" queries for
// pattern motions. A pattern is compiled once, all non-overlapping
// matches are computed in one scan, and the match list is rotated so
// iteration starts at the match nearest the query offset and wraps
// cyclically. Successive occurrences come from walking the rotated
// list instead of rescanning the text.
package search

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBadPattern indicates the pattern failed to compile.
var ErrBadPattern = errors.New("bad pattern")

// Match is a [Start, End) byte span of one pattern match.
type Match struct {
	Start int
	End   int
}

// Search is a compiled pattern.
type Search struct {
	patt string
	re   *regexp.Regexp
}

// Compile compiles the pattern, returning ErrBadPattern on failure.
func Compile(patt string) (*Search, error) {
	re, err := regexp.Compile(patt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, patt, err)
	}
	return &Search{patt: patt, re: re}, nil
}

// Pattern returns the pattern source.
func (s *Search) Pattern() string {
	return s.patt
}

// FindForward returns all matches in text, rotated so the first entry
// is the match nearest at-or-after byteOff, wrapping to the start of
// the text when no match lies ahead.
func (s *Search) FindForward(text string, byteOff int) []Match {
	locs := s.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1]}
	}

	i := nearest(byteOff, matches)
	if i == 0 {
		return matches
	}
	rotated := make([]Match, 0, len(matches))
	rotated = append(rotated, matches[i:]...)
	rotated = append(rotated, matches[:i]...)
	return rotated
}

// FindBackward is FindForward with the rotated list reversed, so the
// first entry is the match nearest before byteOff, wrapping to the end
// of the text.
func (s *Search) FindBackward(text string, byteOff int) []Match {
	matches := s.FindForward(text, byteOff)
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches
}

// nearest returns the index of the first match whose span ends after
// off, halving the candidate range on each step. A match bracketing
// off counts as nearest. Running past the last match wraps to 0.
func nearest(off int, ms []Match) int {
	i := lowerBound(off, ms)
	if i == len(ms) {
		return 0
	}
	return i
}

func lowerBound(off int, ms []Match) int {
	if len(ms) == 0 {
		return 0
	}
	m := len(ms) / 2
	if ms[m].End <= off {
		return m + 1 + lowerBound(off, ms[m+1:])
	}
	return lowerBound(off, ms[:m])
}
