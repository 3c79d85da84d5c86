// Package regexengine binds the core's compile/find/find-group contract to
// Go's standard library regexp package.
//
// The teacher (ai-anonymizing-proxy/internal/anonymizer) matches PII purely
// with stdlib regexp — no custom NFA/DFA engine is anywhere in its
// dependency graph — so this package keeps that choice rather than vendoring
// a third-party regex engine. *regexp.Regexp is documented safe for
// concurrent use by multiple goroutines, which satisfies (and exceeds) the
// "thread-safe with respect to distinct handles" requirement.
package regexengine

import "regexp"

// Handle wraps a compiled pattern. The zero value is not usable; obtain one
// via Compile.
type Handle struct {
	re *regexp.Regexp
	// src is the original pattern text, kept for cache-key equality checks
	// and diagnostics.
	src string
}

// Source returns the pattern text the handle was compiled from.
func (h *Handle) Source() string { return h.src }

// Compile compiles pattern and returns a handle, or an error if the pattern
// is not a valid regular expression. Go's regexp already implements the
// syntax subset the preset patterns require: character classes, {n,m}
// quantifiers, non-capturing groups, alternation, \s, \d, \b, the inline
// case-insensitivity flag (?i), and [\s\S] as a DOTALL substitute.
func Compile(pattern string) (*Handle, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Handle{re: re, src: pattern}, nil
}

// MatchResult is the outcome of a single Find/FindGroup call.
type MatchResult struct {
	Matched bool
	Start   int
	End     int
}

// Find returns the next non-overlapping match of h in haystack starting at
// or after startOffset (a byte offset). It reports Matched=false if no match
// remains. Offsets in the result are relative to the full haystack, not to
// startOffset.
//
// Go's regexp has no native "resume search from byte offset while still
// honoring ^ and \b as if the string began there" operation, so Find slices
// haystack[startOffset:] and searches from the start of that slice, then
// re-biases the returned indices by startOffset. This means a pattern
// anchored with ^ will (correctly, per the contract's "ignores multibyte
// boundaries; caller responsible" note) match at startOffset itself as if it
// were the start of input — acceptable for the preset patterns, none of
// which rely on ^ matching only the true start of the whole document.
func Find(h *Handle, haystack []byte, startOffset int) MatchResult {
	return FindGroup(h, haystack, startOffset, 0)
}

// FindGroup is like Find but returns the span of capture group groupIndex
// (>= 1) instead of the whole match. groupIndex == 0 is equivalent to Find.
func FindGroup(h *Handle, haystack []byte, startOffset int, groupIndex int) MatchResult {
	if startOffset < 0 {
		startOffset = 0
	}
	if startOffset > len(haystack) {
		return MatchResult{}
	}
	loc := h.re.FindSubmatchIndex(haystack[startOffset:])
	if loc == nil {
		return MatchResult{}
	}
	lo := groupIndex * 2
	hi := lo + 1
	if hi >= len(loc) || loc[lo] < 0 || loc[hi] < 0 {
		// The requested group did not participate in this match (e.g. an
		// alternation branch without it); callers should skip this hit.
		return MatchResult{}
	}
	return MatchResult{
		Matched: true,
		Start:   startOffset + loc[lo],
		End:     startOffset + loc[hi],
	}
}
