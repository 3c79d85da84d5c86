// Package recognizer runs the per-entity-kind regex recognizers over a
// document and produces candidate spans. Its pattern-table shape (ordered
// list of compiled patterns, each carrying a kind and a confidence score) is
// grounded directly on the teacher's compilePatterns()/pattern{re, piiType,
// confidence} structure in ai-anonymizing-proxy/internal/anonymizer; the
// two-pass "find all occurrences of every pattern before emitting" idiom for
// avoiding overlapping self-matches mirrors the WSO2 gateway PII-masking
// policy's maskPIIFromContent.
package recognizer

import (
	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/regexengine"
)

// PatternSpec describes one named pattern contributing to a kind's recognizer.
type PatternSpec struct {
	Name         string
	Pattern      string
	DefaultScore float64
	// GroupIndex selects which capture group's span becomes the emitted
	// span; 0 means the whole match.
	GroupIndex int
}

// compiledPattern is a PatternSpec plus its compiled handle.
type compiledPattern struct {
	spec   PatternSpec
	handle *regexengine.Handle
}

// Validator optionally re-scores a raw regex hit. Returning ok=false leaves the
// pattern's default score in place (the span is still emitted); returning
// ok=true with a score of 0 means "use the pattern's default score" is NOT
// implied — the validator must return the intended score explicitly.
type Validator func(kind entity.Kind, matchedText string, defaultScore float64) (score float64, ok bool)

// Recognizer holds one entity kind's compiled pattern set.
type Recognizer struct {
	kind      entity.Kind
	patterns  []compiledPattern
	validator Validator
}

// New compiles specs for kind using handles drawn from resolve (typically the
// session's global pattern cache). resolve must return a non-nil handle or an
// error for every spec; a compile failure here is fatal to session
// construction per §4.C/§7 (RegexCompileFailed).
func New(kind entity.Kind, specs []PatternSpec, resolve func(pattern string) (*regexengine.Handle, error)) (*Recognizer, error) {
	r := &Recognizer{kind: kind}
	for _, spec := range specs {
		h, err := resolve(spec.Pattern)
		if err != nil {
			return nil, err
		}
		r.patterns = append(r.patterns, compiledPattern{spec: spec, handle: h})
	}
	return r, nil
}

// SetValidator installs an optional post-match validator callback.
func (r *Recognizer) SetValidator(v Validator) { r.validator = v }

// Run scans text with every held pattern and returns all spans found. Each
// pattern is scanned independently from offset 0; the cursor for a given
// pattern advances to max(end, cursor+1) after every hit to guarantee
// forward progress even on zero-length matches.
func (r *Recognizer) Run(text []byte) []entity.Span {
	var spans []entity.Span
	for _, cp := range r.patterns {
		cursor := 0
		for cursor <= len(text) {
			var m regexengine.MatchResult
			if cp.spec.GroupIndex == 0 {
				m = regexengine.Find(cp.handle, text, cursor)
			} else {
				m = regexengine.FindGroup(cp.handle, text, cursor, cp.spec.GroupIndex)
			}
			if !m.Matched {
				break
			}
			score := cp.spec.DefaultScore
			if r.validator != nil {
				if v, ok := r.validator(r.kind, string(text[m.Start:m.End]), cp.spec.DefaultScore); ok {
					score = v
				}
			}
			spans = append(spans, entity.Span{
				Kind:  r.kind,
				Start: uint32(m.Start),
				End:   uint32(m.End),
				Score: score,
			})
			next := m.End
			if next <= cursor {
				next = cursor + 1
			}
			cursor = next
		}
	}
	return spans
}

// Kind returns the entity kind this recognizer matches.
func (r *Recognizer) Kind() entity.Kind { return r.kind }
