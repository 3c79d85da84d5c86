// Package mask synthesizes placeholders for a set of final, sorted,
// non-overlapping spans and rewrites the original text. Its placeholder loop
// is directly grounded on the teacher's AnonymizeText/tokenForMatch/
// replacement functions in ai-anonymizing-proxy/internal/anonymizer —
// "stream-copy original text, substitute a deterministic token at each
// match" — generalized from the teacher's "[PII_<TYPE>_<8hexMD5>]" MD5 token
// format to the spec's "__PII_<NAME>_<ID8HEX>__" sequential-ID format.
package mask

import (
	"fmt"
	"sort"

	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/metacodec"
)

// Placeholder renders the exact placeholder string for (kind, id), per §3/§6:
// __PII_<ENTITY_NAME>_<ID8HEX>__ with id as eight uppercase hex digits.
func Placeholder(kind entity.Kind, id uint32) string {
	return fmt.Sprintf("__PII_%s_%08X__", kind.String(), id)
}

// Result is the output of Mask: the rewritten text and the serialized
// metadata blob.
type Result struct {
	MaskedText []byte
	Metadata   []byte
}

// Mask walks spans (already sorted, filtered, and non-overlapping — the
// output of spanmerge.Resolve, optionally grown by addrfuse) over text,
// emitting a placeholder at each span and recording a metadata span record
// referring back into the original text. Spans with End > len(text) or
// Start >= End are skipped defensively; a caller bug in span bounds must
// never corrupt output.
func Mask(text []byte, spans []entity.Span) Result {
	sorted := make([]entity.Span, 0, len(spans))
	for _, s := range spans {
		if s.Start >= s.End || int(s.End) > len(text) {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []byte
	var records []metacodec.SpanRecord
	cursor := uint32(0)
	for i, s := range sorted {
		id := uint32(i + 1)
		out = append(out, text[cursor:s.Start]...)
		out = append(out, Placeholder(s.Kind, id)...)
		records = append(records, metacodec.SpanRecord{
			EntityID:   id,
			EntityType: uint8(s.Kind),
			Start:      s.Start,
			End:        s.End,
		})
		cursor = s.End
	}
	out = append(out, text[cursor:]...)

	meta := metacodec.Encode(text, records)
	return Result{MaskedText: out, Metadata: meta}
}
