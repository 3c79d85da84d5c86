// Package restore reconstructs the original text from masked text plus a
// decoded metadata view (§4.I). Grounded on the teacher's DeanonymizeText
// (ai-anonymizing-proxy/internal/anonymizer), which looks up each token in a
// map and replaces it via strings.ReplaceAll; generalized here to a single
// position-sorted splice pass so restoration is independent of metadata
// record order (§8 property 5).
package restore

import (
	"bytes"
	"sort"

	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/mask"
	"github.com/oneaifw/corefw/internal/metacodec"
)

type occurrence struct {
	start, end int
	text       []byte
}

// Restore reconstructs the original text given maskedText and a decoded
// metadata view. Spans whose placeholder cannot be found in maskedText (for
// example, an LLM dropped it) are silently skipped — their neighboring text
// is preserved and this is not an error, per §4.I. Out-of-order span records
// restore identically to in-order ones.
func Restore(maskedText []byte, view metacodec.View) []byte {
	var occurrences []occurrence
	for _, rec := range view.Spans {
		kind := entity.Kind(rec.EntityType)
		ph := []byte(mask.Placeholder(kind, rec.EntityID))
		idx := bytes.Index(maskedText, ph)
		if idx < 0 {
			continue
		}
		occurrences = append(occurrences, occurrence{
			start: idx,
			end:   idx + len(ph),
			text:  view.MatchedText(rec),
		})
	}

	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].start < occurrences[j].start })

	var out []byte
	cursor := 0
	for _, occ := range occurrences {
		if occ.start < cursor {
			// Overlapping/duplicate placeholder text (e.g. a kind name that is
			// a substring of another); skip to avoid corrupting output.
			continue
		}
		out = append(out, maskedText[cursor:occ.start]...)
		out = append(out, occ.text...)
		cursor = occ.end
	}
	out = append(out, maskedText[cursor:]...)
	return out
}
