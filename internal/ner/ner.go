// Package ner aggregates a sequence of externally supplied BIO-tagged token
// entries into contiguous entity spans. The core never runs the NER model
// itself (out of scope per spec §1); it only consumes the host's token
// stream.
package ner

import (
	"strings"

	"github.com/oneaifw/corefw/internal/entity"
)

// Aggregate converts entries (assumed already ordered by position) into
// entity spans, per the linear-scan algorithm of §4.D:
//
//  1. An entry tagged None closes the currently open entity (emitting it)
//     and is otherwise skipped; a Begin or Inside entry of kind None is
//     skipped.
//  2. A Begin entry of kind T opens an entity at [start,end) with score =
//     entry.Score.
//  3. A following Inside entry of the same kind extends end and updates
//     score to the running mean of all scores folded into the entity so far.
//  4. A Begin entry of the same kind whose Text starts with the subword
//     prefix "##" is treated as a continuation rather than a new entity.
//  5. Any other entry closes the currently open entity (emitting it) and
//     attempts to restart from that entry.
func Aggregate(entries []entity.NEREntry, mode entity.NERMode) []entity.Span {
	var spans []entity.Span
	var open *openSpan

	flush := func() {
		if open != nil {
			spans = append(spans, open.toSpan(mode))
			open = nil
		}
	}

	for _, e := range entries {
		switch {
		case e.Tag == entity.TagNone:
			flush()
		case e.Kind == entity.None:
			// Entries of kind None never open or extend an entity.
		case e.Tag == entity.TagBegin && open != nil && open.kind == e.Kind && strings.HasPrefix(e.Text, "##"):
			open.extend(e)
		case e.Tag == entity.TagBegin:
			flush()
			open = newOpenSpan(e)
		case e.Tag == entity.TagInside && open != nil && open.kind == e.Kind:
			open.extend(e)
		case e.Tag == entity.TagInside:
			// Inside with no compatible open span: nothing to attach to;
			// treat it as if it were a fresh Begin so the content is not lost.
			flush()
			open = newOpenSpan(e)
		}
	}
	flush()
	return spans
}

type openSpan struct {
	kind  entity.Kind
	start uint32
	end   uint32
	score float64
	n     int
}

func newOpenSpan(e entity.NEREntry) *openSpan {
	return &openSpan{kind: e.Kind, start: e.Start, end: e.End, score: e.Score, n: 1}
}

func (o *openSpan) extend(e entity.NEREntry) {
	if e.End > o.end {
		o.end = e.End
	}
	// Running mean across all tokens folded into this span so far.
	o.score = (o.score*float64(o.n) + e.Score) / float64(o.n+1)
	o.n++
}

func (o *openSpan) toSpan(mode entity.NERMode) entity.Span {
	return entity.Span{
		Kind:        o.kind,
		Start:       o.start,
		End:         o.end,
		Score:       o.score,
		Description: mode.Description(),
	}
}
