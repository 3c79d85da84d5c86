// Package spanmerge filters, deduplicates, and resolves overlaps among the
// candidate spans produced by the regex recognizer, the NER aggregator, and
// the address fuser, per §4.E.
package spanmerge

import (
	"sort"

	"github.com/oneaifw/corefw/internal/entity"
)

// ScoreFloor is the minimum score a span must carry to survive filtering.
const ScoreFloor = 0.5

// Options configures an optional kind whitelist/blacklist. The master
// pipeline uses neither (both nil), but the component supports both per the
// spec's component contract.
type Options struct {
	Whitelist map[entity.Kind]bool // if non-nil, only these kinds survive
	Blacklist map[entity.Kind]bool // if non-nil, these kinds are dropped
}

// Resolve runs the full pipeline: score-filter, whitelist/blacklist filter,
// sort by (start,end), dedup exact-duplicate ranges keeping the max score,
// then resolve overlaps by priority (score desc, length desc, start asc),
// and finally re-sort the accepted set by (start,end) ascending.
func Resolve(spans []entity.Span, opts Options) []entity.Span {
	filtered := filter(spans, opts)
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Start != filtered[j].Start {
			return filtered[i].Start < filtered[j].Start
		}
		return filtered[i].End < filtered[j].End
	})
	deduped := dedup(filtered)
	accepted := resolveOverlaps(deduped)
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Start != accepted[j].Start {
			return accepted[i].Start < accepted[j].Start
		}
		return accepted[i].End < accepted[j].End
	})
	return accepted
}

func filter(spans []entity.Span, opts Options) []entity.Span {
	out := make([]entity.Span, 0, len(spans))
	for _, s := range spans {
		if s.Score < ScoreFloor {
			continue
		}
		if opts.Whitelist != nil && !opts.Whitelist[s.Kind] {
			continue
		}
		if opts.Blacklist != nil && opts.Blacklist[s.Kind] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// dedup assumes spans is sorted by (start,end) and collapses exact-duplicate
// ranges, keeping the highest score among duplicates.
func dedup(spans []entity.Span) []entity.Span {
	out := make([]entity.Span, 0, len(spans))
	for _, s := range spans {
		if n := len(out); n > 0 && out[n-1].Start == s.Start && out[n-1].End == s.End {
			if s.Score > out[n-1].Score {
				out[n-1] = s
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// resolveOverlaps iterates candidates in priority order (score desc, length
// desc, start asc) and greedily accepts each one that does not overlap an
// already-accepted span.
func resolveOverlaps(spans []entity.Span) []entity.Span {
	priority := make([]entity.Span, len(spans))
	copy(priority, spans)
	sort.SliceStable(priority, func(i, j int) bool {
		a, b := priority[i], priority[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Len() != b.Len() {
			return a.Len() > b.Len()
		}
		return a.Start < b.Start
	})

	var accepted []entity.Span
	for _, cand := range priority {
		conflict := false
		for _, acc := range accepted {
			if cand.Overlaps(acc) {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}
