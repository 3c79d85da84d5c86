package addrfuse

import (
	"unicode/utf8"

	"github.com/oneaifw/corefw/internal/entity"
)

const (
	maxTotalGrowthChars = 48
	rightWindowChars    = 96
	leftWindowChars     = 96
)

// rightAttachRule is one row of the §4.F right-attach whitelist table.
type rightAttachRule struct {
	fromRank    int
	toRank      int
	maxDistance int // in code points between curEnd and candStart; -1 = overlap-only
	condition   func(text []byte, curEnd, candStart, candEnd int) bool
	clearsRank  int // if non-zero, clear this rank from the bitset after attaching
}

func hasParkSuffixEndingAt(text []byte, end int) bool {
	for name := range parkSuffixNames {
		if end-len(name) >= 0 && string(text[end-len(name):end]) == name {
			return true
		}
	}
	return false
}

func endsWithHongKong(text []byte, end int) bool {
	const hk1, hk2 = "香港", "香港" // kept distinct for clarity of intent
	_ = hk2
	if end-len(hk1) >= 0 && string(text[end-len(hk1):end]) == hk1 {
		return true
	}
	return false
}

var rightAttachTable = []rightAttachRule{
	{fromRank: L11Country.Rank(), toRank: L7Township.Rank(), maxDistance: 4,
		condition: func(text []byte, curEnd, candStart, candEnd int) bool { return endsWithHongKong(text, curEnd) }},
	{fromRank: L7Township.Rank(), toRank: L3Building.Rank(), maxDistance: 4,
		condition: func(text []byte, curEnd, candStart, candEnd int) bool { return hasParkSuffixEndingAt(text, curEnd) }},
	{fromRank: L5HouseNumber.Rank(), toRank: L7Township.Rank(), maxDistance: 4,
		condition: func(text []byte, curEnd, candStart, candEnd int) bool { return hasParkSuffixEndingAt(text, candEnd) }},
	{fromRank: L6Road.Rank(), toRank: L4POI.Rank(), maxDistance: 4},
	{fromRank: L5HouseNumber.Rank(), toRank: L2Floor.Rank(), maxDistance: 4},
	{fromRank: L4POI.Rank(), toRank: L6Road.Rank(), maxDistance: 0, clearsRank: L4POI.Rank()},
	{fromRank: L4POI.Rank(), toRank: L2Floor.Rank(), maxDistance: 4},
	{fromRank: L4POI.Rank(), toRank: L1Room.Rank(), maxDistance: 5},
	{fromRank: L3Building.Rank(), toRank: L1Room.Rank(), maxDistance: 6},
	{fromRank: L8District.Rank(), toRank: L6Road.Rank(), maxDistance: -1},
	{fromRank: L9City.Rank(), toRank: L6Road.Rank(), maxDistance: -1},
}

// Grow implements §4.F's growth algorithm for every address-like seed,
// returning the accepted (grown or untouched-but-passing) spans. seeds are
// the PhysicalAddress/Organization spans produced upstream; text is the full
// document. Seeds that fail the privacy threshold are dropped; seeds fully
// contained in an already-accepted grown span are skipped.
func Grow(seeds []entity.Span, text []byte) []entity.Span {
	var out []entity.Span
	var accepted []entity.Span

	for _, seed := range seeds {
		if seed.Kind != entity.PhysicalAddress && seed.Kind != entity.Organization {
			out = append(out, seed)
			continue
		}
		if consumedByAny(accepted, seed) {
			continue
		}

		newStart, newEnd := int(seed.Start), int(seed.End)
		bits := Bitset(0)
		for _, t := range Tokenize(text, newStart, newEnd, 0) {
			bits = bits.Set(t.Level)
			if t.EmbeddedLevel != LevelNone {
				bits = bits.Set(t.EmbeddedLevel)
			}
		}

		newStart, newEnd, bits = growRight(text, newStart, newEnd, bits)
		newStart, newEnd, bits = growLeft(text, newStart, newEnd, bits)

		if !bits.MeetsPrivacyThreshold() {
			continue
		}

		score := 0.9999 - 0.0025*float64(bits.LowestRank())
		grown := entity.Span{
			Kind:        entity.PhysicalAddress,
			Start:       uint32(newStart),
			End:         uint32(newEnd),
			Score:       score,
			Description: "address",
		}
		accepted = append(accepted, grown)
		out = append(out, grown)
	}
	return out
}

func consumedByAny(accepted []entity.Span, s entity.Span) bool {
	for _, a := range accepted {
		if s.Start >= a.Start && s.End <= a.End {
			return true
		}
	}
	return false
}

// growRight repeatedly attempts to extend [start,end) rightward.
func growRight(text []byte, start, end int, bits Bitset) (int, int, Bitset) {
	grown := 0
	for grown < maxTotalGrowthChars {
		if end >= len(text) {
			break
		}
		winEnd := end + rightWindowChars*4 // generous byte bound for up to 96 code points
		if winEnd > len(text) {
			winEnd = len(text)
		}
		candidates := Tokenize(text, end, winEnd, start)
		if len(candidates) == 0 {
			break
		}
		curLo := bits.LowestRank()

		// §4.F: choose the first candidate in the window whose attachment is
		// permitted, not just the first token found. Tokens in the window are
		// not necessarily listed in attach-priority order.
		var cand Token
		var clears int
		found := false
		for _, c := range candidates {
			if ok, cl := rightAttachPermitted(text, curLo, c, end); ok {
				cand, clears, found = c, cl, true
				break
			}
		}
		if !found {
			break
		}
		if bits.MeetsPrivacyThreshold() && isHeavySeparatorAt(text, end) {
			break
		}

		if cand.Start < start {
			start = cand.Start
		}
		grown += runeDistance(text, end, cand.End)
		if cand.End > end {
			end = cand.End
		}
		bits = bits.Set(cand.Level)
		if cand.EmbeddedLevel != LevelNone {
			bits = bits.Set(cand.EmbeddedLevel)
		}
		if clears != 0 {
			bits = bits &^ (1 << uint(clears))
		}
	}
	return start, end, bits
}

// growLeft repeatedly attempts to extend [start,end) leftward.
func growLeft(text []byte, start, end int, bits Bitset) (int, int, Bitset) {
	grown := 0
	for grown < maxTotalGrowthChars {
		if start <= 0 {
			break
		}
		winStart := start - leftWindowChars*4
		if winStart < 0 {
			winStart = 0
		}
		candidates := Tokenize(text, winStart, start, 0)
		if len(candidates) == 0 {
			break
		}
		cand := candidates[len(candidates)-1] // rightmost (closest to start)
		maxRank := bits.HighestRank()

		if cand.Level.Rank() == maxRank+1 {
			grown += runeDistance(text, cand.Start, start)
			start = cand.Start
			bits = bits.Set(cand.Level)
			if cand.EmbeddedLevel != LevelNone {
				bits = bits.Set(cand.EmbeddedLevel)
			}
			continue
		}
		// Whitelist: L6 -> L8 for named districts within <=4 code points.
		if maxRank == L6Road.Rank() && cand.Level == L8District &&
			matchAny(string(text[cand.Start:cand.End]), districtNamed) == string(text[cand.Start:cand.End]) &&
			runeDistance(text, cand.End, start) <= 4 {
			grown += runeDistance(text, cand.Start, start)
			start = cand.Start
			bits = bits.Set(cand.Level)
			continue
		}
		break
	}
	return start, end, bits
}

func rightAttachPermitted(text []byte, curLo int, cand Token, curEnd int) (ok bool, clearsRank int) {
	if cand.Level.Rank()+1 == curLo {
		return true, 0
	}
	for _, rule := range rightAttachTable {
		if rule.fromRank != curLo || rule.toRank != cand.Level.Rank() {
			continue
		}
		if rule.maxDistance >= 0 && runeDistance(text, curEnd, cand.Start) > rule.maxDistance {
			continue
		}
		if rule.maxDistance < 0 {
			// overlap-only attach: candidate must start at or before curEnd.
			if cand.Start > curEnd {
				continue
			}
		}
		if rule.condition != nil && !rule.condition(text, curEnd, cand.Start, cand.End) {
			continue
		}
		return true, rule.clearsRank
	}
	return false, 0
}

func isHeavySeparatorAt(text []byte, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRune(text[pos:])
	return heavySeparators[r]
}

// runeDistance counts code points between byte offsets a and b (a <= b).
func runeDistance(text []byte, a, b int) int {
	if a > b {
		a, b = b, a
	}
	return utf8.RuneCount(text[a:b])
}
