// Package metacodec encodes and decodes the bit-exact metadata blob that
// crosses the C ABI boundary (§3/§4.H). There is no teacher analogue — the
// teacher keeps an in-memory session->token map and never serializes a
// self-describing binary blob — so the length-prefix-plus-aligned-records
// layout here is grounded on the binary-format idiom in the corpus's
// entitydb storage writer (length-prefixed sections, explicit padding to a
// fixed alignment boundary) rather than on the teacher directly.
package metacodec

import "encoding/binary"

// recordSize is the fixed width of one Matched PII span record: entity_id
// (u32) + entity_type (u8) + 3 bytes padding + matched_start (u32) +
// matched_end (u32).
const recordSize = 16

// alignment is the byte boundary the span-record array is aligned to.
const alignment = 16

// SpanRecord is one Matched-PII-span metadata record. Start/End, after
// encoding, refer to offsets within the blob's referenced-text region, not
// into the original document.
type SpanRecord struct {
	EntityID   uint32
	EntityType uint8
	Start      uint32
	End        uint32
}

// sourceSpan pairs a SpanRecord (as produced by mask, with Start/End still
// pointing into the original text) with that original text, for Encode's use.
type sourceSpan = SpanRecord

// Encode serializes originalText's matched substrings (as named by each
// record's Start/End, which at this point still index into originalText)
// plus the records themselves into the blob format of §3/§4.H:
//
//	[0..4)   u32 total_len
//	[4..8)   u32 referenced_text_len N
//	[8..8+N) N bytes of referenced text (matched substrings, back-to-back, in order)
//	[align]  zero padding to a 16-byte boundary
//	[...]    16-byte-aligned array of span records, rewritten to index into
//	         the referenced-text region above rather than the original text
func Encode(originalText []byte, spans []sourceSpan) []byte {
	var refText []byte
	rewritten := make([]SpanRecord, len(spans))
	cursor := uint32(0)
	for i, s := range spans {
		chunk := originalText[s.Start:s.End]
		rewritten[i] = SpanRecord{
			EntityID:   s.EntityID,
			EntityType: s.EntityType,
			Start:      cursor,
			End:        cursor + uint32(len(chunk)),
		}
		refText = append(refText, chunk...)
		cursor += uint32(len(chunk))
	}

	n := uint32(len(refText))
	headerLen := 8
	pad := padLen(headerLen + int(n))
	spansOffset := headerLen + int(n) + pad
	totalLen := spansOffset + len(rewritten)*recordSize

	blob := make([]byte, totalLen)
	binary.LittleEndian.PutUint32(blob[0:4], uint32(totalLen))
	binary.LittleEndian.PutUint32(blob[4:8], n)
	copy(blob[8:8+n], refText)
	// blob[8+n : spansOffset] is already zero (make initializes to zero).
	for i, r := range rewritten {
		off := spansOffset + i*recordSize
		binary.LittleEndian.PutUint32(blob[off:off+4], r.EntityID)
		blob[off+4] = r.EntityType
		// blob[off+5:off+8] left as zero padding.
		binary.LittleEndian.PutUint32(blob[off+8:off+12], r.Start)
		binary.LittleEndian.PutUint32(blob[off+12:off+16], r.End)
	}
	return blob
}

// padLen returns the number of zero bytes needed to bring n up to the next
// multiple of alignment.
func padLen(n int) int {
	rem := n % alignment
	if rem == 0 {
		return 0
	}
	return alignment - rem
}

// View is a deserialized, read-only view over a metadata blob. ReferencedText
// and Spans alias the original blob's backing array; callers must not mutate
// blob while a View over it is in use.
type View struct {
	ReferencedText []byte
	Spans          []SpanRecord
}

// Decode parses blob into a View. It tolerates truncation gracefully,
// returning an empty View rather than an error, per §4.H's "deserialization
// must tolerate truncation gracefully" requirement — the happy path trusts
// the first u32 entirely, as the spec directs; the length checks below are
// purely defensive against a corrupted or truncated blob.
func Decode(blob []byte) View {
	if len(blob) < 8 {
		return View{}
	}
	totalLen := binary.LittleEndian.Uint32(blob[0:4])
	if int(totalLen) > len(blob) {
		totalLen = uint32(len(blob))
	}
	n := binary.LittleEndian.Uint32(blob[4:8])
	textEnd := 8 + int(n)
	if textEnd > int(totalLen) || textEnd < 8 {
		return View{}
	}
	refText := blob[8:textEnd]

	spansStart := textEnd + padLen(textEnd)
	if spansStart > int(totalLen) {
		return View{ReferencedText: refText}
	}
	available := int(totalLen) - spansStart
	if available <= 0 {
		return View{ReferencedText: refText}
	}
	count := available / recordSize
	spans := make([]SpanRecord, 0, count)
	for i := 0; i < count; i++ {
		off := spansStart + i*recordSize
		if off+recordSize > len(blob) {
			break
		}
		spans = append(spans, SpanRecord{
			EntityID:   binary.LittleEndian.Uint32(blob[off : off+4]),
			EntityType: blob[off+4],
			Start:      binary.LittleEndian.Uint32(blob[off+8 : off+12]),
			End:        binary.LittleEndian.Uint32(blob[off+12 : off+16]),
		})
	}
	return View{ReferencedText: refText, Spans: spans}
}

// MatchedText returns the substring of the referenced text that r describes.
// It returns nil if r's bounds fall outside the view (a defensively-handled
// truncated or corrupted blob).
func (v View) MatchedText(r SpanRecord) []byte {
	if int(r.End) > len(v.ReferencedText) || r.Start > r.End {
		return nil
	}
	return v.ReferencedText[r.Start:r.End]
}
