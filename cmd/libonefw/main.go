// Command libonefw builds the C ABI shared library described in §6: every
// exported symbol here is part of the external contract and must keep its
// exact name, parameter order, and struct layout. Nothing else in this
// module imports "C" — the cgo boundary is confined to this one package so
// the rest of the tree stays ordinary, toolchain-agnostic Go.
//
// The package is a thin shim: every exported function immediately converts
// its C-shaped arguments into Go values and calls into package session,
// which holds all real behavior. This mirrors the teacher's cmd/proxy
// pattern of a minimal main that wires flags/config into internal packages
// and does no business logic itself — generalized here from an HTTP
// listener's main() to a cgo shim's exported entry points.
package main

/*
#include <stdint.h>
#include <stddef.h>
#include <stdlib.h>

typedef struct {
    uint8_t ner_recog_type;
} session_init_args;

typedef struct {
    uint8_t  entity_type;
    uint8_t  bio_tag;
    uint16_t pad;
    float    score;
    uint32_t token_index;
    uint32_t start_byte;
    uint32_t end_byte;
} ner_entry;

typedef struct {
    uint32_t entity_id;
    uint8_t  entity_type;
    uint8_t  pad[3];
    uint32_t start;
    uint32_t end;
} pii_span;
*/
import "C"

import (
	"encoding/binary"
	"unsafe"

	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/session"
)

func main() {} // required by -buildmode=c-shared/c-archive; never runs on its own.

// session_create compiles the preset regex table for a fresh session and
// returns an opaque, non-zero handle. A zero return means construction
// failed (always CodeRegexCompileFailed, per §4.J — compile failures are
// fatal to session creation); hosts that need the exact code can ignore
// this path in practice since preset patterns are fixed at build time and
// never fail to compile.
//
//export session_create
func session_create(args C.session_init_args) C.uint64_t {
	mode := entity.TokenClassification
	if args.ner_recog_type == 1 {
		mode = entity.SequenceClassification
	}
	handle, rc := session.Create(mode)
	if rc != session.CodeOK {
		return 0
	}
	return C.uint64_t(handle)
}

// session_destroy releases the session identified by handle. An invalid or
// already-destroyed handle is a silent no-op.
//
//export session_destroy
func session_destroy(handle C.uint64_t) {
	session.Destroy(uint64(handle))
}

// mask_and_out_meta runs the detection pipeline over text and writes the
// masked text and serialized metadata to the two out-pointers. Both
// out-pointers are left untouched on failure, per §7's "no partial outputs"
// policy. Returned buffers are owned by the caller and must be released via
// string_free (out_masked_cstr) and free_sized (out_meta_blob, sized by
// out_meta_len).
//
//export mask_and_out_meta
func mask_and_out_meta(
	handle C.uint64_t,
	textCStr *C.char,
	nerEntriesPtr unsafe.Pointer,
	n C.uint32_t,
	outMaskedCStr **C.char,
	outMetaBlob *unsafe.Pointer,
	outMetaLen *C.uint32_t,
) C.int32_t {
	text := []byte(C.GoString(textCStr))
	entries := decodeNEREntries(nerEntriesPtr, uint32(n))

	result, rc := session.MaskByHandle(uint64(handle), text, entries)
	if rc != session.CodeOK {
		return C.int32_t(rc)
	}

	*outMaskedCStr = C.CString(string(result.MaskedText))
	*outMetaBlob = C.CBytes(result.Metadata)
	*outMetaLen = C.uint32_t(len(result.Metadata))
	return C.int32_t(session.CodeOK)
}

// get_pii_spans runs the same detection pipeline as mask_and_out_meta but
// returns only the resolved span array, without rewriting text. The
// returned array is caller-owned; free it with free_sized(out_spans,
// *out_count * sizeof(pii_span)).
//
//export get_pii_spans
func get_pii_spans(
	handle C.uint64_t,
	textCStr *C.char,
	nerEntriesPtr unsafe.Pointer,
	n C.uint32_t,
	outSpans *unsafe.Pointer,
	outCount *C.uint32_t,
) C.int32_t {
	text := []byte(C.GoString(textCStr))
	entries := decodeNEREntries(nerEntriesPtr, uint32(n))

	spans, rc := session.GetSpansByHandle(uint64(handle), text, entries)
	if rc != session.CodeOK {
		return C.int32_t(rc)
	}

	count := len(spans)
	if count == 0 {
		*outSpans = nil
		*outCount = 0
		return C.int32_t(session.CodeOK)
	}

	buf := C.malloc(C.size_t(count) * C.size_t(unsafe.Sizeof(C.pii_span{})))
	cSpans := (*[1 << 28]C.pii_span)(buf)[:count:count]
	for i, sp := range spans {
		cSpans[i] = C.pii_span{
			entity_id:   C.uint32_t(i + 1),
			entity_type: C.uint8_t(sp.Kind),
			start:       C.uint32_t(sp.Start),
			end:         C.uint32_t(sp.End),
		}
	}
	*outSpans = buf
	*outCount = C.uint32_t(count)
	return C.int32_t(session.CodeOK)
}

// restore_with_meta reconstructs the original text from masked text and a
// metadata blob. Per §7, restoring with an empty masked string is not an
// error: *out_restored_cstr is set to NULL and CodeOK is returned. Per
// §3/§4.I/§9, restore consumes meta_blob — unlike mask, which hands the
// caller a buffer it owns, restore always frees its input blob, on every
// return path, matching the asymmetry the contract describes.
//
//export restore_with_meta
func restore_with_meta(
	handle C.uint64_t,
	maskedCStr *C.char,
	metaBlob unsafe.Pointer,
	outRestoredCStr **C.char,
) C.int32_t {
	masked := []byte(C.GoString(maskedCStr))

	// The blob is self-describing: its first 4 bytes are its own total
	// length (little-endian u32, per internal/metacodec's header layout),
	// so the length travels with the pointer instead of as a parameter.
	var meta []byte
	if metaBlob != nil {
		header := C.GoBytes(metaBlob, 4)
		totalLen := binary.LittleEndian.Uint32(header)
		meta = C.GoBytes(metaBlob, C.int(totalLen))
	}
	defer C.free(metaBlob)

	restored, rc := session.RestoreByHandle(uint64(handle), masked, meta)
	if rc != session.CodeOK {
		return C.int32_t(rc)
	}
	if restored == nil {
		*outRestoredCStr = nil
		return C.int32_t(session.CodeOK)
	}
	*outRestoredCStr = C.CString(string(restored))
	return C.int32_t(session.CodeOK)
}

// string_free releases a NUL-terminated string previously returned by this
// library (e.g. out_masked_cstr, out_restored_cstr). A NULL argument is a
// no-op, matching C.free's contract.
//
//export string_free
func string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// malloc allocates n bytes from the process allocator so hosts can hand
// this library a buffer it did not itself allocate (e.g. a NER entry array
// built on the host side). Returns NULL on allocation failure
// (CodeAllocatorFailure is reserved for the Go-side entry points above;
// this raw allocator has no rc channel of its own, matching C's malloc).
//
//export malloc
func malloc(n C.size_t) unsafe.Pointer {
	return C.malloc(n)
}

// free_sized releases a buffer of n bytes previously returned by malloc,
// get_pii_spans, or mask_and_out_meta's metadata out-pointer.
//
//export free_sized
func free_sized(ptr unsafe.Pointer, n C.size_t) {
	C.free(ptr)
}

// shutdown frees every compiled pattern in the global cache and releases all
// live sessions. Idempotent; callers must not race other exported entry
// points against it (§4.K).
//
//export shutdown
func shutdown() {
	session.Shutdown()
}

// decodeNEREntries reinterprets a caller-owned array of n ner_entry C
// structs as Go entity.NEREntry values. A nil ptr or n == 0 yields an empty
// slice, not an error — mask/get_pii_spans run regex-only detection in that
// case.
func decodeNEREntries(ptr unsafe.Pointer, n uint32) []entity.NEREntry {
	if ptr == nil || n == 0 {
		return nil
	}
	cEntries := (*[1 << 28]C.ner_entry)(ptr)[:n:n]
	out := make([]entity.NEREntry, n)
	for i, e := range cEntries {
		out[i] = entity.NEREntry{
			Kind:       entity.Kind(e.entity_type),
			Tag:        entity.BIOTag(e.bio_tag),
			Score:      float64(e.score),
			TokenIndex: uint32(e.token_index),
			Start:      uint32(e.start_byte),
			End:        uint32(e.end_byte),
		}
	}
	return out
}
