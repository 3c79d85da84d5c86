// Package session implements the session lifecycle, the process-wide API
// mutex, and the global pattern cache (§4.J/§4.K). It is the Go-level
// implementation behind the C ABI exported by cmd/libonefw; that package is
// a thin cgo shim over the pure-Go API defined here, matching the
// lifecycle shape of the teacher's cmd/proxy/main.go (construct config,
// construct long-lived objects, explicit shutdown) generalized from an HTTP
// server's lifetime to a library session's lifetime.
//
// §9's design notes call out two source patterns requiring re-architecture:
// a self-referential session holding a pointer into its own NER recognizer,
// and a global mutable compiled-regex table crossing the ABI. Both are
// addressed here: the session owns its recognizer list by value (no
// back-pointer), and the global pattern cache is a single package-level
// value guarded by the same mutex that serializes every exported entry
// point, with an explicit Shutdown for deterministic teardown.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/oneaifw/corefw/internal/addrfuse"
	"github.com/oneaifw/corefw/internal/config"
	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/mask"
	"github.com/oneaifw/corefw/internal/metacodec"
	"github.com/oneaifw/corefw/internal/metrics"
	"github.com/oneaifw/corefw/internal/ner"
	"github.com/oneaifw/corefw/internal/recognizer"
	"github.com/oneaifw/corefw/internal/restore"
	"github.com/oneaifw/corefw/internal/spanmerge"
	"github.com/oneaifw/corefw/internal/telemetry"
)

// apiMu is the process-wide API mutex (§5): every exported entry point
// acquires it before touching the allocator, the regex cache, or any
// session. Native hosts pay a cheap uncontended lock per call; the
// rationale (documented in §5) is that the primary deployment targets
// include WebAssembly, where the page allocator is not inherently
// thread-safe and the pattern cache is mutated lazily.
var apiMu sync.Mutex

// globalCache is the process-wide pattern cache (§4.K). Its lifetime runs
// from first session creation to an explicit Shutdown call.
var globalCache *patternCache

// registry maps opaque handle IDs to live sessions, avoiding raw Go pointers
// crossing the C ABI (see the package doc's note on self-referential
// sessions and opaque handles).
var registry = struct {
	mu      sync.Mutex
	next    uint64
	entries map[uint64]*Session
}{entries: make(map[uint64]*Session)}

// Session owns a configured NER mode and one regex recognizer per entity
// kind. Compiled regex handles inside each recognizer are weak references
// into globalCache: the session does not free them.
type Session struct {
	id       uint64
	nerMode  entity.NERMode
	recogs   map[entity.Kind]*recognizer.Recognizer
	cfg      *config.Config
	log      *telemetry.Logger
	m        *metrics.Metrics
	extraPat map[entity.Kind][]recognizer.PatternSpec // caller-registered patterns per kind, replayed when that kind's recognizer is rebuilt
}

// Create constructs a new Session for the given NER mode, compiling the
// preset regex table (and initializing the global cache on first call).
// Per §4.J, a regex compile failure here is fatal — CodeRegexCompileFailed.
func Create(nerMode entity.NERMode, opts ...config.Option) (handle uint64, rc Code) {
	apiMu.Lock()
	defer apiMu.Unlock()

	cfg := config.Apply(opts...)
	if globalCache == nil {
		globalCache = newPatternCache(cfg.PatternCacheCapacity)
	}

	s := &Session{
		nerMode: nerMode,
		recogs:  make(map[entity.Kind]*recognizer.Recognizer),
		cfg:     cfg,
		log:     telemetry.New("SESSION", cfg.LogLevel),
		m:       metrics.New(),
	}

	for _, kind := range recognizer.AllKinds() {
		specs := recognizer.PresetsFor(kind)
		r, err := recognizer.New(kind, specs, globalCache.resolvePreset)
		if err != nil {
			s.log.Errorf("session_create", "compile failed for kind %s: %v", kind, err)
			return 0, CodeRegexCompileFailed
		}
		s.recogs[kind] = r
	}

	registry.mu.Lock()
	registry.next++
	s.id = registry.next
	registry.entries[s.id] = s
	registry.mu.Unlock()

	s.log.Info("session_create", fmt.Sprintf("session %d created, ner_mode=%v", s.id, nerMode))
	return s.id, CodeOK
}

// lookup resolves a handle to its Session, or nil if invalid. It takes
// registry.mu itself; callers do not hold apiMu.
func lookup(handle uint64) *Session {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.entries[handle]
}

// Destroy releases a session. Invalid handles are a silent no-op per §4.J's
// "invalid session handle -> InvalidSessionPtr, no side effects" — Destroy
// itself is documented as tolerant so hosts may call it defensively during
// teardown races.
func Destroy(handle uint64) {
	apiMu.Lock()
	defer apiMu.Unlock()
	registry.mu.Lock()
	delete(registry.entries, handle)
	registry.mu.Unlock()
}

// MaskByHandle resolves handle and runs Session.Mask, returning
// CodeInvalidSessionPtr for an unknown or already-destroyed handle. This is
// the entry point the cgo shim in cmd/libonefw calls directly, since C code
// only ever holds the opaque uint64 handle, never a *Session.
func MaskByHandle(handle uint64, text []byte, nerEntries []entity.NEREntry) (MaskResult, Code) {
	s := lookup(handle)
	if s == nil {
		return MaskResult{}, CodeInvalidSessionPtr
	}
	return s.Mask(text, nerEntries)
}

// GetSpansByHandle resolves handle and runs Session.GetSpans.
func GetSpansByHandle(handle uint64, text []byte, nerEntries []entity.NEREntry) ([]entity.Span, Code) {
	s := lookup(handle)
	if s == nil {
		return nil, CodeInvalidSessionPtr
	}
	return s.GetSpans(text, nerEntries)
}

// RestoreByHandle resolves handle and runs Session.Restore.
func RestoreByHandle(handle uint64, maskedText, metaBlob []byte) ([]byte, Code) {
	s := lookup(handle)
	if s == nil {
		return nil, CodeInvalidSessionPtr
	}
	return s.Restore(maskedText, metaBlob)
}

// RegisterPattern adds a caller-supplied pattern to kind's recognizer,
// compiled through the global dynamic cache (so repeated registration of
// the same pattern text across sessions reuses one compiled handle).
func (s *Session) RegisterPattern(kind entity.Kind, spec recognizer.PatternSpec) Code {
	apiMu.Lock()
	defer apiMu.Unlock()

	extra := append(append([]recognizer.PatternSpec{}, s.extraPat[kind]...), spec)
	specs := append(append([]recognizer.PatternSpec{}, recognizer.PresetsFor(kind)...), extra...)
	nr, err := recognizer.New(kind, specs, globalCache.resolveDynamic)
	if err != nil {
		return CodeRegexCompileFailed
	}
	if s.extraPat == nil {
		s.extraPat = make(map[entity.Kind][]recognizer.PatternSpec)
	}
	s.extraPat[kind] = extra
	s.recogs[kind] = nr
	return CodeOK
}

// MaskResult mirrors mask.Result plus the return code for ABI convenience.
type MaskResult struct {
	MaskedText []byte
	Metadata   []byte
}

// Mask runs the full span pipeline (§2's "Data flow for mask") over text
// given the host-supplied NER entries: regex recognizers run for every
// entity kind, the NER aggregator builds spans from entries, the address
// fuser grows address/organization seeds, spanmerge resolves the combined
// set, and the masker rewrites text and serializes metadata.
func (s *Session) Mask(text []byte, nerEntries []entity.NEREntry) (MaskResult, Code) {
	apiMu.Lock()
	defer apiMu.Unlock()
	start := time.Now()
	defer func() { s.m.RecordMaskLatency(time.Since(start)) }()
	s.m.MaskCalls.Add(1)

	var all []entity.Span
	for _, r := range s.recogs {
		all = append(all, r.Run(text)...)
	}
	all = append(all, ner.Aggregate(nerEntries, s.nerMode)...)
	all = addrfuse.Grow(all, text)

	resolved := spanmerge.Resolve(all, spanmerge.Options{})
	result := mask.Mask(text, resolved)
	s.m.SpansEmitted.Add(int64(len(resolved)))

	return MaskResult{MaskedText: result.MaskedText, Metadata: result.Metadata}, CodeOK
}

// GetSpans runs the same detection pipeline as Mask but returns only the
// resolved spans, without rewriting text or producing metadata.
func (s *Session) GetSpans(text []byte, nerEntries []entity.NEREntry) ([]entity.Span, Code) {
	apiMu.Lock()
	defer apiMu.Unlock()

	var all []entity.Span
	for _, r := range s.recogs {
		all = append(all, r.Run(text)...)
	}
	all = append(all, ner.Aggregate(nerEntries, s.nerMode)...)
	all = addrfuse.Grow(all, text)
	resolved := spanmerge.Resolve(all, spanmerge.Options{})
	return resolved, CodeOK
}

// Restore reconstructs the original text given masked text and a metadata
// blob. Restoration with empty masked text is not an error (§4.I/§7): the
// blob is logically consumed and the returned slice is nil.
func (s *Session) Restore(maskedText []byte, metaBlob []byte) ([]byte, Code) {
	apiMu.Lock()
	defer apiMu.Unlock()
	start := time.Now()
	defer func() { s.m.RecordRestoreLatency(time.Since(start)) }()
	s.m.RestoreCalls.Add(1)

	if len(maskedText) == 0 {
		return nil, CodeOK
	}
	view := metacodec.Decode(metaBlob)
	out := restore.Restore(maskedText, view)
	return out, CodeOK
}

// Metrics returns a point-in-time snapshot of this session's instrumentation.
// Not part of the C ABI contract; a Go-only diagnostic surface.
func (s *Session) Metrics() metrics.Snapshot { return s.m.Snapshot() }

// Shutdown frees every compiled handle in the global pattern cache and
// clears both tiers. Idempotent; callers must not race other entry points
// against it, per §4.K.
func Shutdown() {
	apiMu.Lock()
	defer apiMu.Unlock()
	if globalCache != nil {
		globalCache.shutdown()
	}
	registry.mu.Lock()
	registry.entries = make(map[uint64]*Session)
	registry.mu.Unlock()
}
