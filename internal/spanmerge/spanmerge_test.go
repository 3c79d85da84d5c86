package spanmerge

import (
	"testing"

	"github.com/oneaifw/corefw/internal/entity"
)

func TestResolveFiltersLowScore(t *testing.T) {
	spans := []entity.Span{
		{Kind: entity.Password, Start: 0, End: 5, Score: 0.4},
		{Kind: entity.EmailAddress, Start: 10, End: 20, Score: 0.9},
	}
	got := Resolve(spans, Options{})
	if len(got) != 1 || got[0].Kind != entity.EmailAddress {
		t.Fatalf("got %+v, want only the email span", got)
	}
}

func TestResolveDedupsExactRange(t *testing.T) {
	spans := []entity.Span{
		{Kind: entity.EmailAddress, Start: 0, End: 10, Score: 0.7},
		{Kind: entity.EmailAddress, Start: 0, End: 10, Score: 0.95},
	}
	got := Resolve(spans, Options{})
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	if got[0].Score != 0.95 {
		t.Errorf("score = %v, want max 0.95", got[0].Score)
	}
}

func TestResolveOverlapPrefersHigherScore(t *testing.T) {
	// S6: 4-digit VCODE (0.50) contained inside a 12-digit BANK (0.60).
	bank := entity.Span{Kind: entity.BankNumber, Start: 0, End: 12, Score: 0.60}
	vcode := entity.Span{Kind: entity.VerificationCode, Start: 2, End: 6, Score: 0.50}
	got := Resolve([]entity.Span{bank, vcode}, Options{})
	if len(got) != 1 || got[0].Kind != entity.BankNumber {
		t.Fatalf("got %+v, want only BANK to survive", got)
	}
}

func TestResolveNonOverlappingBothKept(t *testing.T) {
	a := entity.Span{Kind: entity.EmailAddress, Start: 0, End: 5, Score: 0.9}
	b := entity.Span{Kind: entity.URLAddress, Start: 10, End: 15, Score: 0.8}
	got := Resolve([]entity.Span{b, a}, Options{})
	if len(got) != 2 {
		t.Fatalf("got %d spans, want 2", len(got))
	}
	if got[0].Start != 0 || got[1].Start != 10 {
		t.Errorf("expected ascending order by start, got %+v", got)
	}
}

func TestResolveTouchingEndpointsNotOverlapping(t *testing.T) {
	a := entity.Span{Kind: entity.EmailAddress, Start: 0, End: 5, Score: 0.9}
	b := entity.Span{Kind: entity.URLAddress, Start: 5, End: 10, Score: 0.9}
	got := Resolve([]entity.Span{a, b}, Options{})
	if len(got) != 2 {
		t.Fatalf("touching spans should both survive, got %+v", got)
	}
}

func TestResolveWhitelist(t *testing.T) {
	spans := []entity.Span{
		{Kind: entity.EmailAddress, Start: 0, End: 5, Score: 0.9},
		{Kind: entity.URLAddress, Start: 10, End: 15, Score: 0.9},
	}
	got := Resolve(spans, Options{Whitelist: map[entity.Kind]bool{entity.EmailAddress: true}})
	if len(got) != 1 || got[0].Kind != entity.EmailAddress {
		t.Fatalf("got %+v, want only whitelisted kind", got)
	}
}

func TestResolveDeterministicTieBreak(t *testing.T) {
	// Identical (score, length, start): resolution order must be deterministic
	// across repeated calls.
	a := entity.Span{Kind: entity.EmailAddress, Start: 0, End: 5, Score: 0.9}
	b := entity.Span{Kind: entity.URLAddress, Start: 0, End: 5, Score: 0.9}
	first := Resolve([]entity.Span{a, b}, Options{})
	second := Resolve([]entity.Span{a, b}, Options{})
	if len(first) != 1 || len(second) != 1 || first[0].Kind != second[0].Kind {
		t.Fatalf("expected deterministic tie-break, got %+v then %+v", first, second)
	}
}
