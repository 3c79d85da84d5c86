package restore

import (
	"testing"

	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/mask"
	"github.com/oneaifw/corefw/internal/metacodec"
)

func TestRestoreRoundTrip(t *testing.T) {
	original := []byte("Contact me: a.b+1@test.io and visit https://ziglang.org, my name is John Doe.")
	spans := []entity.Span{
		{Kind: entity.EmailAddress, Start: 12, End: 25, Score: 0.9},
		{Kind: entity.URLAddress, Start: 36, End: 56, Score: 0.8},
		{Kind: entity.UserName, Start: 68, End: 77, Score: 0.98},
	}
	res := mask.Mask(original, spans)
	view := metacodec.Decode(res.Metadata)
	got := Restore(res.MaskedText, view)
	if string(got) != string(original) {
		t.Errorf("restore mismatch:\n got: %q\nwant: %q", got, original)
	}
}

func TestRestorePermutationInvariant(t *testing.T) {
	original := []byte("email a@b.com and url https://x.io and name John Doe")
	spans := []entity.Span{
		{Kind: entity.EmailAddress, Start: 6, End: 13, Score: 0.9},
		{Kind: entity.URLAddress, Start: 22, End: 34, Score: 0.8},
		{Kind: entity.UserName, Start: 44, End: 52, Score: 0.9},
	}
	res := mask.Mask(original, spans)
	view := metacodec.Decode(res.Metadata)

	permuted := metacodec.View{
		ReferencedText: view.ReferencedText,
		Spans:          []metacodec.SpanRecord{view.Spans[1], view.Spans[0], view.Spans[2]},
	}

	a := Restore(res.MaskedText, view)
	b := Restore(res.MaskedText, permuted)
	if string(a) != string(b) {
		t.Errorf("permuted metadata restore differs:\n a: %q\n b: %q", a, b)
	}
}

func TestRestoreEmptyMaskedText(t *testing.T) {
	original := []byte("a@b.com")
	spans := []entity.Span{{Kind: entity.EmailAddress, Start: 0, End: 7, Score: 0.9}}
	res := mask.Mask(original, spans)
	view := metacodec.Decode(res.Metadata)
	got := Restore(nil, view)
	if len(got) != 0 {
		t.Errorf("expected empty output for empty masked text, got %q", got)
	}
}

func TestRestoreSkipsMissingPlaceholder(t *testing.T) {
	original := []byte("a@b.com and c@d.com")
	spans := []entity.Span{
		{Kind: entity.EmailAddress, Start: 0, End: 7, Score: 0.9},
		{Kind: entity.EmailAddress, Start: 12, End: 19, Score: 0.9},
	}
	res := mask.Mask(original, spans)
	// Simulate an LLM dropping the second placeholder.
	ph2 := mask.Placeholder(entity.EmailAddress, 2)
	mutilated := []byte{}
	for i := 0; i < len(res.MaskedText); i++ {
		if i+len(ph2) <= len(res.MaskedText) && string(res.MaskedText[i:i+len(ph2)]) == ph2 {
			i += len(ph2) - 1
			continue
		}
		mutilated = append(mutilated, res.MaskedText[i])
	}
	view := metacodec.Decode(res.Metadata)
	got := Restore(mutilated, view)
	if string(got) == string(original) {
		t.Error("expected restoration to differ since a placeholder was dropped")
	}
	if len(got) == 0 {
		t.Error("restore should not crash or produce empty output when a placeholder is missing")
	}
}
