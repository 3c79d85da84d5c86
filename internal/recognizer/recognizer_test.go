package recognizer

import (
	"testing"

	"github.com/oneaifw/corefw/internal/entity"
	"github.com/oneaifw/corefw/internal/regexengine"
)

func compileAll(t *testing.T, specs []PatternSpec) *Recognizer {
	t.Helper()
	cache := map[string]*regexengine.Handle{}
	r, err := New(entity.EmailAddress, specs, func(pattern string) (*regexengine.Handle, error) {
		if h, ok := cache[pattern]; ok {
			return h, nil
		}
		h, err := regexengine.Compile(pattern)
		if err != nil {
			return nil, err
		}
		cache[pattern] = h
		return h, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestEmailPreset(t *testing.T) {
	specs := PresetsFor(entity.EmailAddress)
	r := compileAll(t, specs)
	text := "Contact me: a.b+1@test.io and visit https://ziglang.org"
	spans := r.Run([]byte(text))
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := text[spans[0].Start:spans[0].End]
	if got != "a.b+1@test.io" {
		t.Errorf("got %q", got)
	}
	if spans[0].Score != 0.90 {
		t.Errorf("score = %v, want 0.90", spans[0].Score)
	}
}

func TestLabeledVerificationCodeGroup(t *testing.T) {
	specs := PresetsFor(entity.VerificationCode)
	r := compileAll(t, specs)
	text := "use this temporary verification code: 9F4T2A."
	spans := r.Run([]byte(text))
	found := false
	for _, s := range spans {
		if text[s.Start:s.End] == "9F4T2A" {
			found = true
			if s.Score != 0.80 {
				t.Errorf("labeled code score = %v, want 0.80", s.Score)
			}
		}
	}
	if !found {
		t.Errorf("expected a span covering 9F4T2A, got %+v", spans)
	}
}

func TestValidatorOverridesScore(t *testing.T) {
	specs := PresetsFor(entity.EmailAddress)
	r := compileAll(t, specs)
	r.SetValidator(func(kind entity.Kind, matched string, def float64) (float64, bool) {
		return 0.10, true
	})
	spans := r.Run([]byte("a@b.com"))
	if len(spans) != 1 || spans[0].Score != 0.10 {
		t.Fatalf("expected validator-overridden score 0.10, got %+v", spans)
	}
}

func TestCursorAdvancesOnZeroLengthGroup(t *testing.T) {
	specs := []PatternSpec{{Name: "EMPTYOK", Pattern: `a*`, DefaultScore: 0.5}}
	r := compileAll(t, specs)
	// Should terminate, not loop forever.
	spans := r.Run([]byte("bbb"))
	if len(spans) == 0 {
		t.Fatal("expected at least one (possibly empty) match")
	}
}
