package entity

import "testing"

func TestKindStringRoundTrip(t *testing.T) {
	for k := None; k <= URLAddress; k++ {
		name := k.String()
		if name == "" {
			t.Fatalf("kind %d has empty name", k)
		}
		got, ok := KindFromName(name)
		if !ok || got != k {
			t.Errorf("KindFromName(%q) = %v, %v; want %v, true", name, got, ok, k)
		}
	}
}

func TestKindValid(t *testing.T) {
	if !EmailAddress.Valid() {
		t.Error("EmailAddress should be valid")
	}
	if Kind(255).Valid() {
		t.Error("Kind(255) should not be valid")
	}
}

func TestParseBIOTag(t *testing.T) {
	cases := map[string]BIOTag{
		"B-PER":  TagBegin,
		"S-PER":  TagBegin,
		"I-PER":  TagInside,
		"E-PER":  TagInside,
		"O":      TagNone,
		"":       TagNone,
		"b-addr": TagBegin,
	}
	for raw, want := range cases {
		if got := ParseBIOTag(raw); got != want {
			t.Errorf("ParseBIOTag(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{Start: 0, End: 5}
	b := Span{Start: 4, End: 10}
	c := Span{Start: 5, End: 10}
	if !a.Overlaps(b) {
		t.Error("a and b should overlap")
	}
	if a.Overlaps(c) {
		t.Error("a and c only touch at endpoint 5, should not overlap")
	}
}

func TestNERModeDescription(t *testing.T) {
	if TokenClassification.Description() != "token" {
		t.Error("expected \"token\"")
	}
	if SequenceClassification.Description() != "sequence" {
		t.Error("expected \"sequence\"")
	}
}
