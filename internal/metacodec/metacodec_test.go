package metacodec

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := []byte("Contact me: a.b+1@test.io and visit https://ziglang.org, my name is John Doe.")
	spans := []SpanRecord{
		{EntityID: 1, EntityType: 2, Start: 12, End: 25},
		{EntityID: 2, EntityType: 12, Start: 36, End: 56},
	}
	blob := Encode(original, spans)

	if len(blob) < 8 {
		t.Fatalf("blob too short: %d", len(blob))
	}
	view := Decode(blob)
	if len(view.Spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(view.Spans))
	}
	got0 := string(view.MatchedText(view.Spans[0]))
	want0 := string(original[12:25])
	if got0 != want0 {
		t.Errorf("span 0 matched text = %q, want %q", got0, want0)
	}
	got1 := string(view.MatchedText(view.Spans[1]))
	want1 := string(original[36:56])
	if got1 != want1 {
		t.Errorf("span 1 matched text = %q, want %q", got1, want1)
	}
}

func TestEncodeAlignsSpanArray(t *testing.T) {
	original := []byte("abcde")
	spans := []SpanRecord{{EntityID: 1, EntityType: 1, Start: 0, End: 3}}
	blob := Encode(original, spans)
	// header(8) + text(3) = 11, padded to 16.
	spansOffset := 16
	if len(blob) != spansOffset+recordSize {
		t.Fatalf("blob length = %d, want %d", len(blob), spansOffset+recordSize)
	}
}

func TestDecodeTruncatedBlob(t *testing.T) {
	view := Decode([]byte{1, 2, 3})
	if len(view.Spans) != 0 || len(view.ReferencedText) != 0 {
		t.Errorf("expected empty view for truncated blob, got %+v", view)
	}
}

func TestDecodeEmptyBlob(t *testing.T) {
	view := Decode(nil)
	if len(view.Spans) != 0 {
		t.Errorf("expected no spans for nil blob")
	}
}

func TestEncodeNoSpans(t *testing.T) {
	blob := Encode([]byte("hello"), nil)
	view := Decode(blob)
	if len(view.Spans) != 0 {
		t.Errorf("expected zero spans, got %d", len(view.Spans))
	}
}
