package addrfuse

import (
	"strings"
	"testing"

	"github.com/oneaifw/corefw/internal/entity"
)

func TestBitsetPrivacyThreshold(t *testing.T) {
	var b Bitset
	if b.MeetsPrivacyThreshold() {
		t.Error("empty bitset should not meet threshold")
	}
	b = b.Set(L5HouseNumber)
	if !b.MeetsPrivacyThreshold() {
		t.Error("L5 alone should meet threshold")
	}
	var c Bitset
	c = c.Set(L4POI).Set(L2Floor)
	if !c.MeetsPrivacyThreshold() {
		t.Error("L4+L2 should meet threshold")
	}
	var d Bitset
	d = d.Set(L4POI)
	if d.MeetsPrivacyThreshold() {
		t.Error("L4 alone should not meet threshold")
	}
}

func TestBitsetLowestHighestRank(t *testing.T) {
	var b Bitset
	b = b.Set(L9City).Set(L1Room).Set(L5HouseNumber)
	if b.LowestRank() != L1Room.Rank() {
		t.Errorf("LowestRank = %d, want %d", b.LowestRank(), L1Room.Rank())
	}
	if b.HighestRank() != L9City.Rank() {
		t.Errorf("HighestRank = %d, want %d", b.HighestRank(), L9City.Rank())
	}
}

func TestTokenizeFindsProvinceCityDistrictRoad(t *testing.T) {
	text := []byte("江苏省南京市鼓楼区广州路18号楼之3")
	toks := Tokenize(text, 0, len(text), 0)
	var levels []Level
	for _, tok := range toks {
		levels = append(levels, tok.Level)
	}
	want := map[Level]bool{
		L10Province: true, L9City: true, L8District: true, L6Road: true,
		L5HouseNumber: true, L3Building: true, L1Room: true,
	}
	got := map[Level]bool{}
	for _, l := range levels {
		got[l] = true
	}
	for level := range want {
		if !got[level] {
			t.Errorf("expected level %v among tokens %+v", level, toks)
		}
	}
}

func TestGrowAddressS3(t *testing.T) {
	text := []byte("请寄到江苏省南京市鼓楼区广州路18号楼之3")
	seedText := "鼓楼区"
	idx := strings.Index(string(text), seedText)
	if idx < 0 {
		t.Fatal("seed text not found")
	}
	seed := entity.Span{
		Kind:  entity.PhysicalAddress,
		Start: uint32(idx),
		End:   uint32(idx + len(seedText)),
		Score: 0.9,
	}
	grown := Grow([]entity.Span{seed}, text)
	if len(grown) != 1 {
		t.Fatalf("got %d spans, want 1: %+v", len(grown), grown)
	}
	g := grown[0]
	substr := string(text[g.Start:g.End])
	wantSpan := "江苏省南京市鼓楼区广州路18号楼之3"
	if substr != wantSpan {
		t.Errorf("grown span = %q, want %q", substr, wantSpan)
	}

	var bits Bitset
	for _, tok := range Tokenize(text, int(g.Start), int(g.End), 0) {
		bits = bits.Set(tok.Level)
		if tok.EmbeddedLevel != LevelNone {
			bits = bits.Set(tok.EmbeddedLevel)
		}
	}
	for _, level := range []Level{L10Province, L9City, L8District, L6Road, L5HouseNumber, L3Building, L1Room} {
		if !bits.Has(level) {
			t.Errorf("grown span %q missing level %v", substr, level)
		}
	}

	const wantScore = 0.9999 - 0.0025*1 // LowestRank() == L1Room.Rank() == 1
	if diff := g.Score - wantScore; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("score = %v, want %v", g.Score, wantScore)
	}
}

func TestGrowDropsBelowPrivacyThreshold(t *testing.T) {
	text := []byte("中国")
	seed := entity.Span{Kind: entity.PhysicalAddress, Start: 0, End: uint32(len(text)), Score: 0.9}
	grown := Grow([]entity.Span{seed}, text)
	if len(grown) != 0 {
		t.Errorf("a bare country name should not meet the privacy threshold, got %+v", grown)
	}
}

func TestGrowPassesThroughNonAddressKinds(t *testing.T) {
	seed := entity.Span{Kind: entity.EmailAddress, Start: 0, End: 5, Score: 0.9}
	out := Grow([]entity.Span{seed}, []byte("a@b.c"))
	if len(out) != 1 || out[0].Kind != entity.EmailAddress {
		t.Errorf("non-address kinds should pass through unchanged, got %+v", out)
	}
}
