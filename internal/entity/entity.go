// Package entity defines the closed set of PII entity kinds and the small
// supporting enums that travel across the C ABI. The ordinal value of Kind is
// the wire format; the stringified name is embedded verbatim inside
// placeholders (see package mask), so neither the order nor the names may be
// changed without breaking every caller that has persisted a metadata blob.
package entity

// Kind is a closed, byte-sized tag identifying a category of sensitive data.
// None is the zero value and never appears in an emitted span.
type Kind uint8

// Entity kinds, in wire order. Renumbering is a breaking change.
const (
	None Kind = iota
	PhysicalAddress
	EmailAddress
	Organization
	UserName
	PhoneNumber
	BankNumber
	Payment
	VerificationCode
	Password
	RandomSeed
	PrivateKey
	URLAddress
)

var kindNames = [...]string{
	None:             "NONE",
	PhysicalAddress:  "PHYSICAL_ADDRESS",
	EmailAddress:     "EMAIL_ADDRESS",
	Organization:     "ORGANIZATION",
	UserName:         "USER_NAME",
	PhoneNumber:      "PHONE_NUMBER",
	BankNumber:       "BANK_NUMBER",
	Payment:          "PAYMENT",
	VerificationCode: "VERIFICATION_CODE",
	Password:         "PASSWORD",
	RandomSeed:       "RANDOM_SEED",
	PrivateKey:       "PRIVATE_KEY",
	URLAddress:       "URL_ADDRESS",
}

// String returns the enum name exactly as it appears inside placeholders.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "NONE"
}

// KindFromName reverses String; used when parsing a placeholder back into a
// Kind during restoration testing and diagnostics. ok is false for unknown names.
func KindFromName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return None, false
}

// Valid reports whether k is one of the closed set of declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// BIOTag classifies a single NER token entry's position within an entity span.
type BIOTag uint8

const (
	// TagNone marks a token outside any entity.
	TagNone BIOTag = iota
	// TagBegin marks the first token of an entity ("B-" or "S-" in the host's scheme).
	TagBegin
	// TagInside marks a continuation token ("I-" or "E-" in the host's scheme).
	TagInside
)

// ParseBIOTag maps a host NER scheme's tag prefix to the internal BIOTag.
// "B-"/"S-" map to TagBegin; "I-"/"E-" map to TagInside; anything else is TagNone.
func ParseBIOTag(raw string) BIOTag {
	if len(raw) == 0 {
		return TagNone
	}
	switch raw[0] {
	case 'B', 'S', 'b', 's':
		return TagBegin
	case 'I', 'E', 'i', 'e':
		return TagInside
	default:
		return TagNone
	}
}

// NERMode selects how the NER recognizer describes the spans it emits. It has
// no effect on detection, only on the informational Description field.
type NERMode uint8

const (
	// TokenClassification aggregates per-token BIO tags (the common case).
	TokenClassification NERMode = iota
	// SequenceClassification treats the whole input as a single labeled span.
	SequenceClassification
)

// Description returns the informational string attached to spans produced
// under this mode.
func (m NERMode) Description() string {
	if m == SequenceClassification {
		return "sequence"
	}
	return "token"
}

// NEREntry is one token-level annotation supplied by the host's external NER
// pipeline. Offsets are UTF-8 byte offsets into the original text.
type NEREntry struct {
	Kind       Kind
	Tag        BIOTag
	Score      float64
	TokenIndex uint32
	Start      uint32
	End        uint32
	// Text is the token's textual content, used only to detect the "##"
	// subword-continuation prefix; the host may leave it empty if its
	// tokenizer never emits subword prefixes.
	Text string
}

// Span is an internal recognition span: a candidate PII region with a score
// and the kind that produced it. Invariants: Start <= End <= len(text); Score
// in [0,1]; Start/End must fall on UTF-8 code-point boundaries.
type Span struct {
	Kind        Kind
	Start       uint32
	End         uint32
	Score       float64
	Description string
}

// Len returns the byte length of the span.
func (s Span) Len() uint32 { return s.End - s.Start }

// Overlaps reports whether s and o overlap under the half-open interval rule:
// [a,b) and [c,d) overlap iff a<d && c<b. Spans that merely touch at an
// endpoint do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}
