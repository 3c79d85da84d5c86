package recognizer

import "github.com/oneaifw/corefw/internal/entity"

// KindPresets lists, for each entity kind with bundled regex coverage, the
// exact pattern specs required by §4.C. Values are fixed by the external
// contract — do not edit patterns, scores, or group indices.
var KindPresets = []struct {
	Kind  entity.Kind
	Specs []PatternSpec
}{
	{
		Kind: entity.EmailAddress,
		Specs: []PatternSpec{
			{Name: "EMAIL", Pattern: `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`, DefaultScore: 0.90},
		},
	},
	{
		Kind: entity.URLAddress,
		Specs: []PatternSpec{
			{Name: "URL", Pattern: `https?://[A-Za-z0-9._~:/?#\[\]@!$&'()*+,;=%-]+`, DefaultScore: 0.80},
		},
	},
	{
		Kind: entity.PhoneNumber,
		Specs: []PatternSpec{
			{Name: "PHONE", Pattern: `\+?\d[\d -]{7,}\d`, DefaultScore: 0.70},
		},
	},
	{
		Kind: entity.BankNumber,
		Specs: []PatternSpec{
			{Name: "BANK", Pattern: `\b\d{12,19}\b`, DefaultScore: 0.60},
		},
	},
	{
		Kind: entity.PrivateKey,
		Specs: []PatternSpec{
			{Name: "PEM_PRIVKEY", Pattern: `-----BEGIN (?:OPENSSH|RSA|EC|DSA) PRIVATE KEY-----[\s\S]*?-----END (?:OPENSSH|RSA|EC|DSA) PRIVATE KEY-----`, DefaultScore: 0.95},
			{Name: "HEX_PRIVKEY", Pattern: `\b[0-9a-fA-F]{64}\b`, DefaultScore: 0.75},
		},
	},
	{
		Kind: entity.VerificationCode,
		Specs: []PatternSpec{
			{Name: "VCODE", Pattern: `\b\d{4,8}\b`, DefaultScore: 0.50},
			{Name: "VCODE_LABELED_ALNUM", Pattern: `(?i)\b(?:verification\s*code|verify\s*code|otp|2fa\s*code|auth(?:entication)?\s*code)\s*[:=\-]?\s*([A-Za-z0-9]{4,12})`, DefaultScore: 0.80, GroupIndex: 1},
		},
	},
	{
		Kind: entity.Password,
		Specs: []PatternSpec{
			{Name: "PASSWORD_LITERAL", Pattern: `(?i)\bpassword\s*[:=]\s*(\S+)`, DefaultScore: 0.40, GroupIndex: 1},
			{Name: "PWD_LITERAL", Pattern: `(?i)\b(?:pwd|pass|passwd|passcode)\s*[:=]\s*(\S+)`, DefaultScore: 0.60, GroupIndex: 1},
		},
	},
	{
		Kind: entity.RandomSeed,
		Specs: []PatternSpec{
			{Name: "SEED_PHRASE", Pattern: `(?i)(seed|mnemonic)\s*[:=]?\s*([a-z]+\s+){11,23}[a-z]+`, DefaultScore: 0.70},
		},
	},
}

// AllKinds returns the full closed set of entity kinds a session constructs a
// recognizer for, in the order session construction should visit them. Kinds
// with no bundled preset (PhysicalAddress, Organization, UserName, Payment)
// still get an (empty) recognizer so callers may register extra patterns
// against them.
func AllKinds() []entity.Kind {
	return []entity.Kind{
		entity.PhysicalAddress,
		entity.EmailAddress,
		entity.Organization,
		entity.UserName,
		entity.PhoneNumber,
		entity.BankNumber,
		entity.Payment,
		entity.VerificationCode,
		entity.Password,
		entity.RandomSeed,
		entity.PrivateKey,
		entity.URLAddress,
	}
}

// PresetsFor returns the preset specs configured for kind, or nil if kind has
// none.
func PresetsFor(kind entity.Kind) []PatternSpec {
	for _, kp := range KindPresets {
		if kp.Kind == kind {
			return kp.Specs
		}
	}
	return nil
}
