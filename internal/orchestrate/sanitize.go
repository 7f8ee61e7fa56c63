package orchestrate

import (
	"strings"
)

// MaxQueryLength is the cap spec §4.8 step 1 and §8 boundary tests require: a query of
// exactly this length is accepted unmodified; anything longer is truncated to it.
const MaxQueryLength = 500

// shellHostileChars are stripped entirely (spec §4.8 step 1: "strip control and
// shell-hostile characters").
var shellHostileChars = "<>{}\\|^~[]`"

// Sanitize trims, strips control and shell-hostile characters, and caps length at
// MaxQueryLength (spec §4.8 step 1). An empty result after sanitization is the
// caller's signal to short-circuit with entity.ErrValidation.
func Sanitize(query string) string {
	trimmed := strings.TrimSpace(query)
	var sb strings.Builder
	sb.Grow(len(trimmed))
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if strings.ContainsRune(shellHostileChars, r) {
			continue
		}
		sb.WriteRune(r)
	}
	out := strings.TrimSpace(sb.String())
	if len(out) > MaxQueryLength {
		out = out[:MaxQueryLength]
	}
	return out
}
