package rtss

import "strings"

// Fingerprint uniquely identifies the program pair a (pass, render
// state) produces: the canonically ordered contributor type tags with
// their configuration digests. Stable across runs and independent of
// contributor insertion order.
type Fingerprint string

// computeFingerprint digests an assembled (canonically ordered)
// contributor list.
func computeFingerprint(active []SubRenderState) Fingerprint {
	var b strings.Builder
	for i, s := range active {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(s.Type())
		b.WriteByte('{')
		b.WriteString(s.StateKey())
		b.WriteByte('}')
	}
	return Fingerprint(b.String())
}
