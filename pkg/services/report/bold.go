package report

import "strings"

// BoldAlnum substitutes ASCII letters and digits with their Unicode
// mathematical bold counterparts. Only header lines go through this;
// body rows must stay pure ASCII so pasted output survives any
// monospaced destination.
func BoldAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 4)
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(0x1D400 + (r - 'A'))
		case r >= 'a' && r <= 'z':
			b.WriteRune(0x1D41A + (r - 'a'))
		case r >= '0' && r <= '9':
			b.WriteRune(0x1D7CE + (r - '0'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
