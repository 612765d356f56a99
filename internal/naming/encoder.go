package naming

import "strings"

// encodeValue makes a raw segment safe for use as the value portion of a
// key=value pair inside an ObjectName. Characters that carry meaning in
// the structured-name syntax (quote, equals, comma, colon, the * and ?
// wildcards), whitespace and control characters are percent-escaped as
// %XX. The percent sign itself is escaped so distinct inputs never encode
// to the same output.
//
// Not idempotent: encoding already-encoded text double-escapes the
// percent signs. Call it exactly once, on raw input.
func encodeValue(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if needsEscape(c) {
			b.WriteByte('%')
			b.WriteByte(hexUpper[c>>4])
			b.WriteByte(hexUpper[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

const hexUpper = "0123456789ABCDEF"

func needsEscape(c byte) bool {
	switch c {
	case '%', '"', '=', ',', ':', '*', '?', ' ':
		return true
	}
	return c < 0x20 || c == 0x7f
}
