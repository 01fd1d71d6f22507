package extract

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// decodeJSString resolves JavaScript escape sequences in the body of a string
// or template literal. Malformed escapes are kept verbatim.
func decodeJSString(s string) string {
	if !strings.ContainsRune(s, '\\') && !strings.ContainsRune(s, '\r') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c == '\r' {
			// Template literals normalize CRLF and CR to LF.
			b.WriteByte('\n')
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			continue
		}
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		next := s[i+1]
		switch next {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '0':
			if i+2 < len(s) && s[i+2] >= '0' && s[i+2] <= '9' {
				b.WriteByte(next)
			} else {
				b.WriteByte(0)
			}
			i += 2
		case '\n':
			i += 2
		case '\r':
			i += 2
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(s, i+2, 2); ok {
				b.WriteRune(rune(r))
				i += 4
			} else {
				b.WriteByte(next)
				i += 2
			}
		case 'u':
			r, width := decodeUnicodeEscape(s, i)
			if width == 0 {
				b.WriteByte(next)
				i += 2
				continue
			}
			b.WriteRune(r)
			i += width
		default:
			r, size := utf8.DecodeRuneInString(s[i+1:])
			if r != '\u2028' && r != '\u2029' {
				b.WriteRune(r)
			}
			i += 1 + size
		}
	}
	return b.String()
}

// decodeUnicodeEscape decodes a \uXXXX, surrogate pair, or \u{X...} escape
// starting at s[i] == '\\'. A zero width means the escape is malformed.
func decodeUnicodeEscape(s string, i int) (rune, int) {
	if i+2 < len(s) && s[i+2] == '{' {
		end := strings.IndexByte(s[i+3:], '}')
		if end <= 0 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[i+3:i+3+end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 4
	}

	hi, ok := parseHex(s, i+2, 4)
	if !ok {
		return 0, 0
	}
	if utf16.IsSurrogate(rune(hi)) && i+12 <= len(s) && s[i+6] == '\\' && s[i+7] == 'u' {
		if lo, ok := parseHex(s, i+8, 4); ok {
			if r := utf16.DecodeRune(rune(hi), rune(lo)); r != utf8.RuneError {
				return r, 12
			}
		}
	}
	return rune(hi), 6
}

func parseHex(s string, start, n int) (uint64, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}
