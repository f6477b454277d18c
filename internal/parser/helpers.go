package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeStringLit converts a raw string literal token (quotes included) into
// its runtime value. Escapes that cannot be decoded are kept verbatim rather
// than rejected; the lexer already validated termination.
func decodeStringLit(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			i++
			continue
		}
		e := body[i+1]
		i += 2
		switch e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case 'x':
			if i+2 <= len(body) {
				if n, err := strconv.ParseUint(body[i:i+2], 16, 8); err == nil {
					sb.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			sb.WriteByte(e)
		case 'u':
			if i < len(body) && body[i] == '{' {
				end := strings.IndexByte(body[i:], '}')
				if end > 1 {
					if n, err := strconv.ParseUint(body[i+1:i+end], 16, 32); err == nil && n <= utf8.MaxRune {
						sb.WriteRune(rune(n))
						i += end + 1
						continue
					}
				}
			} else if i+4 <= len(body) {
				if n, err := strconv.ParseUint(body[i:i+4], 16, 16); err == nil {
					sb.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			sb.WriteByte(e)
		default:
			sb.WriteByte(e)
		}
	}
	return sb.String()
}
