package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// scanString scans a single- or double-quoted string literal. Escapes are
// consumed but not decoded; a backslash before a newline is the legal line
// continuation. A raw newline terminates the literal with an error.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
