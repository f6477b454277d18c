package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// scanRegex scans a regular expression literal including its flags. Inside a
// character class `/` loses its meaning, so `[/]` does not terminate the
// literal. A newline or EOF before the closing slash is an error.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // leading '/'
	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regular expression")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.Bump()
			// flags
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RegexLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regular expression")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
