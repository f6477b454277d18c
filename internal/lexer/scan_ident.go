package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies reserved words via
// LookupKeyword. Contextual keywords (async, of, from, as, get, set, static)
// stay Ident. Token.Text is exactly the source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for {
			b := lx.cursor.Peek()
			if !isIdentContinueByte(b) {
				if b < utf8RuneSelf {
					break
				}
				// identifier continues with a Unicode rune
				r2, sz2 := lx.peekRune()
				if sz2 == 0 || !isIdentContinueRune(r2) {
					break
				}
				lx.bumpRune()
				continue
			}
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanPrivateName scans a `#name` class member reference.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if b := lx.cursor.Peek(); !isIdentStartByte(b) && b < utf8RuneSelf {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "expected identifier after '#'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	lx.scanIdentOrKeyword()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.PrivateName, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
