package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// scanNumber scans the ECMAScript numeric literal grammar: decimal with
// optional fraction and exponent, 0x/0o/0b radix prefixes, `_` digit
// separators, and the `n` bigint suffix. The value is never computed here,
// Token.Text carries the exact source slice.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.finishRadix(start, isHex, "hexadecimal")
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.finishRadix(start, isOct, "octal")
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.finishRadix(start, isBin, "binary")
		}
	}

	// integer part (allow leading '.'; the caller guarantees a digit follows)
	lx.eatDigits(isDec)

	// fraction; a lone trailing dot as in "1." or "1..toString" binds to the
	// number
	isFloat := false
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		isFloat = true
	}

	// exponent
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(save)
		} else {
			lx.eatDigits(isDec)
			isFloat = true
		}
	}

	// bigint suffix; only integers may carry it, but the parser does not
	// care, so just refuse it after a fraction or exponent
	if lx.cursor.Peek() == 'n' && !isFloat {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) finishRadix(start Mark, digit func(byte) bool, what string) token.Token {
	n := lx.eatDigits(digit)
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if n == 0 {
		lx.errLex(diag.LexBadNumber, sp, "missing digits in "+what+" literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// eatDigits consumes digits of the given class with `_` separators and
// returns the number of digits consumed.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		if digit(b) {
			lx.cursor.Bump()
			n++
			continue
		}
		if b == '_' {
			// a separator must sit between digits
			if _, b1, ok := lx.cursor.Peek2(); ok && digit(b1) && n > 0 {
				lx.cursor.Bump()
				continue
			}
		}
		break
	}
	return n
}
