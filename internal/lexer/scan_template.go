package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// scanTemplate scans a whole template literal as a single opaque token,
// backticks included. Substitutions are skipped with brace counting; nested
// templates and strings inside a substitution are skipped recursively so
// their braces and backticks do not confuse the count.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening backtick
	if !lx.skipTemplateBody() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.TemplateLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// skipTemplateBody consumes up to and including the closing backtick.
func (lx *Lexer) skipTemplateBody() bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '`':
			lx.cursor.Bump()
			return true
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '$':
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '{' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				if !lx.skipSubstitution() {
					return false
				}
			} else {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipSubstitution consumes a `${...}` body up to and including the matching
// closing brace.
func (lx *Lexer) skipSubstitution() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '`':
			lx.cursor.Bump()
			if !lx.skipTemplateBody() {
				return false
			}
		case '\'', '"':
			if !lx.skipPlainString(b) {
				return false
			}
		case '/':
			// comments inside a substitution
			if _, b1, ok := lx.cursor.Peek2(); ok && (b1 == '/' || b1 == '*') {
				lx.skipComment(b1)
			} else {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) skipPlainString(quote byte) bool {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return true
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return false
			}
		}
		lx.cursor.Bump()
	}
	return false
}

func (lx *Lexer) skipComment(second byte) {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '/' or '*'
	if second == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return
	}
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
}
