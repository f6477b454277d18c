package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token.
// - runs of ' ' and '\t' coalesce into one TriviaSpace
// - runs of '\n' coalesce into one TriviaNewline ('\r' is gone after load
//   normalization but is tolerated here)
// - //... up to '\n' becomes TriviaLineComment
// - /* ... */ becomes TriviaBlockComment; block comments do not nest in
//   ECMAScript, an unterminated one is reported and clipped at EOF
// - #!... on the very first byte becomes TriviaShebang
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// shebang, only at offset zero
		if b == '#' && lx.cursor.Off == 0 {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '!' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				lx.hold = append(lx.hold, token.Trivia{
					Kind: token.TriviaShebang,
					Span: sp,
					Text: string(lx.file.Content[sp.Start:sp.End]),
				})
				continue
			}
		}

		// spaces/tabs
		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// newlines (coalesced)
		if b == '\n' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != '\n' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// comments
		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		// no more trivia
		break
	}
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaLineComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaBlockComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	default:
		// not a comment; rewind so it scans as an operator or a regex
		lx.cursor.Reset(start)
		return false
	}
}
