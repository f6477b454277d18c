package lexer

import (
	"sodagql/internal/diag"
	"sodagql/internal/token"
)

// Greedy matching: 3-byte sequences first, then 2-byte, then singles.
// `>>>=` is the one 4-byte operator and rides on the `>>>` match.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return lx.tokenAt(k, start)
	}

	switch {
	case lx.try3('.', '.', '.'):
		return emit(token.DotDotDot)
	case lx.try3('=', '=', '='):
		return emit(token.EqEqEq)
	case lx.try3('!', '=', '='):
		return emit(token.BangEqEq)
	case lx.try3('*', '*', '='):
		return emit(token.StarStarAssign)
	case lx.try3('<', '<', '='):
		return emit(token.ShlAssign)
	case lx.try3('>', '>', '>'):
		if lx.cursor.Eat('=') {
			return emit(token.UShrAssign)
		}
		return emit(token.UShr)
	case lx.try3('>', '>', '='):
		return emit(token.ShrAssign)
	case lx.try3('&', '&', '='):
		return emit(token.AndAndAssign)
	case lx.try3('|', '|', '='):
		return emit(token.OrOrAssign)
	case lx.try3('?', '?', '='):
		return emit(token.NullishAssign)
	}

	switch {
	case lx.try2('=', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('+', '+'):
		return emit(token.PlusPlus)
	case lx.try2('-', '-'):
		return emit(token.MinusMinus)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	case lx.try2('?', '?'):
		return emit(token.QuestionQuestion)
	case lx.isOptionalChain():
		lx.cursor.Bump()
		lx.cursor.Bump()
		return emit(token.QuestionDot)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	case lx.try2('&', '='):
		return emit(token.AmpAssign)
	case lx.try2('|', '='):
		return emit(token.PipeAssign)
	case lx.try2('^', '='):
		return emit(token.CaretAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '~':
		return emit(token.Tilde)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

// `?.` is optional chaining unless a digit follows, as in `a ? .5 : 0`.
func (lx *Lexer) isOptionalChain() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '?' || b1 != '.' {
		return false
	}
	if _, _, b2, ok3 := lx.cursor.Peek3(); ok3 && isDec(b2) {
		return false
	}
	return true
}
