package parser

import (
	"sodagql/internal/token"
)

// binPrec maps binary operator tokens to their binding power. Higher binds
// tighter; exponentiation is the one right-associative level.
var binPrec = map[token.Kind]int{
	token.QuestionQuestion: 1,
	token.OrOr:             2,
	token.AndAnd:           3,
	token.Pipe:             4,
	token.Caret:            5,
	token.Amp:              6,
	token.EqEq:             7,
	token.BangEq:           7,
	token.EqEqEq:           7,
	token.BangEqEq:         7,
	token.Lt:               8,
	token.Gt:               8,
	token.LtEq:             8,
	token.GtEq:             8,
	token.KwIn:             8,
	token.KwInstanceof:     8,
	token.Shl:              9,
	token.Shr:              9,
	token.UShr:             9,
	token.Plus:             10,
	token.Minus:            10,
	token.Star:             11,
	token.Slash:            11,
	token.Percent:          11,
	token.StarStar:         12,
}

func isRightAssoc(k token.Kind) bool {
	return k == token.StarStar
}

// isAssignOp reports whether the token is any assignment operator.
func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.StarStarAssign, token.SlashAssign, token.PercentAssign,
		token.AmpAssign, token.PipeAssign, token.CaretAssign,
		token.ShlAssign, token.ShrAssign, token.UShrAssign,
		token.AndAndAssign, token.OrOrAssign, token.NullishAssign:
		return true
	default:
		return false
	}
}
