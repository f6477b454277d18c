package token

import (
	"sodagql/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string,
// template, regex, or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, TemplateLit, RegexLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	_, ok := keywordNames[t.Kind]
	return ok
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentText reports whether the token is an identifier with the exact
// spelling, used for contextual keywords.
func (t Token) IsIdentText(text string) bool {
	return t.Kind == Ident && t.Text == text
}

// CanPrecedeRegex reports whether a `/` following this token starts a
// regular expression literal rather than a division. The zero Token (start
// of input) also allows a regex.
func (t Token) CanPrecedeRegex() bool {
	switch t.Kind {
	case Ident, PrivateName, NumberLit, StringLit, TemplateLit, RegexLit,
		KwThis, KwSuper, KwTrue, KwFalse, KwNull,
		RParen, RBracket, PlusPlus, MinusMinus:
		return false
	case RBrace:
		// After a block a `/` is a regex; after an object literal it is a
		// division. Blocks are overwhelmingly more common in statement
		// position, so side with regex.
		return true
	default:
		return true
	}
}
