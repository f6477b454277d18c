package lexer

import (
	"sodagql/internal/source"
	"sodagql/internal/token"
)

const utf8RuneSelf = 0x80

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
	prev   token.Token    // last significant token, for regex vs division
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Text:    "",
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate()

	case ch == '/' && lx.prev.CanPrecedeRegex():
		tok = lx.scanRegex()

	case ch == '#':
		tok = lx.scanPrivateName()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.prev = tok
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) tokenAt(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
