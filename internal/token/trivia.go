package token

import "sodagql/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaShebang
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasNewline reports whether any trivia in the slice contains a line break.
// The parser consults this for automatic semicolon insertion.
func HasNewline(trivia []Trivia) bool {
	for _, tr := range trivia {
		switch tr.Kind {
		case TriviaNewline, TriviaShebang:
			return true
		case TriviaBlockComment:
			for i := 0; i < len(tr.Text); i++ {
				if tr.Text[i] == '\n' {
					return true
				}
			}
		}
	}
	return false
}
