package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"sodagql/internal/diag"
	"sodagql/internal/lexer"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// testReporter collects all diagnostics received from the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, span source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Span:     span,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	opts := lexer.Options{Reporter: reporter}
	lx := lexer.New(file, opts)

	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)",
				i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"foo", token.Ident, "foo"},
		{"_private", token.Ident, "_private"},
		{"$jquery", token.Ident, "$jquery"},
		{"gqlRuntime", token.Ident, "gqlRuntime"},
		{"snake_case_2", token.Ident, "snake_case_2"},
		{"über", token.Ident, "über"},
		{"__importDefault", token.Ident, "__importDefault"},
	}
	for _, tt := range tests {
		expectSingleToken(t, tt.input, tt.kind, tt.text)
	}
}

func TestKeywordsAndContextual(t *testing.T) {
	for text, kind := range map[string]token.Kind{
		"const":    token.KwConst,
		"function": token.KwFunction,
		"return":   token.KwReturn,
		"import":   token.KwImport,
		"export":   token.KwExport,
		"new":      token.KwNew,
		"await":    token.KwAwait,
		"null":     token.KwNull,
	} {
		expectSingleToken(t, text, kind, text)
	}

	// contextual keywords stay identifiers
	for _, text := range []string{"async", "of", "from", "as", "get", "set", "static"} {
		expectSingleToken(t, text, token.Ident, text)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1.", "1."},
		{"1e10", "1e10"},
		{"1.5e-3", "1.5e-3"},
		{"0xFF", "0xFF"},
		{"0b1010", "0b1010"},
		{"0o777", "0o777"},
		{"1_000_000", "1_000_000"},
		{"123n", "123n"},
		{"0xDEADn", "0xDEADn"},
	}
	for _, tt := range tests {
		expectSingleToken(t, tt.input, token.NumberLit, tt.text)
	}
}

func TestBadRadixNumber(t *testing.T) {
	lx, reporter := makeTestLexer("0x")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected Invalid, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected a diagnostic for empty hex literal")
	}
}

func TestStrings(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `'world'`, token.StringLit, `'world'`)
	expectSingleToken(t, `"esc \" quote"`, token.StringLit, `"esc \" quote"`)
	expectSingleToken(t, `'it\'s'`, token.StringLit, `'it\'s'`)
	expectSingleToken(t, "'line \\\ncontinued'", token.StringLit, "'line \\\ncontinued'")
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer(`"oops`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected Invalid, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected a diagnostic for unterminated string")
	}
}

func TestTemplates(t *testing.T) {
	tests := []string{
		"`plain`",
		"`with ${expr}`",
		"`nested ${ `inner ${x}` } tail`",
		"`braces ${ { a: 1 } } tail`",
		"`quote ${ \"}\" } tail`",
		"`multi\nline`",
	}
	for _, input := range tests {
		expectSingleToken(t, input, token.TemplateLit, input)
	}
}

func TestRegexVersusDivision(t *testing.T) {
	expectTokens(t, "a / b", []token.Kind{token.Ident, token.Slash, token.Ident})
	expectTokens(t, "x = /ab+c/g", []token.Kind{token.Ident, token.Assign, token.RegexLit})
	expectTokens(t, "f(/re/)", []token.Kind{token.Ident, token.LParen, token.RegexLit, token.RParen})
	expectTokens(t, "(a) / 2", []token.Kind{token.LParen, token.Ident, token.RParen, token.Slash, token.NumberLit})
	// a slash inside a character class does not close the literal
	expectSingleToken(t, "/[/]/", token.RegexLit, "/[/]/")
}

func TestOperators(t *testing.T) {
	expectTokens(t, "a === b", []token.Kind{token.Ident, token.EqEqEq, token.Ident})
	expectTokens(t, "a !== b", []token.Kind{token.Ident, token.BangEqEq, token.Ident})
	expectTokens(t, "a ?? b", []token.Kind{token.Ident, token.QuestionQuestion, token.Ident})
	expectTokens(t, "a?.b", []token.Kind{token.Ident, token.QuestionDot, token.Ident})
	expectTokens(t, "a ? .5 : 0", []token.Kind{token.Ident, token.Question, token.NumberLit, token.Colon, token.NumberLit})
	expectTokens(t, "x >>>= y", []token.Kind{token.Ident, token.UShrAssign, token.Ident})
	expectTokens(t, "x ||= y", []token.Kind{token.Ident, token.OrOrAssign, token.Ident})
	expectTokens(t, "(...args) => {}", []token.Kind{
		token.LParen, token.DotDotDot, token.Ident, token.RParen,
		token.Arrow, token.LBrace, token.RBrace,
	})
}

func TestArrowCallChain(t *testing.T) {
	expectTokens(t, "gql.model(() => f(x))", []token.Kind{
		token.Ident, token.Dot, token.Ident, token.LParen,
		token.LParen, token.RParen, token.Arrow,
		token.Ident, token.LParen, token.Ident, token.RParen,
		token.RParen,
	})
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("// header\n\nconst x = 1;")
	tok := lx.Next()
	if tok.Kind != token.KwConst {
		t.Fatalf("expected const, got %v", tok.Kind)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d trivia, got %v", len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("trivia %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
	if !token.HasNewline(tok.Leading) {
		t.Error("expected HasNewline to report the blank line")
	}
}

func TestBlockCommentTrivia(t *testing.T) {
	lx, reporter := makeTestLexer("/* banner */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("expected x, got %v(%q)", tok.Kind, tok.Text)
	}
	if len(tok.Leading) == 0 || tok.Leading[0].Kind != token.TriviaBlockComment {
		t.Errorf("expected leading block comment, got %v", tok.Leading)
	}
	if reporter.HasErrors() {
		t.Errorf("unexpected errors: %v", reporter.ErrorMessages())
	}
}

func TestShebang(t *testing.T) {
	lx, _ := makeTestLexer("#!/usr/bin/env node\nconst a = 1;")
	tok := lx.Next()
	if tok.Kind != token.KwConst {
		t.Fatalf("expected const, got %v", tok.Kind)
	}
	if len(tok.Leading) == 0 || tok.Leading[0].Kind != token.TriviaShebang {
		t.Errorf("expected shebang trivia, got %v", tok.Leading)
	}
}

func TestPrivateName(t *testing.T) {
	expectTokens(t, "this.#count", []token.Kind{token.KwThis, token.Dot, token.PrivateName})
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("let abc = 12;")
	lx.Next() // let
	tok := lx.Next()
	if tok.Text != "abc" {
		t.Fatalf("expected abc, got %q", tok.Text)
	}
	if tok.Span.Start != 4 || tok.Span.End != 7 {
		t.Errorf("expected span 4..7, got %d..%d", tok.Span.Start, tok.Span.End)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Errorf("Peek %v(%q) differs from Next %v(%q)", p.Kind, p.Text, n.Kind, n.Text)
	}
	if next := lx.Next(); next.Text != "b" {
		t.Errorf("expected b after consuming peeked token, got %q", next.Text)
	}
}

func TestEOFAfterEOF(t *testing.T) {
	lx, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}
