package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
	}{
		{"const", KwConst},
		{"function", KwFunction},
		{"return", KwReturn},
		{"import", KwImport},
		{"export", KwExport},
		{"true", KwTrue},
		{"null", KwNull},
	}
	for _, tc := range cases {
		k, ok := LookupKeyword(tc.text)
		if !ok || k != tc.kind {
			t.Errorf("LookupKeyword(%q) = %v, %v", tc.text, k, ok)
		}
	}
}

func TestContextualKeywordsStayIdent(t *testing.T) {
	for _, text := range []string{"async", "of", "from", "as", "get", "set", "static"} {
		if _, ok := LookupKeyword(text); ok {
			t.Errorf("%q should not be a reserved word", text)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Ident, "Ident"},
		{KwConst, "const"},
		{Arrow, "=>"},
		{QuestionDot, "?."},
		{DotDotDot, "..."},
		{EqEqEq, "==="},
		{Kind(255), "Kind(?)"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestTokenClassifiers(t *testing.T) {
	if !(Token{Kind: StringLit}).IsLiteral() {
		t.Error("StringLit should be a literal")
	}
	if !(Token{Kind: KwNull}).IsLiteral() {
		t.Error("null should count as a literal")
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Error("Ident is not a literal")
	}

	if !(Token{Kind: KwWhile}).IsKeyword() {
		t.Error("while should be a keyword")
	}
	if (Token{Kind: Plus}).IsKeyword() {
		t.Error("+ is not a keyword")
	}

	tok := Token{Kind: Ident, Text: "from"}
	if !tok.IsIdentText("from") {
		t.Error("IsIdentText should match spelling")
	}
	if tok.IsIdentText("of") {
		t.Error("IsIdentText should reject other spellings")
	}
}

func TestCanPrecedeRegex(t *testing.T) {
	cases := []struct {
		kind Kind
		want bool
	}{
		{Ident, false},
		{NumberLit, false},
		{RParen, false},
		{RBracket, false},
		{PlusPlus, false},
		{Assign, true},
		{LParen, true},
		{Comma, true},
		{KwReturn, true},
		{RBrace, true},
	}
	for _, tc := range cases {
		if got := (Token{Kind: tc.kind}).CanPrecedeRegex(); got != tc.want {
			t.Errorf("CanPrecedeRegex after %v = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
