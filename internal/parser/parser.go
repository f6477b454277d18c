package parser

import (
	"slices"

	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/lexer"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds per-file parse state. The whole file is lexed into a token
// buffer up front; arrow-function heads need unbounded lookahead to the
// matching paren, which a streaming one-token window cannot give.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one module into the provided arenas.
func ParseFile(
	fs *source.FileSet,
	f *source.File,
	arenas *ast.Builder,
	opts Options,
) Result {
	lx := lexer.New(f, lexer.Options{Reporter: opts.Reporter})
	toks := make([]token.Token, 0, len(f.Content)/4+8)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	p := Parser{
		toks:   toks,
		arenas: arenas,
		fs:     fs,
		opts:   opts,
	}
	p.file = arenas.Files.New(source.Span{File: f.ID, Start: 0, End: uint32(len(f.Content))})
	p.lastSpan = source.Span{File: f.ID}

	p.parseItems()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1 // EOF
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atIdent reports whether the next token is an identifier with the exact
// text, used for contextual keywords.
func (p *Parser) atIdent(text string) bool {
	t := p.peek()
	return t.Kind == token.Ident && t.Text == text
}

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// mark/resetTo allow speculative scans over the token buffer.
func (p *Parser) mark() int { return p.pos }

func (p *Parser) resetTo(mark int) { p.pos = mark }

func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes the expected token or reports and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.diagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// newlineBefore reports whether a line break sits in front of the next
// token; automatic semicolon insertion and the restricted productions
// (return/throw/break/continue and postfix ++/--) use it.
func (p *Parser) newlineBefore() bool {
	return token.HasNewline(p.peek().Leading)
}

// semi ends a statement: an explicit semicolon, or an insertion point (line
// break, closing brace, EOF). Anything else is reported once and parsing
// continues at the offending token.
func (p *Parser) semi() {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.newlineBefore() {
		return
	}
	p.err(diag.SynExpectSemicolon, "expected ';' after statement")
}

func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		before := p.pos
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
		} else {
			p.resyncTop()
		}
		if p.pos == before && !p.at(token.EOF) {
			// ensure progress on malformed input
			p.advance()
		}
	}
}

// resyncTop skips ahead to a statement boundary after an error.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.atOr(token.KwImport, token.KwExport, token.KwConst, token.KwLet, token.KwVar,
			token.KwFunction, token.KwClass, token.KwIf, token.KwFor, token.KwWhile,
			token.KwReturn, token.KwTry, token.KwSwitch) {
			return
		}
		p.advance()
	}
}

// parseItem dispatches on the leading token of a top-level construct.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.peek().Kind {
	case token.KwImport:
		// `import(...)` and `import.meta` are expressions, not declarations
		if next := p.peekN(1); next.Kind == token.LParen || next.Kind == token.Dot {
			break
		}
		return p.parseImportItem()
	case token.KwExport:
		return p.parseExportItem()
	}
	start := p.peek().Span
	stmt, ok := p.parseStmt()
	if !ok {
		return ast.NoItemID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Items.NewStmtItem(sp, stmt), true
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Intern(s)
}
