package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwVar, token.KwLet, token.KwConst:
		// `let` is contextual in sloppy mode but transpiled modules are
		// strict, so treat it as a declaration unconditionally
		stmt, ok := p.parseVarDecl()
		if !ok {
			return ast.NoStmtID, false
		}
		p.semi()
		return stmt, true
	case token.KwFunction:
		return p.parseFunctionDecl()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwTry:
		return p.parseTry()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwBreak, token.KwContinue:
		return p.parseBreakContinue()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		sp := p.advance().Span
		return p.arenas.Stmts.NewEmpty(sp), true
	case token.Ident:
		if p.atIdent("async") && p.peekN(1).Kind == token.KwFunction && !token.HasNewline(p.peekN(1).Leading) {
			return p.parseFunctionDecl()
		}
		if p.atIdent("debugger") && isStmtEnd(p.peekN(1)) {
			sp := p.advance().Span
			p.semi()
			return p.arenas.Stmts.NewDebugger(sp), true
		}
		// label: statement
		if p.peekN(1).Kind == token.Colon {
			label := p.advance()
			p.advance() // ':'
			body, ok := p.parseStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			sp := label.Span.Cover(p.lastSpan)
			return p.arenas.Stmts.NewLabeled(sp, p.intern(label.Text), body), true
		}
	}
	return p.parseExprStmt()
}

func isStmtEnd(t token.Token) bool {
	return t.Kind == token.Semicolon || t.Kind == token.RBrace || t.Kind == token.EOF ||
		token.HasNewline(t.Leading)
}

// parseVarDecl parses a var/let/const declaration without the terminator.
func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	kw := p.advance()
	decls := make([]ast.VarDeclarator, 0, 1)
	for {
		declStart := p.peek().Span
		pat, ok := p.parseBindingPat()
		if !ok {
			return ast.NoStmtID, false
		}
		init := ast.NoExprID
		if p.at(token.Assign) {
			p.advance()
			init, ok = p.parseAssignExpr()
			if !ok {
				return ast.NoStmtID, false
			}
		}
		decls = append(decls, ast.VarDeclarator{
			Pat:  pat,
			Init: init,
			Span: declStart.Cover(p.lastSpan),
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewVarDecl(sp, kw.Kind, decls), true
}

// parseFunctionDecl parses `[async] function [*] name(params) { body }`.
func (p *Parser) parseFunctionDecl() (ast.StmtID, bool) {
	start := p.peek().Span
	async := false
	if p.atIdent("async") {
		p.advance()
		async = true
	}
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'"); !ok {
		return ast.NoStmtID, false
	}
	generator := false
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.NoStmtID, false
	}
	fn, ok := p.parseFunctionRest(start, p.intern(nameTok.Text), async, generator)
	if !ok {
		return ast.NoStmtID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFnDecl(sp, fn), true
}

// parseFunctionRest parses `(params) { body }` into an ExprFunction node.
func (p *Parser) parseFunctionRest(start source.Span, name source.StringID, async, generator bool) (ast.ExprID, bool) {
	params, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Exprs.NewFunction(sp, name, params, body, async, generator), true
}

// parseParams parses a parenthesized parameter list of binding patterns.
func (p *Parser) parseParams() ([]ast.PatID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('"); !ok {
		return nil, false
	}
	params := make([]ast.PatID, 0, 4)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pat, ok := p.parseBindingElement()
		if !ok {
			return nil, false
		}
		params = append(params, pat)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseClassDecl() (ast.StmtID, bool) {
	start := p.peek().Span
	class, ok := p.parseClassExpr(true)
	if !ok {
		return ast.NoStmtID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Stmts.NewClassDecl(sp, class), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	arg := ast.NoExprID
	// restricted production: a newline after `return` ends the statement
	if !p.newlineBefore() && !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		var ok bool
		arg, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	p.semi()
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewReturn(sp, arg), true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'if'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewIf(sp, cond, then, els), true
}

func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	isAwait := false
	if p.at(token.KwAwait) {
		p.advance()
		isAwait = true
	}
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	var initStmt ast.StmtID
	var leftExpr ast.ExprID
	switch {
	case p.at(token.Semicolon):
		// empty init
	case p.atOr(token.KwVar, token.KwLet, token.KwConst):
		var ok bool
		initStmt, ok = p.parseVarDecl()
		if !ok {
			return ast.NoStmtID, false
		}
	default:
		var ok bool
		leftExpr, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	// for-in / for-of
	if p.at(token.KwIn) || p.atIdent("of") {
		isOf := p.atIdent("of")
		p.advance()
		right, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		sp := kw.Span.Cover(p.lastSpan)
		return p.arenas.Stmts.NewForInOf(sp, ast.StmtForInOfData{
			Decl:  initStmt,
			Left:  leftExpr,
			Right: right,
			Body:  body,
			Of:    isOf,
			Await: isAwait,
		}), true
	}

	if leftExpr != ast.NoExprID {
		initStmt = p.arenas.Stmts.NewExprStmt(p.arenas.Exprs.Get(leftExpr).Span, leftExpr)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for"); !ok {
		return ast.NoStmtID, false
	}
	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for"); !ok {
		return ast.NoStmtID, false
	}
	post := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFor(sp, initStmt, cond, post, body), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'while'"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewWhile(sp, cond, body), true
}

func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewDoWhile(sp, cond, body), true
}

func (p *Parser) parseSwitch() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '(' after 'switch'"); !ok {
		return ast.NoStmtID, false
	}
	disc, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'"); !ok {
		return ast.NoStmtID, false
	}
	cases := make([]ast.SwitchCase, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseStart := p.peek().Span
		test := ast.NoExprID
		switch p.peek().Kind {
		case token.KwCase:
			p.advance()
			test, ok = p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
		case token.KwDefault:
			p.advance()
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default'")
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':'"); !ok {
			return ast.NoStmtID, false
		}
		body := make([]ast.StmtID, 0, 2)
		for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			stmt, ok := p.parseStmt()
			if !ok {
				return ast.NoStmtID, false
			}
			body = append(body, stmt)
		}
		cases = append(cases, ast.SwitchCase{
			Test: test,
			Body: body,
			Span: caseStart.Cover(p.lastSpan),
		})
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		return ast.NoStmtID, false
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewSwitch(sp, disc, cases), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	block, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtTryData{Block: block}
	if p.at(token.KwCatch) {
		p.advance()
		if p.at(token.LParen) {
			p.advance()
			param, ok := p.parseBindingPat()
			if !ok {
				return ast.NoStmtID, false
			}
			data.CatchParam = param
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
				return ast.NoStmtID, false
			}
		}
		data.CatchBody, ok = p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if p.at(token.KwFinally) {
		p.advance()
		data.Finally, ok = p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if data.CatchBody == ast.NoStmtID && data.Finally == ast.NoStmtID {
		p.err(diag.SynUnexpectedToken, "expected 'catch' or 'finally' after try block")
		return ast.NoStmtID, false
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewTry(sp, data), true
}

func (p *Parser) parseThrow() (ast.StmtID, bool) {
	kw := p.advance()
	if p.newlineBefore() {
		p.err(diag.SynExpectExpression, "newline not allowed after 'throw'")
		return ast.NoStmtID, false
	}
	arg, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewThrow(sp, arg), true
}

func (p *Parser) parseBreakContinue() (ast.StmtID, bool) {
	kw := p.advance()
	label := source.NoStringID
	if p.at(token.Ident) && !p.newlineBefore() {
		label = p.intern(p.advance().Text)
	}
	p.semi()
	sp := kw.Span.Cover(p.lastSpan)
	if kw.Kind == token.KwBreak {
		return p.arenas.Stmts.NewBreak(sp, label), true
	}
	return p.arenas.Stmts.NewContinue(sp, label), true
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	stmts := make([]ast.StmtID, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		return ast.NoStmtID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewBlock(sp, stmts), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.semi()
	sp := start.Cover(p.lastSpan)
	return p.arenas.Stmts.NewExprStmt(sp, expr), true
}
