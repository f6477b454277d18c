package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// parseExpr parses a full expression including comma sequences.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	first, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	exprs := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, next)
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(sp, exprs), true
}

// parseAssignExpr parses one assignment-level expression: arrows, yield,
// conditionals, and assignments.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	if p.at(token.KwYield) {
		return p.parseYield()
	}

	// arrow heads need lookahead before the general expression machinery
	if arrow, matched, ok := p.tryParseArrow(); matched {
		return arrow, ok
	}

	start := p.peek().Span
	left, ok := p.parseCondExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if op := p.peek().Kind; isAssignOp(op) {
		if !isAssignTarget(p.arenas, left) {
			p.report(diag.SynBadAssignTarget, diag.SevError, p.arenas.Exprs.Get(left).Span,
				"invalid assignment target")
			return ast.NoExprID, false
		}
		p.advance()
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := start.Cover(p.lastSpan)
		return p.arenas.Exprs.NewAssign(sp, op, left, value), true
	}
	return left, true
}

func (p *Parser) parseYield() (ast.ExprID, bool) {
	kw := p.advance()
	delegate := false
	if p.at(token.Star) && !p.newlineBefore() {
		p.advance()
		delegate = true
	}
	arg := ast.NoExprID
	if !p.newlineBefore() && !p.atOr(token.Semicolon, token.RBrace, token.RParen,
		token.RBracket, token.Comma, token.Colon, token.EOF) {
		var ok bool
		arg, ok = p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	sp := kw.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewYield(sp, arg, delegate), true
}

// tryParseArrow recognizes arrow function heads. It returns matched=false
// when the tokens are not an arrow head, in which case nothing was consumed.
func (p *Parser) tryParseArrow() (ast.ExprID, bool, bool) {
	start := p.peek().Span

	// ident =>, async ident =>
	async := false
	identIdx := 0
	if p.atIdent("async") && p.peekN(1).Kind == token.Ident &&
		!token.HasNewline(p.peekN(1).Leading) && p.peekN(2).Kind == token.Arrow {
		async = true
		identIdx = 1
	}
	if t := p.peekN(identIdx); t.Kind == token.Ident && p.peekN(identIdx+1).Kind == token.Arrow &&
		!token.HasNewline(p.peekN(identIdx+1).Leading) {
		if async {
			p.advance() // async
		}
		nameTok := p.advance()
		param := p.arenas.Pats.NewIdent(nameTok.Span, p.intern(nameTok.Text))
		expr, ok := p.parseArrowTail(start, []ast.PatID{param}, async)
		return expr, true, ok
	}

	// (params) =>, async (params) =>
	parenIdx := 0
	async = false
	if p.atIdent("async") && p.peekN(1).Kind == token.LParen && !token.HasNewline(p.peekN(1).Leading) {
		async = true
		parenIdx = 1
	}
	if p.peekN(parenIdx).Kind != token.LParen {
		return ast.NoExprID, false, false
	}
	if !p.parenClosesIntoArrow(p.pos + parenIdx) {
		return ast.NoExprID, false, false
	}
	if async {
		p.advance()
	}
	params, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, true, false
	}
	expr, ok := p.parseArrowTail(start, params, async)
	return expr, true, ok
}

// parenClosesIntoArrow scans from an LParen position to its matching close
// paren and reports whether the next token is `=>` on the same line.
func (p *Parser) parenClosesIntoArrow(openPos int) bool {
	depth := 0
	i := openPos
	for i < len(p.toks) {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if i+1 < len(p.toks) {
					after := p.toks[i+1]
					return after.Kind == token.Arrow && !token.HasNewline(after.Leading)
				}
				return false
			}
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) parseArrowTail(start source.Span, params []ast.PatID, async bool) (ast.ExprID, bool) {
	if _, ok := p.expect(token.Arrow, diag.SynExpectArrowBody, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		sp := start.Cover(p.lastSpan)
		return p.arenas.Exprs.NewArrow(sp, params, body, async), true
	}
	body, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Exprs.NewArrowExpr(sp, params, body, async), true
}

func (p *Parser) parseCondExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	cond, ok := p.parseBinaryExpr(0)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Exprs.NewCond(sp, cond, then, els), true
}

// parseBinaryExpr is a precedence climber over binPrec.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	start := p.peek().Span
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op := p.peek().Kind
		prec, isBinOp := binPrec[op]
		if !isBinOp || prec < minPrec {
			return left, true
		}
		p.advance()
		nextMin := prec + 1
		if isRightAssoc(op) {
			nextMin = prec
		}
		right, ok := p.parseBinaryExpr(nextMin)
		if !ok {
			return ast.NoExprID, false
		}
		sp := start.Cover(p.lastSpan)
		left = p.arenas.Exprs.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus,
		token.KwTypeof, token.KwVoid, token.KwDelete:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := tok.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewUnary(sp, tok.Kind, operand), true
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := tok.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewUpdate(sp, tok.Kind, operand, true), true
	case token.KwAwait:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := tok.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewAwait(sp, operand), true
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	expr, ok := p.parseCallChain(start)
	if !ok {
		return ast.NoExprID, false
	}
	// restricted production: postfix ++/-- must be on the same line
	if p.atOr(token.PlusPlus, token.MinusMinus) && !p.newlineBefore() {
		op := p.advance()
		sp := start.Cover(op.Span)
		return p.arenas.Exprs.NewUpdate(sp, op.Kind, expr, false), true
	}
	return expr, true
}

// parseCallChain parses a primary expression followed by any mix of member
// accesses, calls, optional chaining, and tagged templates.
func (p *Parser) parseCallChain(start source.Span) (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseChainOn(start, expr, true)
}

func (p *Parser) parseChainOn(start source.Span, expr ast.ExprID, allowCall bool) (ast.ExprID, bool) {
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			prop, ok := p.parseMemberName()
			if !ok {
				return ast.NoExprID, false
			}
			sp := start.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewMember(sp, expr, prop, false)

		case token.QuestionDot:
			p.advance()
			switch p.peek().Kind {
			case token.LParen:
				if !allowCall {
					return expr, true
				}
				args, ok := p.parseArgs()
				if !ok {
					return ast.NoExprID, false
				}
				sp := start.Cover(p.lastSpan)
				expr = p.arenas.Exprs.NewCall(sp, expr, args, true)
			case token.LBracket:
				p.advance()
				index, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
					return ast.NoExprID, false
				}
				sp := start.Cover(p.lastSpan)
				expr = p.arenas.Exprs.NewComputedMember(sp, expr, index, true)
			default:
				prop, ok := p.parseMemberName()
				if !ok {
					return ast.NoExprID, false
				}
				sp := start.Cover(p.lastSpan)
				expr = p.arenas.Exprs.NewMember(sp, expr, prop, true)
			}

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return ast.NoExprID, false
			}
			sp := start.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewComputedMember(sp, expr, index, false)

		case token.LParen:
			if !allowCall {
				return expr, true
			}
			args, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID, false
			}
			sp := start.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewCall(sp, expr, args, false)

		case token.TemplateLit:
			quasi := p.advance()
			tmpl := p.arenas.Exprs.NewTemplate(quasi.Span, p.intern(quasi.Text))
			sp := start.Cover(quasi.Span)
			expr = p.arenas.Exprs.NewTaggedTemplate(sp, expr, tmpl)

		default:
			return expr, true
		}
	}
}

// parseMemberName accepts identifiers, keywords used as property names, and
// private names.
func (p *Parser) parseMemberName() (source.StringID, bool) {
	t := p.peek()
	if t.Kind == token.Ident || t.Kind == token.PrivateName || t.IsKeyword() {
		p.advance()
		return p.intern(t.Text), true
	}
	p.err(diag.SynExpectIdentifier, "expected property name")
	return source.NoStringID, false
}

func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen, "expected '('"); !ok {
		return nil, false
	}
	args := make([]ast.ExprID, 0, 4)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			spreadStart := p.advance().Span
			arg, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			sp := spreadStart.Cover(p.lastSpan)
			args = append(args, p.arenas.Exprs.NewSpread(sp, arg))
		} else {
			arg, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "async" && p.peekN(1).Kind == token.KwFunction && !token.HasNewline(p.peekN(1).Leading) {
			return p.parseFunctionExpr()
		}
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true

	case token.KwThis, token.KwSuper:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true

	case token.KwImport:
		// dynamic import() or import.meta in expression position
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true

	case token.NumberLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitNumber, p.intern(tok.Text), source.NoStringID), true

	case token.StringLit:
		p.advance()
		raw := p.intern(tok.Text)
		value := p.intern(decodeStringLit(tok.Text))
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, raw, value), true

	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitTrue, p.intern(tok.Text), source.NoStringID), true

	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFalse, p.intern(tok.Text), source.NoStringID), true

	case token.KwNull:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitNull, p.intern(tok.Text), source.NoStringID), true

	case token.TemplateLit:
		p.advance()
		return p.arenas.Exprs.NewTemplate(tok.Span, p.intern(tok.Text)), true

	case token.RegexLit:
		p.advance()
		return p.arenas.Exprs.NewRegex(tok.Span, p.intern(tok.Text)), true

	case token.LParen:
		return p.parseParenExpr()

	case token.LBracket:
		return p.parseArrayLit()

	case token.LBrace:
		return p.parseObjectLit()

	case token.KwFunction:
		return p.parseFunctionExpr()

	case token.KwClass:
		return p.parseClassExpr(false)

	case token.KwNew:
		return p.parseNewExpr()

	case token.PrivateName:
		// `#field in obj` brand checks
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true
	}

	p.err(diag.SynExpectExpression, "expected expression")
	return ast.NoExprID, false
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance() // '('
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewParen(sp, inner), true
}

func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	open := p.advance() // '['
	elems := make([]ast.ExprID, 0, 4)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, ast.NoExprID) // hole
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			spreadStart := p.advance().Span
			arg, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elems = append(elems, p.arenas.Exprs.NewSpread(spreadStart.Cover(p.lastSpan), arg))
		} else {
			elem, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elems = append(elems, elem)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
		return ast.NoExprID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewArray(sp, elems), true
}

func (p *Parser) parseFunctionExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	async := false
	if p.atIdent("async") {
		p.advance()
		async = true
	}
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'"); !ok {
		return ast.NoExprID, false
	}
	generator := false
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	name := source.NoStringID
	if p.at(token.Ident) {
		name = p.intern(p.advance().Text)
	}
	return p.parseFunctionRest(start, name, async, generator)
}

func (p *Parser) parseNewExpr() (ast.ExprID, bool) {
	kw := p.advance() // new
	if p.at(token.Dot) {
		// new.target
		p.advance()
		if _, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected 'target' after 'new.'"); !ok {
			return ast.NoExprID, false
		}
		sp := kw.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewIdent(sp, p.intern("new.target")), true
	}
	var callee ast.ExprID
	var ok bool
	if p.at(token.KwNew) {
		callee, ok = p.parseNewExpr()
	} else {
		callee, ok = p.parsePrimary()
		if ok {
			callee, ok = p.parseChainOn(p.arenas.Exprs.Get(callee).Span, callee, false)
		}
	}
	if !ok {
		return ast.NoExprID, false
	}
	var args []ast.ExprID
	hasParens := false
	if p.at(token.LParen) {
		args, ok = p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		hasParens = true
	}
	sp := kw.Span.Cover(p.lastSpan)
	newExpr := p.arenas.Exprs.NewNew(sp, callee, args, hasParens)
	// member/call chains may continue on the construction result
	return p.parseChainOn(sp, newExpr, true)
}

// isAssignTarget accepts identifiers, member accesses, parenthesized
// targets, and destructuring-shaped literals.
func isAssignTarget(b *ast.Builder, id ast.ExprID) bool {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprObject, ast.ExprArray:
		return true
	case ast.ExprParen:
		data, _ := b.Exprs.Paren(id)
		return isAssignTarget(b, data.Inner)
	default:
		return false
	}
}
