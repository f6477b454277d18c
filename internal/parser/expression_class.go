package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// parseClassExpr parses `class Name? extends? { members }`. Declarations
// require the name, expressions do not.
func (p *Parser) parseClassExpr(requireName bool) (ast.ExprID, bool) {
	start := p.peek().Span
	if _, ok := p.expect(token.KwClass, diag.SynUnexpectedToken, "expected 'class'"); !ok {
		return ast.NoExprID, false
	}
	name := source.NoStringID
	if p.at(token.Ident) {
		name = p.intern(p.advance().Text)
	} else if requireName {
		p.err(diag.SynExpectIdentifier, "expected class name")
		return ast.NoExprID, false
	}
	heritage := ast.NoExprID
	if p.at(token.KwExtends) {
		p.advance()
		h, ok := p.parseCallChain(p.peek().Span)
		if !ok {
			return ast.NoExprID, false
		}
		heritage = h
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' in class body"); !ok {
		return ast.NoExprID, false
	}

	members := make([]ast.ClassMember, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			return ast.NoExprID, false
		}
		members = append(members, member)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after class body"); !ok {
		return ast.NoExprID, false
	}
	sp := start.Cover(p.lastSpan)
	return p.arenas.Exprs.NewClass(sp, name, heritage, members), true
}

func (p *Parser) parseClassMember() (ast.ClassMember, bool) {
	start := p.peek().Span
	member := ast.ClassMember{Span: start}

	// `static` is a modifier unless it is itself the member name
	if p.atIdent("static") {
		next := p.peekN(1)
		switch {
		case next.Kind == token.LBrace:
			p.advance()
			body, ok := p.parseBlock()
			if !ok {
				return ast.ClassMember{}, false
			}
			member.Kind = ast.ClassStaticBlock
			member.Body = body
			member.Static = true
			member.Span = start.Cover(p.lastSpan)
			return member, true
		case isPropKeyStart(next) || next.Kind == token.Star:
			member.Static = true
			p.advance()
		}
	}

	async := false
	generator := false
	kind := ast.ClassMethod

	if (p.atIdent("get") || p.atIdent("set")) && isPropKeyStart(p.peekN(1)) {
		if p.peek().Text == "get" {
			kind = ast.ClassGetter
		} else {
			kind = ast.ClassSetter
		}
		p.advance()
	} else {
		if p.atIdent("async") && !token.HasNewline(p.peekN(1).Leading) &&
			(isPropKeyStart(p.peekN(1)) || p.peekN(1).Kind == token.Star) {
			async = true
			p.advance()
		}
		if p.at(token.Star) {
			generator = true
			p.advance()
		}
	}

	key, keyExpr, computed, ok := p.parsePropKey()
	if !ok {
		return ast.ClassMember{}, false
	}
	member.Key = key
	member.KeyExpr = keyExpr
	member.Computed = computed

	switch {
	case p.at(token.LParen):
		member.Kind = kind
		fn, ok := p.parseFunctionRest(start, source.NoStringID, async, generator)
		if !ok {
			return ast.ClassMember{}, false
		}
		member.Value = fn

	case kind == ast.ClassGetter || kind == ast.ClassSetter:
		p.err(diag.SynUnexpectedToken, "expected '(' after accessor name")
		return ast.ClassMember{}, false

	default:
		member.Kind = ast.ClassField
		if p.at(token.Assign) {
			p.advance()
			init, ok := p.parseAssignExpr()
			if !ok {
				return ast.ClassMember{}, false
			}
			member.Value = init
		}
		p.semi()
	}

	member.Span = start.Cover(p.lastSpan)
	return member, true
}
