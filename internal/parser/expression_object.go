package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// parseObjectLit parses an object literal. Method shorthand, getters and
// setters, computed keys, spreads, and shorthand properties are all legal.
func (p *Parser) parseObjectLit() (ast.ExprID, bool) {
	open := p.advance() // '{'
	props := make([]ast.ObjectProp, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseObjectProp()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		return ast.NoExprID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewObject(sp, props), true
}

func (p *Parser) parseObjectProp() (ast.ObjectProp, bool) {
	start := p.peek().Span

	if p.at(token.DotDotDot) {
		p.advance()
		arg, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		return ast.ObjectProp{
			Kind:  ast.PropSpread,
			Value: arg,
			Span:  start.Cover(p.lastSpan),
		}, true
	}

	kind := ast.PropKeyValue
	async := false
	generator := false

	// get/set when followed by a key rather than a separator
	if (p.atIdent("get") || p.atIdent("set")) && isPropKeyStart(p.peekN(1)) {
		if p.peek().Text == "get" {
			kind = ast.PropGetter
		} else {
			kind = ast.PropSetter
		}
		p.advance()
	} else {
		if p.atIdent("async") && (isPropKeyStart(p.peekN(1)) || p.peekN(1).Kind == token.Star) {
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
		return ast.ObjectProp{}, false
	}
	prop := ast.ObjectProp{
		Kind:     kind,
		Key:      key,
		KeyExpr:  keyExpr,
		Computed: computed,
	}

	switch {
	case p.at(token.LParen) || kind == ast.PropGetter || kind == ast.PropSetter:
		if kind == ast.PropKeyValue {
			prop.Kind = ast.PropMethod
		}
		fn, ok := p.parseFunctionRest(start, source.NoStringID, async, generator)
		if !ok {
			return ast.ObjectProp{}, false
		}
		prop.Value = fn

	case p.at(token.Colon):
		p.advance()
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.ObjectProp{}, false
		}
		prop.Value = value

	default:
		if computed || async || generator {
			p.err(diag.SynUnexpectedToken, "expected ':' or '(' after property name")
			return ast.ObjectProp{}, false
		}
		// shorthand { name }
		prop.Kind = ast.PropShorthand
		prop.Value = p.arenas.Exprs.NewIdent(start, key)
	}

	prop.Span = start.Cover(p.lastSpan)
	return prop, true
}

// parsePropKey parses an object or class member key.
func (p *Parser) parsePropKey() (source.StringID, ast.ExprID, bool, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBracket:
		p.advance()
		keyExpr, ok := p.parseAssignExpr()
		if !ok {
			return source.NoStringID, ast.NoExprID, false, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
			return source.NoStringID, ast.NoExprID, false, false
		}
		return source.NoStringID, keyExpr, true, true
	case tok.Kind == token.Ident || tok.Kind == token.PrivateName ||
		tok.Kind == token.StringLit || tok.Kind == token.NumberLit || tok.IsKeyword():
		p.advance()
		return p.intern(tok.Text), ast.NoExprID, false, true
	default:
		p.err(diag.SynExpectPropertyName, "expected property name")
		return source.NoStringID, ast.NoExprID, false, false
	}
}

func isPropKeyStart(t token.Token) bool {
	return t.Kind == token.Ident || t.Kind == token.PrivateName ||
		t.Kind == token.StringLit || t.Kind == token.NumberLit ||
		t.Kind == token.LBracket || t.IsKeyword()
}
