package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// parseBindingElement parses a binding pattern with an optional default,
// the form parameter lists and destructuring positions use.
func (p *Parser) parseBindingElement() (ast.PatID, bool) {
	if p.at(token.DotDotDot) {
		start := p.advance().Span
		inner, ok := p.parseBindingPat()
		if !ok {
			return ast.NoPatID, false
		}
		sp := start.Cover(p.lastSpan)
		return p.arenas.Pats.NewRest(sp, inner), true
	}
	pat, ok := p.parseBindingPat()
	if !ok {
		return ast.NoPatID, false
	}
	if p.at(token.Assign) {
		p.advance()
		def, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoPatID, false
		}
		sp := p.arenas.Pats.Get(pat).Span.Cover(p.lastSpan)
		return p.arenas.Pats.NewAssign(sp, pat, def), true
	}
	return pat, true
}

// parseBindingPat parses an identifier, object, or array pattern.
func (p *Parser) parseBindingPat() (ast.PatID, bool) {
	switch p.peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Pats.NewIdent(tok.Span, p.intern(tok.Text)), true
	case token.KwYield, token.KwAwait:
		// legal binding names outside generators/async; transpiler output
		// occasionally uses them
		tok := p.advance()
		return p.arenas.Pats.NewIdent(tok.Span, p.intern(tok.Text)), true
	case token.LBrace:
		return p.parseObjectPat()
	case token.LBracket:
		return p.parseArrayPat()
	default:
		p.err(diag.SynExpectBindingName, "expected binding pattern")
		return ast.NoPatID, false
	}
}

func (p *Parser) parseObjectPat() (ast.PatID, bool) {
	open := p.advance() // '{'
	props := make([]ast.ObjectPatProp, 0, 4)
	rest := ast.NoPatID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
			inner, ok := p.parseBindingPat()
			if !ok {
				return ast.NoPatID, false
			}
			rest = inner
			break
		}
		propStart := p.peek().Span
		prop := ast.ObjectPatProp{Span: propStart}

		switch {
		case p.at(token.LBracket):
			p.advance()
			keyExpr, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoPatID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
				return ast.NoPatID, false
			}
			prop.KeyExpr = keyExpr
			prop.Computed = true
		case p.at(token.StringLit) || p.at(token.NumberLit):
			prop.Key = p.intern(p.advance().Text)
		case p.at(token.Ident) || p.peek().IsKeyword():
			prop.Key = p.intern(p.advance().Text)
		default:
			p.err(diag.SynExpectPropertyName, "expected property name in pattern")
			return ast.NoPatID, false
		}

		if p.at(token.Colon) {
			p.advance()
			value, ok := p.parseBindingElement()
			if !ok {
				return ast.NoPatID, false
			}
			prop.Value = value
		} else {
			// shorthand: the key is the binding
			prop.Shorthand = true
			binding := p.arenas.Pats.NewIdent(propStart, prop.Key)
			if p.at(token.Assign) {
				p.advance()
				def, ok := p.parseAssignExpr()
				if !ok {
					return ast.NoPatID, false
				}
				binding = p.arenas.Pats.NewAssign(propStart.Cover(p.lastSpan), binding, def)
			}
			prop.Value = binding
		}
		prop.Span = propStart.Cover(p.lastSpan)
		props = append(props, prop)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		return ast.NoPatID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Pats.NewObject(sp, props, rest), true
}

func (p *Parser) parseArrayPat() (ast.PatID, bool) {
	open := p.advance() // '['
	elems := make([]ast.PatID, 0, 4)
	rest := ast.NoPatID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			// hole
			elems = append(elems, ast.NoPatID)
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			p.advance()
			inner, ok := p.parseBindingPat()
			if !ok {
				return ast.NoPatID, false
			}
			rest = inner
			break
		}
		elem, ok := p.parseBindingElement()
		if !ok {
			return ast.NoPatID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
		return ast.NoPatID, false
	}
	sp := open.Span.Cover(p.lastSpan)
	return p.arenas.Pats.NewArray(sp, elems, rest), true
}

// PatBoundNames appends every identifier bound by the pattern to dst; the
// export metadata collector uses it for destructured declarations.
func PatBoundNames(b *ast.Builder, pat ast.PatID, dst []source.StringID) []source.StringID {
	if pat == ast.NoPatID {
		return dst
	}
	node := b.Pats.Get(pat)
	switch node.Kind {
	case ast.PatIdent:
		data, _ := b.Pats.Ident(pat)
		dst = append(dst, data.Name)
	case ast.PatObject:
		data, _ := b.Pats.Object(pat)
		for _, prop := range data.Props {
			dst = PatBoundNames(b, prop.Value, dst)
		}
		dst = PatBoundNames(b, data.Rest, dst)
	case ast.PatArray:
		data, _ := b.Pats.Array(pat)
		for _, elem := range data.Elems {
			dst = PatBoundNames(b, elem, dst)
		}
		dst = PatBoundNames(b, data.Rest, dst)
	case ast.PatAssign:
		data, _ := b.Pats.Assign(pat)
		dst = PatBoundNames(b, data.Pat, dst)
	case ast.PatRest:
		data, _ := b.Pats.Rest(pat)
		dst = PatBoundNames(b, data.Arg, dst)
	}
	return dst
}
