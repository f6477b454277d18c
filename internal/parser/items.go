package parser

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// parseImportItem parses every ESM import form:
//
//	import "mod";
//	import def from "mod";
//	import * as ns from "mod";
//	import def, * as ns from "mod";
//	import { a, b as c } from "mod";
//	import def, { a } from "mod";
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	start := p.advance().Span // import

	var data ast.ImportItemData

	// bare side-effect import
	if p.at(token.StringLit) {
		mod := p.advance()
		data.Module = p.intern(decodeStringLit(mod.Text))
		p.semi()
		return p.arenas.Items.NewImport(start.Cover(p.lastSpan), data), true
	}

	consumedBinding := false
	if p.at(token.Ident) {
		def := p.advance()
		data.Default = p.intern(def.Text)
		consumedBinding = true
		if p.at(token.Comma) {
			p.advance()
		} else if !p.atIdent("from") {
			p.err(diag.SynUnexpectedToken, "expected ',' or 'from' in import")
			return ast.NoItemID, false
		}
	}

	switch {
	case p.at(token.Star):
		p.advance()
		if !p.atIdent("as") {
			p.err(diag.SynUnexpectedToken, "expected 'as' after '*' in import")
			return ast.NoItemID, false
		}
		p.advance()
		ns, ok := p.expect(token.Ident, diag.SynExpectBindingName, "expected namespace binding name")
		if !ok {
			return ast.NoItemID, false
		}
		data.Namespace = p.intern(ns.Text)
		consumedBinding = true

	case p.at(token.LBrace):
		specs, ok := p.parseNamedSpecs()
		if !ok {
			return ast.NoItemID, false
		}
		for _, s := range specs {
			data.Named = append(data.Named, ast.ImportSpec{Name: s.Name, Alias: s.Alias, Span: s.Span})
		}
		consumedBinding = true
	}

	if !consumedBinding {
		p.err(diag.SynUnexpectedToken, "expected import bindings or module string")
		return ast.NoItemID, false
	}

	if !p.atIdent("from") {
		p.err(diag.SynExpectModuleSource, "expected 'from' in import")
		return ast.NoItemID, false
	}
	p.advance()
	mod, ok := p.expect(token.StringLit, diag.SynExpectModuleSource, "expected module string")
	if !ok {
		return ast.NoItemID, false
	}
	data.Module = p.intern(decodeStringLit(mod.Text))
	p.semi()
	return p.arenas.Items.NewImport(start.Cover(p.lastSpan), data), true
}

// parseNamedSpecs parses `{ a, b as c }`. Import specs may use string names
// only in exotic cases which transpilers do not emit, so names here are
// identifiers or keywords used as names.
func (p *Parser) parseNamedSpecs() ([]ast.ExportSpec, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, false
	}
	specs := make([]ast.ExportSpec, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok := p.peek()
		if nameTok.Kind != token.Ident && !nameTok.IsKeyword() && nameTok.Kind != token.StringLit {
			p.err(diag.SynExpectBindingName, "expected binding name")
			return nil, false
		}
		p.advance()
		spec := ast.ExportSpec{Span: nameTok.Span}
		if nameTok.Kind == token.StringLit {
			spec.Name = p.intern(decodeStringLit(nameTok.Text))
		} else {
			spec.Name = p.intern(nameTok.Text)
		}
		if p.atIdent("as") {
			p.advance()
			aliasTok := p.peek()
			if aliasTok.Kind != token.Ident && !aliasTok.IsKeyword() {
				p.err(diag.SynExpectBindingName, "expected alias name")
				return nil, false
			}
			p.advance()
			spec.Alias = p.intern(aliasTok.Text)
			spec.Span = nameTok.Span.Cover(aliasTok.Span)
		}
		specs = append(specs, spec)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		return nil, false
	}
	return specs, true
}

// parseExportItem parses every ESM export form.
func (p *Parser) parseExportItem() (ast.ItemID, bool) {
	start := p.advance().Span // export

	switch p.peek().Kind {
	case token.KwDefault:
		p.advance()
		// hoistable declarations keep their binding
		if p.at(token.KwFunction) || (p.atIdent("async") && p.peekN(1).Kind == token.KwFunction) {
			stmt, ok := p.parseFunctionDecl()
			if !ok {
				return ast.NoItemID, false
			}
			return p.arenas.Items.NewExportDefault(start.Cover(p.lastSpan), stmt, ast.NoExprID), true
		}
		if p.at(token.KwClass) {
			stmt, ok := p.parseClassDecl()
			if !ok {
				return ast.NoItemID, false
			}
			return p.arenas.Items.NewExportDefault(start.Cover(p.lastSpan), stmt, ast.NoExprID), true
		}
		expr, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoItemID, false
		}
		p.semi()
		return p.arenas.Items.NewExportDefault(start.Cover(p.lastSpan), ast.NoStmtID, expr), true

	case token.Star:
		p.advance()
		alias := source.NoStringID
		if p.atIdent("as") {
			p.advance()
			aliasTok, ok := p.expect(token.Ident, diag.SynExpectBindingName, "expected namespace export name")
			if !ok {
				return ast.NoItemID, false
			}
			alias = p.intern(aliasTok.Text)
		}
		if !p.atIdent("from") {
			p.err(diag.SynExpectModuleSource, "expected 'from' in export *")
			return ast.NoItemID, false
		}
		p.advance()
		mod, ok := p.expect(token.StringLit, diag.SynExpectModuleSource, "expected module string")
		if !ok {
			return ast.NoItemID, false
		}
		p.semi()
		return p.arenas.Items.NewExportAll(start.Cover(p.lastSpan), p.intern(decodeStringLit(mod.Text)), alias), true

	case token.LBrace:
		specs, ok := p.parseNamedSpecs()
		if !ok {
			return ast.NoItemID, false
		}
		module := source.NoStringID
		if p.atIdent("from") {
			p.advance()
			mod, ok := p.expect(token.StringLit, diag.SynExpectModuleSource, "expected module string")
			if !ok {
				return ast.NoItemID, false
			}
			module = p.intern(decodeStringLit(mod.Text))
		}
		p.semi()
		return p.arenas.Items.NewExportNamed(start.Cover(p.lastSpan), specs, module), true

	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass:
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewExportDecl(start.Cover(p.lastSpan), stmt), true

	default:
		if p.atIdent("async") && p.peekN(1).Kind == token.KwFunction {
			stmt, ok := p.parseStmt()
			if !ok {
				return ast.NoItemID, false
			}
			return p.arenas.Items.NewExportDecl(start.Cover(p.lastSpan), stmt), true
		}
		p.err(diag.SynUnexpectedToken, "unexpected token after 'export'")
		return ast.NoItemID, false
	}
}
