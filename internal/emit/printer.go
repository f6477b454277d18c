package emit

import (
	"sort"

	"sodagql/internal/ast"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

type printer struct {
	b  *ast.Builder
	sf *source.File
	w  *Writer
}

// printFile splices the module back together: untouched items are copied
// byte-for-byte, removed items are skipped, synthesized items are rendered,
// and items containing rewritten expressions are copy-spliced around them.
func (p *printer) printFile(fid ast.FileID) {
	file := p.b.Files.Get(fid)
	if file == nil {
		return
	}
	content := len(p.sf.Content)
	prev := 0

	for _, itemID := range file.Items {
		item := p.b.Items.Get(itemID)
		if item == nil {
			continue
		}

		if item.Synth && !item.Span.Valid() {
			// inserted item: terminate the preceding line, render, and let
			// the following gap start fresh
			if prev < content && p.sf.Content[prev] == '\n' {
				p.w.CopyRange(prev, prev+1)
				prev++
			}
			p.w.Newline()
			p.renderItem(itemID, item)
			p.w.Newline()
			continue
		}

		start := clamp(int(item.Span.Start), content)
		end := clamp(int(item.Span.End), content)
		if prev < start {
			p.w.CopyRange(prev, start)
		}

		switch {
		case item.Removed:
			// skip the item and at most one trailing newline
			if end < content && p.sf.Content[end] == '\n' {
				end++
			}
		case item.Synth:
			p.renderItem(itemID, item)
		default:
			p.printSpliced(item.Span, p.collectPatches(itemID))
		}
		prev = max(end, start)
	}

	if prev < content {
		p.w.CopyRange(prev, content)
	}
}

// patch is a synthesized node sitting inside otherwise untouched source.
type patch struct {
	span source.Span
	expr ast.ExprID
}

// collectPatches finds the maximal synthesized expressions under an item.
// Rewritten nodes keep their original span, so the surrounding source can be
// copied verbatim around them.
func (p *printer) collectPatches(itemID ast.ItemID) []patch {
	var patches []patch
	w := ast.Walker{B: p.b}
	w.EnterExpr = func(id ast.ExprID) bool {
		e := p.b.Exprs.Get(id)
		if e.Synth && e.Span.Valid() {
			patches = append(patches, patch{span: e.Span, expr: id})
			return false
		}
		return true
	}
	w.Item(itemID)
	sort.Slice(patches, func(i, j int) bool {
		return patches[i].span.Start < patches[j].span.Start
	})
	return patches
}

// printSpliced copies sp from the source, replacing each patched range with
// its structural rendering.
func (p *printer) printSpliced(sp source.Span, patches []patch) {
	if len(patches) == 0 {
		p.w.CopySpan(sp)
		return
	}
	cur := int(sp.Start)
	for _, pt := range patches {
		if int(pt.span.Start) > cur {
			p.w.CopyRange(cur, int(pt.span.Start))
		}
		p.renderExpr(pt.expr)
		cur = int(pt.span.End)
	}
	if cur < int(sp.End) {
		p.w.CopyRange(cur, int(sp.End))
	}
}

func (p *printer) renderItem(id ast.ItemID, item *ast.Item) {
	switch item.Kind {
	case ast.ItemImport:
		if data, ok := p.b.Items.Import(id); ok {
			p.renderImport(item, data)
		}
	case ast.ItemStmt:
		if data, ok := p.b.Items.StmtItem(id); ok {
			p.renderStmt(data.Stmt)
		}
	default:
		p.w.CopySpan(item.Span)
	}
}

func (p *printer) renderImport(item *ast.Item, data *ast.ImportItemData) {
	origin := item.Span
	p.w.WriteString("import ", origin)
	wrote := false
	if data.Default != source.NoStringID {
		p.w.WriteString(p.b.Lookup(data.Default), origin)
		wrote = true
	}
	if data.Namespace != source.NoStringID {
		if wrote {
			p.w.WriteString(", ", origin)
		}
		p.w.WriteString("* as "+p.b.Lookup(data.Namespace), origin)
		wrote = true
	}
	if len(data.Named) > 0 {
		if wrote {
			p.w.WriteString(", ", origin)
		}
		p.w.WriteString("{ ", origin)
		for i, spec := range data.Named {
			if i > 0 {
				p.w.WriteString(", ", origin)
			}
			p.w.WriteString(p.b.Lookup(spec.Name), origin)
			if spec.Alias != source.NoStringID {
				p.w.WriteString(" as "+p.b.Lookup(spec.Alias), origin)
			}
		}
		p.w.WriteString(" }", origin)
		wrote = true
	}
	if wrote {
		p.w.WriteString(" from ", origin)
	}
	p.w.WriteString(quoteString(p.b.Lookup(data.Module))+";", origin)
}

func (p *printer) renderStmt(id ast.StmtID) {
	stmt := p.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	if !stmt.Synth && stmt.Span.Valid() {
		p.w.CopySpan(stmt.Span)
		return
	}

	switch stmt.Kind {
	case ast.StmtExpr:
		if data, ok := p.b.Stmts.ExprStmt(id); ok {
			p.renderExpr(data.Expr)
			p.w.WriteString(";", stmt.Span)
		}
	case ast.StmtVarDecl:
		if data, ok := p.b.Stmts.VarDecl(id); ok {
			p.w.WriteString(kwText(data.Kw)+" ", stmt.Span)
			for i, d := range data.Decls {
				if i > 0 {
					p.w.WriteString(", ", stmt.Span)
				}
				p.renderPat(d.Pat)
				if d.Init != ast.NoExprID {
					p.w.WriteString(" = ", stmt.Span)
					p.renderExpr(d.Init)
				}
			}
			p.w.WriteString(";", stmt.Span)
		}
	default:
		p.w.CopySpan(stmt.Span)
	}
}

// renderExpr prints one expression. Original nodes are copied from the
// source; synthesized nodes are printed structurally from the AST.
func (p *printer) renderExpr(id ast.ExprID) {
	if id == ast.NoExprID {
		return
	}
	e := p.b.Exprs.Get(id)
	if e == nil {
		return
	}
	if !e.Synth && e.Span.Valid() {
		p.w.CopySpan(e.Span)
		return
	}
	origin := e.Span

	switch e.Kind {
	case ast.ExprIdent:
		if data, ok := p.b.Exprs.Ident(id); ok {
			p.w.WriteString(p.b.Lookup(data.Name), origin)
		}
	case ast.ExprLit:
		if data, ok := p.b.Exprs.Literal(id); ok {
			p.w.WriteString(p.b.Lookup(data.Raw), origin)
		}
	case ast.ExprTemplate:
		if data, ok := p.b.Exprs.Template(id); ok {
			p.w.WriteString(p.b.Lookup(data.Raw), origin)
		}
	case ast.ExprRegex:
		if data, ok := p.b.Exprs.Regex(id); ok {
			p.w.WriteString(p.b.Lookup(data.Raw), origin)
		}
	case ast.ExprMember:
		if data, ok := p.b.Exprs.Member(id); ok {
			p.renderExpr(data.Obj)
			switch {
			case data.Computed:
				p.w.WriteString("[", origin)
				p.renderExpr(data.Index)
				p.w.WriteString("]", origin)
			case data.Optional:
				p.w.WriteString("?."+p.b.Lookup(data.Prop), origin)
			default:
				p.w.WriteString("."+p.b.Lookup(data.Prop), origin)
			}
		}
	case ast.ExprCall:
		if data, ok := p.b.Exprs.Call(id); ok {
			p.renderExpr(data.Callee)
			if data.Optional {
				p.w.WriteString("?.", origin)
			}
			p.w.WriteString("(", origin)
			for i, a := range data.Args {
				if i > 0 {
					p.w.WriteString(", ", origin)
				}
				p.renderExpr(a)
			}
			p.w.WriteString(")", origin)
		}
	case ast.ExprObject:
		if data, ok := p.b.Exprs.Object(id); ok {
			p.renderObject(data, origin)
		}
	case ast.ExprArray:
		if data, ok := p.b.Exprs.Array(id); ok {
			p.w.WriteString("[", origin)
			for i, el := range data.Elems {
				if i > 0 {
					p.w.WriteString(", ", origin)
				}
				p.renderExpr(el)
			}
			p.w.WriteString("]", origin)
		}
	case ast.ExprSpread:
		if data, ok := p.b.Exprs.Spread(id); ok {
			p.w.WriteString("...", origin)
			p.renderExpr(data.Arg)
		}
	case ast.ExprParen:
		if data, ok := p.b.Exprs.Paren(id); ok {
			p.w.WriteString("(", origin)
			p.renderExpr(data.Inner)
			p.w.WriteString(")", origin)
		}
	default:
		// synthesized nodes outside the synthesizer's vocabulary keep
		// their original text when they have one
		p.w.CopySpan(origin)
	}
}

func (p *printer) renderObject(data *ast.ExprObjectData, origin source.Span) {
	if len(data.Props) == 0 {
		p.w.WriteString("{}", origin)
		return
	}
	p.w.WriteString("{ ", origin)
	for i, prop := range data.Props {
		if i > 0 {
			p.w.WriteString(", ", origin)
		}
		switch prop.Kind {
		case ast.PropShorthand:
			p.w.WriteString(p.b.Lookup(prop.Key), origin)
		case ast.PropSpread:
			p.w.WriteString("...", origin)
			p.renderExpr(prop.Value)
		default:
			p.w.WriteString(p.b.Lookup(prop.Key)+": ", origin)
			p.renderExpr(prop.Value)
		}
	}
	p.w.WriteString(" }", origin)
}

func (p *printer) renderPat(id ast.PatID) {
	pat := p.b.Pats.Get(id)
	if pat == nil {
		return
	}
	if pat.Span.Valid() {
		p.w.CopySpan(pat.Span)
		return
	}
	if data, ok := p.b.Pats.Ident(id); ok {
		p.w.WriteString(p.b.Lookup(data.Name), source.Span{})
	}
}

func kwText(k token.Kind) string {
	switch k {
	case token.KwVar:
		return "var"
	case token.KwLet:
		return "let"
	default:
		return "const"
	}
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
