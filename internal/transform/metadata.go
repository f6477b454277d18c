package transform

import (
	"fmt"
	"strings"

	"sodagql/internal/ast"
	"sodagql/internal/source"
)

// Metadata describes one builder definition site.
type Metadata struct {
	// ScopePath is the dot-joined path of enclosing scope segments, made
	// unique with a `$N` suffix when the same base path repeats.
	ScopePath string
	// TopLevel is set for definitions directly under a module-level binding.
	TopLevel bool
	// ExportBinding is the exported name of the enclosing binding, empty
	// when the definition is not exported.
	ExportBinding string
}

// MetadataMap indexes definition metadata by the builder call's span.
type MetadataMap map[source.Span]Metadata

// CollectMetadata walks a module and records the scope path for every
// builder-shaped call. Builder calls are not descended into, so nested
// builder chains inside callbacks stay invisible here.
func CollectMetadata(b *ast.Builder, fid ast.FileID) MetadataMap {
	c := &collector{
		b:        b,
		exports:  collectExportBindings(b, fid),
		metadata: make(MetadataMap),
		anon:     make(map[string]int),
		dups:     make(map[string]int),
	}
	file := b.Files.Get(fid)
	if file == nil {
		return c.metadata
	}
	for _, item := range file.Items {
		c.item(item)
	}
	return c.metadata
}

type collector struct {
	b        *ast.Builder
	exports  map[string]string // local name -> exported name
	scope    []string
	metadata MetadataMap
	anon     map[string]int // per-kind anonymous counters
	dups     map[string]int // per-base-path duplicate counters
}

// collectExportBindings gathers the module's exported bindings: local
// re-exports, exported declarations, and CommonJS exports.x assignments.
func collectExportBindings(b *ast.Builder, fid ast.FileID) map[string]string {
	bindings := make(map[string]string)
	file := b.Files.Get(fid)
	if file == nil {
		return bindings
	}
	for _, itemID := range file.Items {
		item := b.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemExportNamed:
			data, _ := b.Items.ExportNamed(itemID)
			if data.Module != source.NoStringID {
				continue
			}
			for _, spec := range data.Specs {
				local := b.Lookup(spec.Name)
				exported := local
				if spec.Alias != source.NoStringID {
					exported = b.Lookup(spec.Alias)
				}
				bindings[local] = exported
			}
		case ast.ItemExportDecl:
			data, _ := b.Items.ExportDecl(itemID)
			for _, name := range declaredNames(b, data.Decl) {
				bindings[name] = name
			}
		case ast.ItemStmt:
			data, _ := b.Items.StmtItem(itemID)
			stmt := b.Stmts.Get(data.Stmt)
			if stmt.Kind != ast.StmtExpr {
				continue
			}
			exprData, _ := b.Stmts.ExprStmt(data.Stmt)
			expr := b.Exprs.Get(exprData.Expr)
			if expr.Kind != ast.ExprAssign {
				continue
			}
			assign, _ := b.Exprs.Assign(exprData.Expr)
			if name, ok := commonJSExportName(b, assign.Target); ok {
				bindings[name] = name
			}
		}
	}
	return bindings
}

// declaredNames lists the identifier bindings a declaration introduces.
// Destructured patterns are skipped; the canonical id scheme only roots at
// plain identifiers.
func declaredNames(b *ast.Builder, decl ast.StmtID) []string {
	stmt := b.Stmts.Get(decl)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.StmtVarDecl:
		data, _ := b.Stmts.VarDecl(decl)
		var names []string
		for _, d := range data.Decls {
			if ident, ok := b.Pats.Ident(d.Pat); ok {
				names = append(names, b.Lookup(ident.Name))
			}
		}
		return names
	case ast.StmtFnDecl:
		data, _ := b.Stmts.FnDecl(decl)
		fn, _ := b.Exprs.Function(data.Fn)
		if fn.Name != source.NoStringID {
			return []string{b.Lookup(fn.Name)}
		}
	case ast.StmtClassDecl:
		data, _ := b.Stmts.ClassDecl(decl)
		class, _ := b.Exprs.Class(data.Class)
		if class.Name != source.NoStringID {
			return []string{b.Lookup(class.Name)}
		}
	}
	return nil
}

// commonJSExportName extracts foo from `exports.foo = ...` or
// `module.exports.foo = ...`.
func commonJSExportName(b *ast.Builder, target ast.ExprID) (string, bool) {
	e := b.Exprs.Get(target)
	if e == nil || e.Kind != ast.ExprMember {
		return "", false
	}
	member, _ := b.Exprs.Member(target)
	if member.Computed || member.Prop == source.NoStringID {
		return "", false
	}

	obj := b.Exprs.Get(member.Obj)
	switch obj.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(member.Obj)
		if b.Lookup(data.Name) != "exports" {
			return "", false
		}
	case ast.ExprMember:
		inner, _ := b.Exprs.Member(member.Obj)
		if inner.Computed || b.Lookup(inner.Prop) != "exports" {
			return "", false
		}
		base := b.Exprs.Get(inner.Obj)
		if base.Kind != ast.ExprIdent {
			return "", false
		}
		baseData, _ := b.Exprs.Ident(inner.Obj)
		if b.Lookup(baseData.Name) != "module" {
			return "", false
		}
	default:
		return "", false
	}
	return b.Lookup(member.Prop), true
}

func (c *collector) enter(segment string) {
	c.scope = append(c.scope, segment)
}

func (c *collector) exit() {
	c.scope = c.scope[:len(c.scope)-1]
}

func (c *collector) anonName(kind string) string {
	n := c.anon[kind]
	c.anon[kind] = n + 1
	return fmt.Sprintf("%s#%d", kind, n)
}

// register records the definition at the current scope path, suffixing
// `$N` when the base path has been seen before.
func (c *collector) register(span source.Span) {
	base := strings.Join(c.scope, ".")
	n := c.dups[base]
	c.dups[base] = n + 1
	path := base
	if n > 0 {
		path = fmt.Sprintf("%s$%d", base, n)
	}

	meta := Metadata{
		ScopePath: path,
		TopLevel:  len(c.scope) <= 1,
	}
	if len(c.scope) == 1 {
		meta.ExportBinding = c.exports[c.scope[0]]
	}
	c.metadata[span] = meta
}

func (c *collector) item(id ast.ItemID) {
	item := c.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemExportDecl:
		data, _ := c.b.Items.ExportDecl(id)
		c.stmt(data.Decl)
	case ast.ItemExportDefault:
		data, _ := c.b.Items.ExportDefault(id)
		if data.Decl != ast.NoStmtID {
			c.stmt(data.Decl)
		} else {
			c.expr(data.Expr)
		}
	case ast.ItemStmt:
		data, _ := c.b.Items.StmtItem(id)
		c.stmt(data.Stmt)
	}
}

func (c *collector) stmt(id ast.StmtID) {
	if id == ast.NoStmtID {
		return
	}
	stmt := c.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtVarDecl:
		data, _ := c.b.Stmts.VarDecl(id)
		for _, d := range data.Decls {
			if ident, ok := c.b.Pats.Ident(d.Pat); ok {
				c.enter(c.b.Lookup(ident.Name))
				c.expr(d.Init)
				c.exit()
			} else {
				c.pat(d.Pat)
				c.expr(d.Init)
			}
		}
	case ast.StmtExpr:
		data, _ := c.b.Stmts.ExprStmt(id)
		c.expr(data.Expr)
	case ast.StmtReturn:
		data, _ := c.b.Stmts.Return(id)
		c.expr(data.Arg)
	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		c.expr(data.Cond)
		c.stmt(data.Then)
		c.stmt(data.Else)
	case ast.StmtFor:
		data, _ := c.b.Stmts.For(id)
		c.stmt(data.Init)
		c.expr(data.Cond)
		c.expr(data.Post)
		c.stmt(data.Body)
	case ast.StmtForInOf:
		data, _ := c.b.Stmts.ForInOf(id)
		c.stmt(data.Decl)
		c.expr(data.Left)
		c.expr(data.Right)
		c.stmt(data.Body)
	case ast.StmtWhile, ast.StmtDoWhile:
		data, _ := c.b.Stmts.While(id)
		c.expr(data.Cond)
		c.stmt(data.Body)
	case ast.StmtBlock:
		data, _ := c.b.Stmts.Block(id)
		for _, s := range data.Stmts {
			c.stmt(s)
		}
	case ast.StmtSwitch:
		data, _ := c.b.Stmts.Switch(id)
		c.expr(data.Disc)
		for _, cs := range data.Cases {
			c.expr(cs.Test)
			for _, s := range cs.Body {
				c.stmt(s)
			}
		}
	case ast.StmtTry:
		data, _ := c.b.Stmts.Try(id)
		c.stmt(data.Block)
		c.stmt(data.CatchBody)
		c.stmt(data.Finally)
	case ast.StmtThrow:
		data, _ := c.b.Stmts.Throw(id)
		c.expr(data.Arg)
	case ast.StmtLabeled:
		data, _ := c.b.Stmts.Labeled(id)
		c.stmt(data.Body)
	case ast.StmtFnDecl:
		data, _ := c.b.Stmts.FnDecl(id)
		fn, _ := c.b.Exprs.Function(data.Fn)
		name := c.b.Lookup(fn.Name)
		if name == "" {
			name = c.anonName("function")
		}
		c.enter(name)
		c.function(fn)
		c.exit()
	case ast.StmtClassDecl:
		data, _ := c.b.Stmts.ClassDecl(id)
		class, _ := c.b.Exprs.Class(data.Class)
		if class.Name != source.NoStringID {
			c.enter(c.b.Lookup(class.Name))
			c.classBody(class)
			c.exit()
		} else {
			c.classBody(class)
		}
	}
}

func (c *collector) function(fn *ast.ExprFunctionData) {
	for _, p := range fn.Params {
		c.pat(p)
	}
	c.stmt(fn.Body)
}

func (c *collector) classBody(class *ast.ExprClassData) {
	c.expr(class.Heritage)
	for _, m := range class.Members {
		c.expr(m.KeyExpr)
		switch m.Kind {
		case ast.ClassMethod, ast.ClassGetter, ast.ClassSetter:
			fn, ok := c.b.Exprs.Function(m.Value)
			if !ok {
				c.expr(m.Value)
				continue
			}
			if m.Key != source.NoStringID && !m.Computed {
				c.enter(c.b.Lookup(m.Key))
				c.function(fn)
				c.exit()
			} else {
				c.function(fn)
			}
		case ast.ClassField:
			c.expr(m.Value)
		case ast.ClassStaticBlock:
			c.stmt(m.Body)
		}
	}
}

func (c *collector) pat(id ast.PatID) {
	if id == ast.NoPatID {
		return
	}
	p := c.b.Pats.Get(id)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PatObject:
		data, _ := c.b.Pats.Object(id)
		for _, prop := range data.Props {
			c.expr(prop.KeyExpr)
			c.pat(prop.Value)
		}
		c.pat(data.Rest)
	case ast.PatArray:
		data, _ := c.b.Pats.Array(id)
		for _, el := range data.Elems {
			c.pat(el)
		}
		c.pat(data.Rest)
	case ast.PatAssign:
		data, _ := c.b.Pats.Assign(id)
		c.pat(data.Pat)
		c.expr(data.Default)
	case ast.PatRest:
		data, _ := c.b.Pats.Rest(id)
		c.pat(data.Arg)
	}
}

func (c *collector) expr(id ast.ExprID) {
	if id == ast.NoExprID {
		return
	}
	e := c.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprCall:
		data, _ := c.b.Exprs.Call(id)
		if _, ok := builderCallback(c.b, data); ok {
			// definition site; nothing inside the callback is visited
			c.register(e.Span)
			return
		}
		c.expr(data.Callee)
		for _, a := range data.Args {
			c.expr(a)
		}
	case ast.ExprFunction:
		data, _ := c.b.Exprs.Function(id)
		name := c.b.Lookup(data.Name)
		if name == "" {
			name = c.anonName("function")
		}
		c.enter(name)
		c.function(data)
		c.exit()
	case ast.ExprArrow:
		data, _ := c.b.Exprs.Arrow(id)
		c.enter(c.anonName("arrow"))
		for _, p := range data.Params {
			c.pat(p)
		}
		if data.ExprBody {
			c.expr(data.BodyExpr)
		} else {
			c.stmt(data.Body)
		}
		c.exit()
	case ast.ExprAssign:
		data, _ := c.b.Exprs.Assign(id)
		if name, ok := commonJSExportName(c.b, data.Target); ok {
			c.enter(name)
			c.expr(data.Target)
			c.expr(data.Value)
			c.exit()
		} else {
			c.expr(data.Target)
			c.expr(data.Value)
		}
	case ast.ExprObject:
		data, _ := c.b.Exprs.Object(id)
		for _, prop := range data.Props {
			c.objectProp(prop)
		}
	case ast.ExprClass:
		data, _ := c.b.Exprs.Class(id)
		c.classBody(data)
	case ast.ExprMember:
		data, _ := c.b.Exprs.Member(id)
		c.expr(data.Obj)
		c.expr(data.Index)
	case ast.ExprNew:
		data, _ := c.b.Exprs.New(id)
		c.expr(data.Callee)
		for _, a := range data.Args {
			c.expr(a)
		}
	case ast.ExprArray:
		data, _ := c.b.Exprs.Array(id)
		for _, el := range data.Elems {
			c.expr(el)
		}
	case ast.ExprBinary:
		data, _ := c.b.Exprs.Binary(id)
		c.expr(data.Left)
		c.expr(data.Right)
	case ast.ExprUnary:
		data, _ := c.b.Exprs.Unary(id)
		c.expr(data.Operand)
	case ast.ExprUpdate:
		data, _ := c.b.Exprs.Update(id)
		c.expr(data.Operand)
	case ast.ExprCond:
		data, _ := c.b.Exprs.Cond(id)
		c.expr(data.Cond)
		c.expr(data.Then)
		c.expr(data.Else)
	case ast.ExprSeq:
		data, _ := c.b.Exprs.Seq(id)
		for _, x := range data.Exprs {
			c.expr(x)
		}
	case ast.ExprSpread:
		data, _ := c.b.Exprs.Spread(id)
		c.expr(data.Arg)
	case ast.ExprParen:
		data, _ := c.b.Exprs.Paren(id)
		c.expr(data.Inner)
	case ast.ExprAwait:
		data, _ := c.b.Exprs.Await(id)
		c.expr(data.Arg)
	case ast.ExprYield:
		data, _ := c.b.Exprs.Yield(id)
		c.expr(data.Arg)
	case ast.ExprTaggedTemplate:
		data, _ := c.b.Exprs.TaggedTemplate(id)
		c.expr(data.Tag)
		c.expr(data.Quasi)
	}
}

// objectProp visits one object literal entry. Key-value entries with a
// plain or string key contribute a scope segment; methods do not.
func (c *collector) objectProp(prop ast.ObjectProp) {
	c.expr(prop.KeyExpr)
	switch prop.Kind {
	case ast.PropKeyValue:
		if prop.Key != source.NoStringID && !prop.Computed {
			c.enter(propKeyName(c.b, prop.Key))
			c.expr(prop.Value)
			c.exit()
		} else {
			c.expr(prop.Value)
		}
	case ast.PropMethod, ast.PropGetter, ast.PropSetter:
		if fn, ok := c.b.Exprs.Function(prop.Value); ok {
			c.function(fn)
		} else {
			c.expr(prop.Value)
		}
	default:
		c.expr(prop.Value)
	}
}

// propKeyName strips the quotes off string-literal keys; identifier keys
// pass through unchanged.
func propKeyName(b *ast.Builder, key source.StringID) string {
	name := b.Lookup(key)
	if len(name) >= 2 && (name[0] == '"' || name[0] == '\'') {
		return name[1 : len(name)-1]
	}
	return name
}
