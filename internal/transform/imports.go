package transform

import (
	"sodagql/internal/ast"
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// importManager strips declarative-system imports and wires the runtime
// module in. ESM imports matching an alias are removed outright; CJS
// require declarators are filtered out of their declarations, dropping the
// whole statement when nothing is left.
type importManager struct {
	b            *ast.Builder
	cfg          *Config
	needsRuntime bool
}

func (m *importManager) run(fid ast.FileID) {
	file := m.b.Files.Get(fid)
	if file == nil {
		return
	}

	// insertPos is the index (into the surviving item list) where a fresh
	// runtime import belongs: after the last ESM import, or before the
	// first non-import item
	insertPos := 0
	surviving := 0
	foundNonImport := false
	runtimeImport := ast.NoItemID

	for _, itemID := range file.Items {
		item := m.b.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemImport:
			data, _ := m.b.Items.Import(itemID)
			specifier := m.b.Lookup(data.Module)
			if m.cfg.isSystemAlias(specifier) {
				item.Removed = true
				continue
			}
			if specifier == runtimeModule {
				runtimeImport = itemID
			}
			surviving++
			insertPos = surviving
		case ast.ItemStmt:
			if m.isVarDeclItem(itemID) {
				if m.filterRequires(itemID, item) {
					continue
				}
				// only require declarations count as part of the import
				// region; any other declaration is executable code and may
				// already reference a registered operation
				if !foundNonImport && isRequireItem(m.b, itemID, item) {
					surviving++
					insertPos = surviving
					continue
				}
				if !foundNonImport {
					insertPos = surviving
				}
				surviving++
				foundNonImport = true
				continue
			}
			if !foundNonImport {
				insertPos = surviving
			}
			surviving++
			foundNonImport = true
		default:
			if !foundNonImport {
				insertPos = surviving
			}
			surviving++
			foundNonImport = true
		}
	}

	if !m.needsRuntime {
		return
	}
	if runtimeImport != ast.NoItemID {
		m.mergeRuntimeSpecifier(runtimeImport)
		return
	}
	m.insertRuntimeImport(file, insertPos)
}

func (m *importManager) isVarDeclItem(itemID ast.ItemID) bool {
	data, ok := m.b.Items.StmtItem(itemID)
	if !ok {
		return false
	}
	return m.b.Stmts.Get(data.Stmt).Kind == ast.StmtVarDecl
}

// filterRequires drops require declarators bound to system aliases.
// Returns true when the whole statement was removed.
func (m *importManager) filterRequires(itemID ast.ItemID, item *ast.Item) bool {
	data, _ := m.b.Items.StmtItem(itemID)
	stmt := m.b.Stmts.Get(data.Stmt)
	decl, _ := m.b.Stmts.VarDecl(data.Stmt)

	kept := decl.Decls[:0:0]
	for _, d := range decl.Decls {
		if spec, ok := requireSpecifier(m.b, d.Init); ok && m.cfg.isSystemAlias(spec) {
			continue
		}
		kept = append(kept, d)
	}
	switch {
	case len(kept) == 0:
		item.Removed = true
		return true
	case len(kept) < len(decl.Decls):
		decl.Decls = kept
		stmt.Synth = true
		item.Synth = true
	}
	return false
}

// requireSpecifier extracts the module string from `require("mod")`,
// unwrapping one __importDefault/__importStar interop layer.
func requireSpecifier(b *ast.Builder, init ast.ExprID) (string, bool) {
	if init == ast.NoExprID {
		return "", false
	}
	e := b.Exprs.Get(init)
	if e == nil || e.Kind != ast.ExprCall {
		return "", false
	}
	call, _ := b.Exprs.Call(init)
	callee := b.Exprs.Get(call.Callee)
	if callee == nil || callee.Kind != ast.ExprIdent {
		return "", false
	}
	ident, _ := b.Exprs.Ident(call.Callee)
	if len(call.Args) == 0 {
		return "", false
	}

	switch b.Lookup(ident.Name) {
	case "require":
		arg := b.Exprs.Get(call.Args[0])
		if arg == nil || arg.Kind != ast.ExprLit {
			return "", false
		}
		lit, _ := b.Exprs.Literal(call.Args[0])
		if lit.Kind != ast.ExprLitString {
			return "", false
		}
		return b.Lookup(lit.Value), true
	case "__importDefault", "__importStar":
		return requireSpecifier(b, call.Args[0])
	}
	return "", false
}

// mergeRuntimeSpecifier adds the named gqlRuntime binding to an existing
// runtime import, unless one is already present.
func (m *importManager) mergeRuntimeSpecifier(itemID ast.ItemID) {
	data, _ := m.b.Items.Import(itemID)
	for _, spec := range data.Named {
		local := spec.Name
		if spec.Alias != source.NoStringID {
			local = spec.Alias
		}
		if m.b.Lookup(local) == runtimeImportName {
			return
		}
	}
	data.Named = append(data.Named, ast.ImportSpec{Name: m.b.Intern(runtimeImportName)})
	m.b.Items.Get(itemID).Synth = true
}

// insertRuntimeImport places a fresh runtime import (or require in CJS) at
// pos, counted over surviving items.
func (m *importManager) insertRuntimeImport(file *ast.File, pos int) {
	var item ast.ItemID
	if m.cfg.IsCjs {
		item = m.cjsRequire()
	} else {
		item = m.esmImport()
	}

	// translate the surviving-item position into a raw index
	raw := len(file.Items)
	live := 0
	for i, id := range file.Items {
		if live == pos {
			raw = i
			break
		}
		if !m.b.Items.Get(id).Removed {
			live++
		}
	}

	items := make([]ast.ItemID, 0, len(file.Items)+1)
	items = append(items, file.Items[:raw]...)
	items = append(items, item)
	items = append(items, file.Items[raw:]...)
	file.Items = items
}

func (m *importManager) esmImport() ast.ItemID {
	id := m.b.Items.NewImport(source.Span{}, ast.ImportItemData{
		Module: m.b.Intern(runtimeModule),
		Named:  []ast.ImportSpec{{Name: m.b.Intern(runtimeImportName)}},
	})
	m.b.Items.Get(id).Synth = true
	return id
}

func (m *importManager) cjsRequire() ast.ItemID {
	requireCallee := m.b.Exprs.NewIdent(source.Span{}, m.b.Intern("require"))
	moduleArg := m.b.Exprs.NewLiteral(source.Span{}, ast.ExprLitString,
		m.b.Intern(`"`+runtimeModule+`"`), m.b.Intern(runtimeModule))
	call := m.b.Exprs.NewCall(source.Span{}, requireCallee, []ast.ExprID{moduleArg}, false)

	pat := m.b.Pats.NewIdent(source.Span{}, m.b.Intern(cjsRuntimeName))
	stmt := m.b.Stmts.NewVarDecl(source.Span{}, token.KwConst, []ast.VarDeclarator{
		{Pat: pat, Init: call},
	})
	m.b.Stmts.Get(stmt).Synth = true

	id := m.b.Items.NewStmtItem(source.Span{}, stmt)
	m.b.Items.Get(id).Synth = true
	return id
}
