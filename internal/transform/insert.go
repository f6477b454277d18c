package transform

import (
	"sodagql/internal/ast"
	"sodagql/internal/source"
)

// insertRegistrations splices the registration statements at the end of
// the leading import/require prologue, preserving their order. They must
// land before the first executable item: anything past the prologue can
// invoke a lookup for an operation registered here.
func insertRegistrations(b *ast.Builder, fid ast.FileID, stmts []ast.StmtID) {
	if len(stmts) == 0 {
		return
	}
	file := b.Files.Get(fid)
	if file == nil {
		return
	}

	pos := 0
	for i, itemID := range file.Items {
		item := b.Items.Get(itemID)
		if item.Removed {
			continue
		}
		if item.Kind == ast.ItemImport || isRequireItem(b, itemID, item) {
			pos = i + 1
			continue
		}
		break
	}

	inserted := make([]ast.ItemID, 0, len(stmts))
	for _, s := range stmts {
		id := b.Items.NewStmtItem(source.Span{}, s)
		b.Items.Get(id).Synth = true
		inserted = append(inserted, id)
	}

	items := make([]ast.ItemID, 0, len(file.Items)+len(inserted))
	items = append(items, file.Items[:pos]...)
	items = append(items, inserted...)
	items = append(items, file.Items[pos:]...)
	file.Items = items
}

// isRequireItem reports whether an item is a top-level declaration whose
// declarators are all require calls. These count as part of the import
// region so registrations land after the CJS runtime require.
func isRequireItem(b *ast.Builder, itemID ast.ItemID, item *ast.Item) bool {
	if item.Kind != ast.ItemStmt {
		return false
	}
	data, _ := b.Items.StmtItem(itemID)
	stmt := b.Stmts.Get(data.Stmt)
	if stmt.Kind != ast.StmtVarDecl {
		return false
	}
	decl, _ := b.Stmts.VarDecl(data.Stmt)
	if len(decl.Decls) == 0 {
		return false
	}
	for _, d := range decl.Decls {
		if _, ok := requireSpecifier(b, d.Init); !ok {
			return false
		}
	}
	return true
}
