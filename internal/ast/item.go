package ast

import (
	"sodagql/internal/source"
)

type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemExportNamed
	ItemExportDecl
	ItemExportDefault
	ItemExportAll
	ItemStmt
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
	Synth   bool
	// Removed marks items dropped by a rewrite; the emitter skips their
	// spans entirely.
	Removed bool
}

// ImportSpec is one named import `name` or `name as alias`.
type ImportSpec struct {
	Name  source.StringID
	Alias source.StringID // NoStringID when not aliased
	Span  source.Span
}

// ImportItemData holds one import declaration. Module is the decoded module
// specifier. A bare `import "mod"` has no bindings at all.
type ImportItemData struct {
	Module    source.StringID
	Default   source.StringID // NoStringID when absent
	Namespace source.StringID // `* as ns`, NoStringID when absent
	Named     []ImportSpec
}

// HasBindings reports whether the import introduces any binding.
func (d *ImportItemData) HasBindings() bool {
	return d.Default != source.NoStringID || d.Namespace != source.NoStringID || len(d.Named) > 0
}

// ExportSpec is one named export `name` or `name as alias`.
type ExportSpec struct {
	Name  source.StringID
	Alias source.StringID
	Span  source.Span
}

// ExportNamedData holds `export { ... }` with an optional re-export source.
type ExportNamedData struct {
	Specs  []ExportSpec
	Module source.StringID // NoStringID for local exports
}

// ExportDeclData holds `export <declaration>`.
type ExportDeclData struct {
	Decl StmtID
}

// ExportDefaultData holds `export default`. Either Decl (hoistable
// function/class declaration) or Expr is set.
type ExportDefaultData struct {
	Decl StmtID
	Expr ExprID
}

// ExportAllData holds `export * from "mod"` with an optional alias.
type ExportAllData struct {
	Module source.StringID
	Alias  source.StringID // `export * as ns`, NoStringID when absent
}

// StmtItemData wraps a plain top-level statement.
type StmtItemData struct {
	Stmt StmtID
}
