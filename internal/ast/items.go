package ast

import (
	"sodagql/internal/source"
)

// Items manages allocation of top-level module items.
type Items struct {
	Arena          *Arena[Item]
	Imports        *Arena[ImportItemData]
	ExportNameds   *Arena[ExportNamedData]
	ExportDecls    *Arena[ExportDeclData]
	ExportDefaults *Arena[ExportDefaultData]
	ExportAlls     *Arena[ExportAllData]
	StmtItems      *Arena[StmtItemData]
}

// NewItems creates an Items with per-kind arenas preallocated to capHint;
// zero means a default of 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:          NewArena[Item](capHint),
		Imports:        NewArena[ImportItemData](capHint),
		ExportNameds:   NewArena[ExportNamedData](capHint),
		ExportDecls:    NewArena[ExportDeclData](capHint),
		ExportDefaults: NewArena[ExportDefaultData](capHint),
		ExportAlls:     NewArena[ExportAllData](capHint),
		StmtItems:      NewArena[StmtItemData](capHint),
	}
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the item with the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewImport creates an import declaration item.
func (it *Items) NewImport(span source.Span, data ImportItemData) ItemID {
	data.Named = append([]ImportSpec(nil), data.Named...)
	payload := it.Imports.Allocate(data)
	return it.new(ItemImport, span, PayloadID(payload))
}

// Import returns the import data for the given item ID.
func (it *Items) Import(id ItemID) (*ImportItemData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return it.Imports.Get(uint32(item.Payload)), true
}

// NewExportNamed creates an `export { ... }` item.
func (it *Items) NewExportNamed(span source.Span, specs []ExportSpec, module source.StringID) ItemID {
	payload := it.ExportNameds.Allocate(ExportNamedData{
		Specs:  append([]ExportSpec(nil), specs...),
		Module: module,
	})
	return it.new(ItemExportNamed, span, PayloadID(payload))
}

// ExportNamed returns the named-export data for the given item ID.
func (it *Items) ExportNamed(id ItemID) (*ExportNamedData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemExportNamed {
		return nil, false
	}
	return it.ExportNameds.Get(uint32(item.Payload)), true
}

// NewExportDecl creates an `export <declaration>` item.
func (it *Items) NewExportDecl(span source.Span, decl StmtID) ItemID {
	payload := it.ExportDecls.Allocate(ExportDeclData{Decl: decl})
	return it.new(ItemExportDecl, span, PayloadID(payload))
}

// ExportDecl returns the export-declaration data for the given item ID.
func (it *Items) ExportDecl(id ItemID) (*ExportDeclData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemExportDecl {
		return nil, false
	}
	return it.ExportDecls.Get(uint32(item.Payload)), true
}

// NewExportDefault creates an `export default` item.
func (it *Items) NewExportDefault(span source.Span, decl StmtID, expr ExprID) ItemID {
	payload := it.ExportDefaults.Allocate(ExportDefaultData{Decl: decl, Expr: expr})
	return it.new(ItemExportDefault, span, PayloadID(payload))
}

// ExportDefault returns the default-export data for the given item ID.
func (it *Items) ExportDefault(id ItemID) (*ExportDefaultData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemExportDefault {
		return nil, false
	}
	return it.ExportDefaults.Get(uint32(item.Payload)), true
}

// NewExportAll creates an `export * from "mod"` item.
func (it *Items) NewExportAll(span source.Span, module, alias source.StringID) ItemID {
	payload := it.ExportAlls.Allocate(ExportAllData{Module: module, Alias: alias})
	return it.new(ItemExportAll, span, PayloadID(payload))
}

// ExportAll returns the export-all data for the given item ID.
func (it *Items) ExportAll(id ItemID) (*ExportAllData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemExportAll {
		return nil, false
	}
	return it.ExportAlls.Get(uint32(item.Payload)), true
}

// NewStmtItem wraps a top-level statement as an item.
func (it *Items) NewStmtItem(span source.Span, stmt StmtID) ItemID {
	payload := it.StmtItems.Allocate(StmtItemData{Stmt: stmt})
	return it.new(ItemStmt, span, PayloadID(payload))
}

// StmtItem returns the wrapped statement for the given item ID.
func (it *Items) StmtItem(id ItemID) (*StmtItemData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemStmt {
		return nil, false
	}
	return it.StmtItems.Get(uint32(item.Payload)), true
}
