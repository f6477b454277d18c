package ast

import (
	"sodagql/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs, Pats uint }

// Builder bundles the arenas for one parse plus the string interner shared
// by every node that names something.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	Pats            *Pats
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 7
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Pats:            NewPats(hints.Pats),
		StringsInterner: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Intern is a shorthand for interning through the builder.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}

// Lookup resolves an interned string; it returns "" for NoStringID.
func (b *Builder) Lookup(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return b.StringsInterner.MustLookup(id)
}
