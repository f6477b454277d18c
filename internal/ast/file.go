package ast

import (
	"sodagql/internal/source"
)

// File is one parsed module.
type File struct {
	Span  source.Span
	Items []ItemID
	// CJS marks a module that uses require/exports instead of ESM syntax;
	// the parser never sets it, the transform config does.
	CJS bool
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
