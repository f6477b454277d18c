package ast

import (
	"sodagql/internal/source"
)

type PatKind uint8

const (
	PatIdent PatKind = iota
	PatObject
	PatArray
	PatAssign
	PatRest
)

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

// PatIdentData holds a plain binding name.
type PatIdentData struct {
	Name source.StringID
}

// ObjectPatProp is one `{key: target}` entry of an object pattern. Key keeps
// the exact non-computed source spelling.
type ObjectPatProp struct {
	Key       source.StringID
	KeyExpr   ExprID
	Value     PatID
	Computed  bool
	Shorthand bool
	Span      source.Span
}

// PatObjectData holds an object destructuring pattern; Rest may be NoPatID.
type PatObjectData struct {
	Props []ObjectPatProp
	Rest  PatID
}

// PatArrayData holds an array destructuring pattern; holes are NoPatID and
// Rest may be NoPatID.
type PatArrayData struct {
	Elems []PatID
	Rest  PatID
}

// PatAssignData holds a pattern with a default value.
type PatAssignData struct {
	Pat     PatID
	Default ExprID
}

// PatRestData holds a `...arg` rest element.
type PatRestData struct {
	Arg PatID
}

// Pats manages allocation of binding patterns.
type Pats struct {
	Arena   *Arena[Pat]
	Idents  *Arena[PatIdentData]
	Objects *Arena[PatObjectData]
	Arrays  *Arena[PatArrayData]
	Assigns *Arena[PatAssignData]
	Rests   *Arena[PatRestData]
}

// NewPats creates a Pats with arenas preallocated to capHint; zero means a
// default of 1<<7.
func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Pats{
		Arena:   NewArena[Pat](capHint),
		Idents:  NewArena[PatIdentData](capHint),
		Objects: NewArena[PatObjectData](capHint),
		Arrays:  NewArena[PatArrayData](capHint),
		Assigns: NewArena[PatAssignData](capHint),
		Rests:   NewArena[PatRestData](capHint),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the pattern with the given ID.
func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

// NewIdent creates a plain binding pattern.
func (p *Pats) NewIdent(span source.Span, name source.StringID) PatID {
	payload := p.Idents.Allocate(PatIdentData{Name: name})
	return p.new(PatIdent, span, PayloadID(payload))
}

// Ident returns the binding name data for the given pattern ID.
func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

// NewObject creates an object destructuring pattern.
func (p *Pats) NewObject(span source.Span, props []ObjectPatProp, rest PatID) PatID {
	payload := p.Objects.Allocate(PatObjectData{
		Props: append([]ObjectPatProp(nil), props...),
		Rest:  rest,
	})
	return p.new(PatObject, span, PayloadID(payload))
}

// Object returns the object pattern data for the given pattern ID.
func (p *Pats) Object(id PatID) (*PatObjectData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatObject {
		return nil, false
	}
	return p.Objects.Get(uint32(pat.Payload)), true
}

// NewArray creates an array destructuring pattern.
func (p *Pats) NewArray(span source.Span, elems []PatID, rest PatID) PatID {
	payload := p.Arrays.Allocate(PatArrayData{
		Elems: append([]PatID(nil), elems...),
		Rest:  rest,
	})
	return p.new(PatArray, span, PayloadID(payload))
}

// Array returns the array pattern data for the given pattern ID.
func (p *Pats) Array(id PatID) (*PatArrayData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatArray {
		return nil, false
	}
	return p.Arrays.Get(uint32(pat.Payload)), true
}

// NewAssign creates a defaulted pattern.
func (p *Pats) NewAssign(span source.Span, inner PatID, def ExprID) PatID {
	payload := p.Assigns.Allocate(PatAssignData{Pat: inner, Default: def})
	return p.new(PatAssign, span, PayloadID(payload))
}

// Assign returns the default-value data for the given pattern ID.
func (p *Pats) Assign(id PatID) (*PatAssignData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatAssign {
		return nil, false
	}
	return p.Assigns.Get(uint32(pat.Payload)), true
}

// NewRest creates a rest element pattern.
func (p *Pats) NewRest(span source.Span, arg PatID) PatID {
	payload := p.Rests.Allocate(PatRestData{Arg: arg})
	return p.new(PatRest, span, PayloadID(payload))
}

// Rest returns the rest data for the given pattern ID.
func (p *Pats) Rest(id PatID) (*PatRestData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRest {
		return nil, false
	}
	return p.Rests.Get(uint32(pat.Payload)), true
}
