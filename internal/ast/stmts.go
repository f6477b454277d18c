package ast

import (
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena      *Arena[Stmt]
	VarDecls   *Arena[StmtVarDeclData]
	ExprStmts  *Arena[StmtExprData]
	Returns    *Arena[StmtReturnData]
	Ifs        *Arena[StmtIfData]
	Fors       *Arena[StmtForData]
	ForInOfs   *Arena[StmtForInOfData]
	Whiles     *Arena[StmtWhileData]
	Blocks     *Arena[StmtBlockData]
	Switches   *Arena[StmtSwitchData]
	Tries      *Arena[StmtTryData]
	Throws     *Arena[StmtThrowData]
	Breaks     *Arena[StmtBreakData]
	Labeleds   *Arena[StmtLabeledData]
	FnDecls    *Arena[StmtFnDeclData]
	ClassDecls *Arena[StmtClassDeclData]
}

// NewStmts creates a Stmts with per-kind arenas preallocated to capHint;
// zero means a default of 1<<8.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		VarDecls:   NewArena[StmtVarDeclData](capHint),
		ExprStmts:  NewArena[StmtExprData](capHint),
		Returns:    NewArena[StmtReturnData](capHint),
		Ifs:        NewArena[StmtIfData](capHint),
		Fors:       NewArena[StmtForData](capHint),
		ForInOfs:   NewArena[StmtForInOfData](capHint),
		Whiles:     NewArena[StmtWhileData](capHint),
		Blocks:     NewArena[StmtBlockData](capHint),
		Switches:   NewArena[StmtSwitchData](capHint),
		Tries:      NewArena[StmtTryData](capHint),
		Throws:     NewArena[StmtThrowData](capHint),
		Breaks:     NewArena[StmtBreakData](capHint),
		Labeleds:   NewArena[StmtLabeledData](capHint),
		FnDecls:    NewArena[StmtFnDeclData](capHint),
		ClassDecls: NewArena[StmtClassDeclData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewVarDecl creates a var/let/const declaration statement.
func (s *Stmts) NewVarDecl(span source.Span, kw token.Kind, decls []VarDeclarator) StmtID {
	payload := s.VarDecls.Allocate(StmtVarDeclData{
		Kw:    kw,
		Decls: append([]VarDeclarator(nil), decls...),
	})
	return s.new(StmtVarDecl, span, PayloadID(payload))
}

// VarDecl returns the declaration data for the given statement ID.
func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtVarDecl {
		return nil, false
	}
	return s.VarDecls.Get(uint32(st.Payload)), true
}

// NewExprStmt creates an expression statement.
func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// ExprStmt returns the expression statement data for the given statement ID.
func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(st.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, arg ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Arg: arg})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data for the given statement ID.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(st.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data for the given statement ID.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

// NewFor creates a three-clause for loop.
func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Init: init, Cond: cond, Post: post, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for data for the given statement ID.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

// NewForInOf creates a for-in or for-of loop.
func (s *Stmts) NewForInOf(span source.Span, data StmtForInOfData) StmtID {
	payload := s.ForInOfs.Allocate(data)
	return s.new(StmtForInOf, span, PayloadID(payload))
}

// ForInOf returns the for-in/for-of data for the given statement ID.
func (s *Stmts) ForInOf(id StmtID) (*StmtForInOfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtForInOf {
		return nil, false
	}
	return s.ForInOfs.Get(uint32(st.Payload)), true
}

// NewWhile creates a while loop.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// NewDoWhile creates a do-while loop.
func (s *Stmts) NewDoWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtDoWhile, span, PayloadID(payload))
}

// While returns the loop data for while and do-while statements.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtWhile && st.Kind != StmtDoWhile) {
		return nil, false
	}
	return s.Whiles.Get(uint32(st.Payload)), true
}

// NewBlock creates a braced statement list.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block data for the given statement ID.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(st.Payload)), true
}

// NewSwitch creates a switch statement.
func (s *Stmts) NewSwitch(span source.Span, disc ExprID, cases []SwitchCase) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{
		Disc:  disc,
		Cases: append([]SwitchCase(nil), cases...),
	})
	return s.new(StmtSwitch, span, PayloadID(payload))
}

// Switch returns the switch data for the given statement ID.
func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(uint32(st.Payload)), true
}

// NewTry creates a try statement.
func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	payload := s.Tries.Allocate(data)
	return s.new(StmtTry, span, PayloadID(payload))
}

// Try returns the try data for the given statement ID.
func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtTry {
		return nil, false
	}
	return s.Tries.Get(uint32(st.Payload)), true
}

// NewThrow creates a throw statement.
func (s *Stmts) NewThrow(span source.Span, arg ExprID) StmtID {
	payload := s.Throws.Allocate(StmtThrowData{Arg: arg})
	return s.new(StmtThrow, span, PayloadID(payload))
}

// Throw returns the throw data for the given statement ID.
func (s *Stmts) Throw(id StmtID) (*StmtThrowData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtThrow {
		return nil, false
	}
	return s.Throws.Get(uint32(st.Payload)), true
}

// NewBreak creates a break statement.
func (s *Stmts) NewBreak(span source.Span, label source.StringID) StmtID {
	payload := s.Breaks.Allocate(StmtBreakData{Label: label})
	return s.new(StmtBreak, span, PayloadID(payload))
}

// NewContinue creates a continue statement.
func (s *Stmts) NewContinue(span source.Span, label source.StringID) StmtID {
	payload := s.Breaks.Allocate(StmtBreakData{Label: label})
	return s.new(StmtContinue, span, PayloadID(payload))
}

// Break returns the label data for break and continue statements.
func (s *Stmts) Break(id StmtID) (*StmtBreakData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtBreak && st.Kind != StmtContinue) {
		return nil, false
	}
	return s.Breaks.Get(uint32(st.Payload)), true
}

// NewLabeled creates a labeled statement.
func (s *Stmts) NewLabeled(span source.Span, label source.StringID, body StmtID) StmtID {
	payload := s.Labeleds.Allocate(StmtLabeledData{Label: label, Body: body})
	return s.new(StmtLabeled, span, PayloadID(payload))
}

// Labeled returns the labeled statement data for the given statement ID.
func (s *Stmts) Labeled(id StmtID) (*StmtLabeledData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLabeled {
		return nil, false
	}
	return s.Labeleds.Get(uint32(st.Payload)), true
}

// NewEmpty creates an empty statement.
func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}

// NewDebugger creates a debugger statement.
func (s *Stmts) NewDebugger(span source.Span) StmtID {
	return s.new(StmtDebugger, span, NoPayloadID)
}

// NewFnDecl creates a function declaration wrapping an ExprFunction node.
func (s *Stmts) NewFnDecl(span source.Span, fn ExprID) StmtID {
	payload := s.FnDecls.Allocate(StmtFnDeclData{Fn: fn})
	return s.new(StmtFnDecl, span, PayloadID(payload))
}

// FnDecl returns the function declaration data for the given statement ID.
func (s *Stmts) FnDecl(id StmtID) (*StmtFnDeclData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFnDecl {
		return nil, false
	}
	return s.FnDecls.Get(uint32(st.Payload)), true
}

// NewClassDecl creates a class declaration wrapping an ExprClass node.
func (s *Stmts) NewClassDecl(span source.Span, class ExprID) StmtID {
	payload := s.ClassDecls.Allocate(StmtClassDeclData{Class: class})
	return s.new(StmtClassDecl, span, PayloadID(payload))
}

// ClassDecl returns the class declaration data for the given statement ID.
func (s *Stmts) ClassDecl(id StmtID) (*StmtClassDeclData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtClassDecl {
		return nil, false
	}
	return s.ClassDecls.Get(uint32(st.Payload)), true
}
