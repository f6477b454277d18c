package ast

import (
	"sodagql/internal/source"
	"sodagql/internal/token"
)

type StmtKind uint8

const (
	StmtVarDecl StmtKind = iota
	StmtExpr
	StmtReturn
	StmtIf
	StmtFor
	StmtForInOf
	StmtWhile
	StmtDoWhile
	StmtBlock
	StmtSwitch
	StmtTry
	StmtThrow
	StmtBreak
	StmtContinue
	StmtLabeled
	StmtEmpty
	StmtDebugger
	StmtFnDecl
	StmtClassDecl
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	Synth   bool
}

// VarDeclarator is one `name = init` entry of a declaration.
type VarDeclarator struct {
	Pat  PatID
	Init ExprID // NoExprID when absent
	Span source.Span
}

// StmtVarDeclData holds a var/let/const declaration.
type StmtVarDeclData struct {
	Kw    token.Kind // KwVar, KwLet or KwConst
	Decls []VarDeclarator
}

// StmtExprData holds an expression statement.
type StmtExprData struct {
	Expr ExprID
}

// StmtReturnData holds a return statement; Arg may be NoExprID.
type StmtReturnData struct {
	Arg ExprID
}

// StmtIfData holds an if statement; Else may be NoStmtID.
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// StmtForData holds a classic three-clause for loop. Init is a statement
// (declaration or expression statement) or NoStmtID; Cond/Post may be
// NoExprID.
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

// StmtForInOfData holds for-in and for-of loops. The left side is either a
// declaration statement (Decl) or a bare target expression (Left).
type StmtForInOfData struct {
	Decl  StmtID
	Left  ExprID
	Right ExprID
	Body  StmtID
	Of    bool
	Await bool
}

// StmtWhileData holds while and do-while loops.
type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtBlockData holds a braced statement list.
type StmtBlockData struct {
	Stmts []StmtID
}

// SwitchCase is one case clause; Test is NoExprID for `default`.
type SwitchCase struct {
	Test ExprID
	Body []StmtID
	Span source.Span
}

// StmtSwitchData holds a switch statement.
type StmtSwitchData struct {
	Disc  ExprID
	Cases []SwitchCase
}

// StmtTryData holds try/catch/finally. CatchBody is NoStmtID when there is
// no catch clause; CatchParam is NoPatID for a parameterless catch.
type StmtTryData struct {
	Block      StmtID
	CatchParam PatID
	CatchBody  StmtID
	Finally    StmtID
}

// StmtThrowData holds a throw statement.
type StmtThrowData struct {
	Arg ExprID
}

// StmtBreakData holds break/continue with an optional label.
type StmtBreakData struct {
	Label source.StringID
}

// StmtLabeledData holds a labeled statement.
type StmtLabeledData struct {
	Label source.StringID
	Body  StmtID
}

// StmtFnDeclData holds a function declaration; Fn is an ExprFunction node.
type StmtFnDeclData struct {
	Fn ExprID
}

// StmtClassDeclData holds a class declaration; Class is an ExprClass node.
type StmtClassDeclData struct {
	Class ExprID
}
