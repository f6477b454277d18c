package ast

import (
	"sodagql/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprTemplate
	ExprRegex
	ExprMember
	ExprCall
	ExprNew
	ExprArrow
	ExprFunction
	ExprClass
	ExprObject
	ExprArray
	ExprAssign
	ExprBinary
	ExprUnary
	ExprUpdate
	ExprCond
	ExprSeq
	ExprSpread
	ExprParen
	ExprAwait
	ExprYield
	ExprTaggedTemplate
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
	// Synth marks nodes produced by a rewrite rather than the parser; their
	// Span still points at the original source they replaced.
	Synth bool
}
