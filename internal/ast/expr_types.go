package ast

import (
	"sodagql/internal/source"
	"sodagql/internal/token"
)

type ExprLitKind uint8

const (
	// ExprLitNumber covers every numeric spelling including bigints.
	ExprLitNumber ExprLitKind = iota
	// ExprLitString is a quoted string; Raw keeps the quotes.
	ExprLitString
	ExprLitTrue
	ExprLitFalse
	ExprLitNull
)

// ExprIdentData holds identifier expression details.
type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData holds literal expression details. Raw is the exact source
// spelling; string values are additionally available decoded via Value.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Raw   source.StringID
	Value source.StringID // decoded string value; NoStringID for non-strings
}

// ExprTemplateData holds an opaque template literal, backticks included.
type ExprTemplateData struct {
	Raw source.StringID
}

// ExprRegexData holds an opaque regular expression literal.
type ExprRegexData struct {
	Raw source.StringID
}

// ExprMemberData holds member access details. For computed access the
// property lives in Index and Prop is NoStringID.
type ExprMemberData struct {
	Obj      ExprID
	Prop     source.StringID
	Index    ExprID
	Computed bool
	Optional bool // ?. access
}

// ExprCallData holds function call details. Spread arguments appear as
// ExprSpread nodes in Args.
type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool // ?.( call
}

// ExprNewData holds `new` expression details. Args is nil when the source
// had no argument list at all.
type ExprNewData struct {
	Callee    ExprID
	Args      []ExprID
	HasParens bool
}

// ExprArrowData holds arrow function details. Exactly one of Body (a block)
// or BodyExpr is set; ExprBody distinguishes the two.
type ExprArrowData struct {
	Params   []PatID
	Body     StmtID
	BodyExpr ExprID
	ExprBody bool
	Async    bool
}

// ExprFunctionData holds function expression or declaration details.
type ExprFunctionData struct {
	Name      source.StringID // NoStringID when anonymous
	Params    []PatID
	Body      StmtID
	Async     bool
	Generator bool
}

type ClassMemberKind uint8

const (
	ClassMethod ClassMemberKind = iota
	ClassGetter
	ClassSetter
	ClassField
	ClassStaticBlock
)

// ClassMember is one `class` body entry. Key is the source spelling of the
// member name (identifier, string or number literal, or private name); for
// computed names Key is NoStringID and KeyExpr carries the expression.
type ClassMember struct {
	Kind     ClassMemberKind
	Key      source.StringID
	KeyExpr  ExprID
	Value    ExprID // function expr for methods, initializer for fields
	Body     StmtID // static block body
	Static   bool
	Computed bool
	Span     source.Span
}

// ExprClassData holds class expression or declaration details.
type ExprClassData struct {
	Name     source.StringID // NoStringID when anonymous
	Heritage ExprID          // extends clause, NoExprID when absent
	Members  []ClassMember
}

type ObjectPropKind uint8

const (
	PropKeyValue ObjectPropKind = iota
	PropShorthand
	PropMethod
	PropGetter
	PropSetter
	PropSpread
)

// ObjectProp is one object literal entry. Key keeps the exact source
// spelling of non-computed keys, quotes included for string keys.
type ObjectProp struct {
	Kind     ObjectPropKind
	Key      source.StringID
	KeyExpr  ExprID
	Value    ExprID
	Computed bool
	Span     source.Span
}

// ExprObjectData holds object literal details.
type ExprObjectData struct {
	Props []ObjectProp
}

// ExprArrayData holds array literal details; holes are NoExprID.
type ExprArrayData struct {
	Elems []ExprID
}

// ExprAssignData holds assignment details. Op is the assignment token kind
// (=, +=, &&=, ...).
type ExprAssignData struct {
	Op     token.Kind
	Target ExprID
	Value  ExprID
}

// ExprBinaryData holds binary operation details. Op is the operator token
// kind; `in` and `instanceof` use their keyword kinds.
type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

// ExprUnaryData holds prefix unary details (!, ~, +, -, typeof, void,
// delete).
type ExprUnaryData struct {
	Op      token.Kind
	Operand ExprID
}

// ExprUpdateData holds ++/-- details.
type ExprUpdateData struct {
	Op      token.Kind
	Operand ExprID
	Prefix  bool
}

// ExprCondData holds ternary details.
type ExprCondData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// ExprSeqData holds comma sequence details.
type ExprSeqData struct {
	Exprs []ExprID
}

// ExprSpreadData holds `...arg` details.
type ExprSpreadData struct {
	Arg ExprID
}

// ExprParenData holds parenthesized expression details.
type ExprParenData struct {
	Inner ExprID
}

// ExprAwaitData holds await details.
type ExprAwaitData struct {
	Arg ExprID
}

// ExprYieldData holds yield details.
type ExprYieldData struct {
	Arg      ExprID // NoExprID for bare yield
	Delegate bool
}

// ExprTaggedTemplateData holds tagged template details.
type ExprTaggedTemplateData struct {
	Tag   ExprID
	Quasi ExprID // ExprTemplate node
}
