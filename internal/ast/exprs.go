package ast

import (
	"sodagql/internal/source"
	"sodagql/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena           *Arena[Expr]
	Idents          *Arena[ExprIdentData]
	Literals        *Arena[ExprLiteralData]
	Templates       *Arena[ExprTemplateData]
	Regexes         *Arena[ExprRegexData]
	Members         *Arena[ExprMemberData]
	Calls           *Arena[ExprCallData]
	News            *Arena[ExprNewData]
	Arrows          *Arena[ExprArrowData]
	Functions       *Arena[ExprFunctionData]
	Classes         *Arena[ExprClassData]
	Objects         *Arena[ExprObjectData]
	Arrays          *Arena[ExprArrayData]
	Assigns         *Arena[ExprAssignData]
	Binaries        *Arena[ExprBinaryData]
	Unaries         *Arena[ExprUnaryData]
	Updates         *Arena[ExprUpdateData]
	Conds           *Arena[ExprCondData]
	Seqs            *Arena[ExprSeqData]
	Spreads         *Arena[ExprSpreadData]
	Parens          *Arena[ExprParenData]
	Awaits          *Arena[ExprAwaitData]
	Yields          *Arena[ExprYieldData]
	TaggedTemplates *Arena[ExprTaggedTemplateData]
}

// NewExprs creates an Exprs with per-kind arenas preallocated to capHint;
// zero means a default of 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Idents:          NewArena[ExprIdentData](capHint),
		Literals:        NewArena[ExprLiteralData](capHint),
		Templates:       NewArena[ExprTemplateData](capHint),
		Regexes:         NewArena[ExprRegexData](capHint),
		Members:         NewArena[ExprMemberData](capHint),
		Calls:           NewArena[ExprCallData](capHint),
		News:            NewArena[ExprNewData](capHint),
		Arrows:          NewArena[ExprArrowData](capHint),
		Functions:       NewArena[ExprFunctionData](capHint),
		Classes:         NewArena[ExprClassData](capHint),
		Objects:         NewArena[ExprObjectData](capHint),
		Arrays:          NewArena[ExprArrayData](capHint),
		Assigns:         NewArena[ExprAssignData](capHint),
		Binaries:        NewArena[ExprBinaryData](capHint),
		Unaries:         NewArena[ExprUnaryData](capHint),
		Updates:         NewArena[ExprUpdateData](capHint),
		Conds:           NewArena[ExprCondData](capHint),
		Seqs:            NewArena[ExprSeqData](capHint),
		Spreads:         NewArena[ExprSpreadData](capHint),
		Parens:          NewArena[ExprParenData](capHint),
		Awaits:          NewArena[ExprAwaitData](capHint),
		Yields:          NewArena[ExprYieldData](capHint),
		TaggedTemplates: NewArena[ExprTaggedTemplateData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Overwrite replaces dst's kind and payload with src's while keeping dst's
// span, and marks dst as synthesized. The splice emitter relies on the span
// staying put to know which original bytes the node shadows.
func (e *Exprs) Overwrite(dst, src ExprID) {
	d := e.Get(dst)
	s := e.Get(src)
	d.Kind = s.Kind
	d.Payload = s.Payload
	d.Synth = true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, raw, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewTemplate creates a new template literal expression.
func (e *Exprs) NewTemplate(span source.Span, raw source.StringID) ExprID {
	payload := e.Templates.Allocate(ExprTemplateData{Raw: raw})
	return e.new(ExprTemplate, span, PayloadID(payload))
}

// Template returns the template data for the given expression ID.
func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTemplate {
		return nil, false
	}
	return e.Templates.Get(uint32(expr.Payload)), true
}

// NewRegex creates a new regular expression literal.
func (e *Exprs) NewRegex(span source.Span, raw source.StringID) ExprID {
	payload := e.Regexes.Allocate(ExprRegexData{Raw: raw})
	return e.new(ExprRegex, span, PayloadID(payload))
}

// Regex returns the regex data for the given expression ID.
func (e *Exprs) Regex(id ExprID) (*ExprRegexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRegex {
		return nil, false
	}
	return e.Regexes.Get(uint32(expr.Payload)), true
}

// NewMember creates a new member access expression.
func (e *Exprs) NewMember(span source.Span, obj ExprID, prop source.StringID, optional bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Obj: obj, Prop: prop, Optional: optional})
	return e.new(ExprMember, span, PayloadID(payload))
}

// NewComputedMember creates a new computed member access expression.
func (e *Exprs) NewComputedMember(span source.Span, obj, index ExprID, optional bool) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Obj: obj, Index: index, Computed: true, Optional: optional})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Callee:   callee,
		Args:     append([]ExprID(nil), args...),
		Optional: optional,
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewNew creates a new `new` expression.
func (e *Exprs) NewNew(span source.Span, callee ExprID, args []ExprID, hasParens bool) ExprID {
	payload := e.News.Allocate(ExprNewData{
		Callee:    callee,
		Args:      append([]ExprID(nil), args...),
		HasParens: hasParens,
	})
	return e.new(ExprNew, span, PayloadID(payload))
}

// New returns the `new` data for the given expression ID.
func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(uint32(expr.Payload)), true
}

// NewArrow creates a new arrow function expression with a block body.
func (e *Exprs) NewArrow(span source.Span, params []PatID, body StmtID, async bool) ExprID {
	payload := e.Arrows.Allocate(ExprArrowData{
		Params: append([]PatID(nil), params...),
		Body:   body,
		Async:  async,
	})
	return e.new(ExprArrow, span, PayloadID(payload))
}

// NewArrowExpr creates a new arrow function expression with an expression body.
func (e *Exprs) NewArrowExpr(span source.Span, params []PatID, body ExprID, async bool) ExprID {
	payload := e.Arrows.Allocate(ExprArrowData{
		Params:   append([]PatID(nil), params...),
		BodyExpr: body,
		ExprBody: true,
		Async:    async,
	})
	return e.new(ExprArrow, span, PayloadID(payload))
}

// Arrow returns the arrow data for the given expression ID.
func (e *Exprs) Arrow(id ExprID) (*ExprArrowData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrow {
		return nil, false
	}
	return e.Arrows.Get(uint32(expr.Payload)), true
}

// NewFunction creates a new function expression.
func (e *Exprs) NewFunction(span source.Span, name source.StringID, params []PatID, body StmtID, async, generator bool) ExprID {
	payload := e.Functions.Allocate(ExprFunctionData{
		Name:      name,
		Params:    append([]PatID(nil), params...),
		Body:      body,
		Async:     async,
		Generator: generator,
	})
	return e.new(ExprFunction, span, PayloadID(payload))
}

// Function returns the function data for the given expression ID.
func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFunction {
		return nil, false
	}
	return e.Functions.Get(uint32(expr.Payload)), true
}

// NewClass creates a new class expression.
func (e *Exprs) NewClass(span source.Span, name source.StringID, heritage ExprID, members []ClassMember) ExprID {
	payload := e.Classes.Allocate(ExprClassData{
		Name:     name,
		Heritage: heritage,
		Members:  append([]ClassMember(nil), members...),
	})
	return e.new(ExprClass, span, PayloadID(payload))
}

// Class returns the class data for the given expression ID.
func (e *Exprs) Class(id ExprID) (*ExprClassData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClass {
		return nil, false
	}
	return e.Classes.Get(uint32(expr.Payload)), true
}

// NewObject creates a new object literal expression.
func (e *Exprs) NewObject(span source.Span, props []ObjectProp) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{
		Props: append([]ObjectProp(nil), props...),
	})
	return e.new(ExprObject, span, PayloadID(payload))
}

// Object returns the object data for the given expression ID.
func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObject {
		return nil, false
	}
	return e.Objects.Get(uint32(expr.Payload)), true
}

// NewArray creates a new array literal expression.
func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{
		Elems: append([]ExprID(nil), elems...),
	})
	return e.new(ExprArray, span, PayloadID(payload))
}

// Array returns the array data for the given expression ID.
func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

// NewAssign creates a new assignment expression.
func (e *Exprs) NewAssign(span source.Span, op token.Kind, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new prefix unary expression.
func (e *Exprs) NewUnary(span source.Span, op token.Kind, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewUpdate creates a new ++/-- expression.
func (e *Exprs) NewUpdate(span source.Span, op token.Kind, operand ExprID, prefix bool) ExprID {
	payload := e.Updates.Allocate(ExprUpdateData{Op: op, Operand: operand, Prefix: prefix})
	return e.new(ExprUpdate, span, PayloadID(payload))
}

// Update returns the update data for the given expression ID.
func (e *Exprs) Update(id ExprID) (*ExprUpdateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUpdate {
		return nil, false
	}
	return e.Updates.Get(uint32(expr.Payload)), true
}

// NewCond creates a new ternary expression.
func (e *Exprs) NewCond(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Conds.Allocate(ExprCondData{Cond: cond, Then: then, Else: els})
	return e.new(ExprCond, span, PayloadID(payload))
}

// Cond returns the ternary data for the given expression ID.
func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCond {
		return nil, false
	}
	return e.Conds.Get(uint32(expr.Payload)), true
}

// NewSeq creates a new comma sequence expression.
func (e *Exprs) NewSeq(span source.Span, exprs []ExprID) ExprID {
	payload := e.Seqs.Allocate(ExprSeqData{Exprs: append([]ExprID(nil), exprs...)})
	return e.new(ExprSeq, span, PayloadID(payload))
}

// Seq returns the sequence data for the given expression ID.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSeq {
		return nil, false
	}
	return e.Seqs.Get(uint32(expr.Payload)), true
}

// NewSpread creates a new spread expression.
func (e *Exprs) NewSpread(span source.Span, arg ExprID) ExprID {
	payload := e.Spreads.Allocate(ExprSpreadData{Arg: arg})
	return e.new(ExprSpread, span, PayloadID(payload))
}

// Spread returns the spread data for the given expression ID.
func (e *Exprs) Spread(id ExprID) (*ExprSpreadData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSpread {
		return nil, false
	}
	return e.Spreads.Get(uint32(expr.Payload)), true
}

// NewParen creates a new parenthesized expression.
func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, PayloadID(payload))
}

// Paren returns the paren data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewAwait creates a new await expression.
func (e *Exprs) NewAwait(span source.Span, arg ExprID) ExprID {
	payload := e.Awaits.Allocate(ExprAwaitData{Arg: arg})
	return e.new(ExprAwait, span, PayloadID(payload))
}

// Await returns the await data for the given expression ID.
func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAwait {
		return nil, false
	}
	return e.Awaits.Get(uint32(expr.Payload)), true
}

// NewYield creates a new yield expression.
func (e *Exprs) NewYield(span source.Span, arg ExprID, delegate bool) ExprID {
	payload := e.Yields.Allocate(ExprYieldData{Arg: arg, Delegate: delegate})
	return e.new(ExprYield, span, PayloadID(payload))
}

// Yield returns the yield data for the given expression ID.
func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprYield {
		return nil, false
	}
	return e.Yields.Get(uint32(expr.Payload)), true
}

// NewTaggedTemplate creates a new tagged template expression.
func (e *Exprs) NewTaggedTemplate(span source.Span, tag, quasi ExprID) ExprID {
	payload := e.TaggedTemplates.Allocate(ExprTaggedTemplateData{Tag: tag, Quasi: quasi})
	return e.new(ExprTaggedTemplate, span, PayloadID(payload))
}

// TaggedTemplate returns the tagged template data for the given expression ID.
func (e *Exprs) TaggedTemplate(id ExprID) (*ExprTaggedTemplateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTaggedTemplate {
		return nil, false
	}
	return e.TaggedTemplates.Get(uint32(expr.Payload)), true
}
