package transform

import (
	"sodagql/internal/ast"
)

// markerName is the identifier that roots every declarative builder chain.
const markerName = "gql"

// isGqlReference reports whether an expression resolves to the gql marker:
// the bare identifier, or a member chain where any non-computed property is
// named gql.
func isGqlReference(b *ast.Builder, id ast.ExprID) bool {
	for id != ast.NoExprID {
		e := b.Exprs.Get(id)
		if e == nil {
			return false
		}
		switch e.Kind {
		case ast.ExprIdent:
			data, _ := b.Exprs.Ident(id)
			return b.Lookup(data.Name) == markerName
		case ast.ExprMember:
			data, _ := b.Exprs.Member(id)
			if !data.Computed && b.Lookup(data.Prop) == markerName {
				return true
			}
			id = data.Obj
		default:
			return false
		}
	}
	return false
}

// builderCallback matches the gql builder call shape shared by the metadata
// collector and the analyzer: a member call rooted in the gql marker whose
// single non-spread argument is an arrow or function expression. It returns
// the callback argument on a match.
func builderCallback(b *ast.Builder, call *ast.ExprCallData) (ast.ExprID, bool) {
	callee := b.Exprs.Get(call.Callee)
	if callee == nil || callee.Kind != ast.ExprMember {
		return ast.NoExprID, false
	}
	member, _ := b.Exprs.Member(call.Callee)
	if !isGqlReference(b, member.Obj) {
		return ast.NoExprID, false
	}
	if len(call.Args) != 1 {
		return ast.NoExprID, false
	}
	arg := b.Exprs.Get(call.Args[0])
	if arg == nil {
		return ast.NoExprID, false
	}
	switch arg.Kind {
	case ast.ExprArrow, ast.ExprFunction:
		return call.Args[0], true
	}
	return ast.NoExprID, false
}

// innerBuilderCall extracts the builder invocation from a callback: the
// expression body of an arrow, or the argument of the first `return` in a
// block body. Returns the call's arguments.
func innerBuilderCall(b *ast.Builder, callback ast.ExprID) ([]ast.ExprID, bool) {
	cb := b.Exprs.Get(callback)
	switch cb.Kind {
	case ast.ExprArrow:
		data, _ := b.Exprs.Arrow(callback)
		if data.ExprBody {
			return callArgs(b, data.BodyExpr)
		}
		return returnedCallArgs(b, data.Body)
	case ast.ExprFunction:
		data, _ := b.Exprs.Function(callback)
		return returnedCallArgs(b, data.Body)
	}
	return nil, false
}

func callArgs(b *ast.Builder, id ast.ExprID) ([]ast.ExprID, bool) {
	e := b.Exprs.Get(id)
	if e == nil || e.Kind != ast.ExprCall {
		return nil, false
	}
	data, _ := b.Exprs.Call(id)
	return data.Args, true
}

func returnedCallArgs(b *ast.Builder, body ast.StmtID) ([]ast.ExprID, bool) {
	block, ok := b.Stmts.Block(body)
	if !ok {
		return nil, false
	}
	for _, sid := range block.Stmts {
		stmt := b.Stmts.Get(sid)
		if stmt == nil || stmt.Kind != ast.StmtReturn {
			continue
		}
		ret, _ := b.Stmts.Return(sid)
		if ret.Arg == ast.NoExprID {
			continue
		}
		if args, ok := callArgs(b, ret.Arg); ok {
			return args, true
		}
	}
	return nil, false
}
