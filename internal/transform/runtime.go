package transform

import (
	"encoding/json"

	"sodagql/internal/artifact"
	"sodagql/internal/ast"
	"sodagql/internal/source"
)

const (
	runtimeModule     = "@soda-gql/runtime"
	runtimeImportName = "gqlRuntime"
	cjsRuntimeName    = "__soda_gql_runtime"
)

// synthesizer builds the lean runtime expressions that replace builder
// calls. All nodes it creates carry the zero span; the rewriter grafts the
// replacement onto the original call so the emitter can splice it.
type synthesizer struct {
	b   *ast.Builder
	cjs bool
}

// build produces the replacement expression for one resolved call and, for
// the registered protocol, the registration statement to hoist after the
// imports. ok is false when a required builder argument is missing.
func (s *synthesizer) build(rep *Replacement) (expr ast.ExprID, reg ast.StmtID, ok bool) {
	switch rep.Element.Kind {
	case artifact.KindModel:
		expr, ok = s.modelCall(rep.Element.Model, rep.BuilderArgs)
		return expr, ast.NoStmtID, ok
	case artifact.KindSlice:
		expr, ok = s.sliceCall(rep.Element.Slice, rep.BuilderArgs)
		return expr, ast.NoStmtID, ok
	case artifact.KindOperation:
		return s.composedOperationCalls(rep.Element.Operation, rep.BuilderArgs)
	case artifact.KindInlineOperation:
		return s.inlineOperationCalls(rep.Element.InlineOperation)
	}
	return ast.NoExprID, ast.NoStmtID, false
}

// runtimeAccessor is `gqlRuntime` for ESM and
// `__soda_gql_runtime.gqlRuntime` for CJS.
func (s *synthesizer) runtimeAccessor() ast.ExprID {
	name := s.b.Exprs.NewIdent(source.Span{}, s.b.Intern(runtimeImportName))
	if !s.cjs {
		return name
	}
	base := s.b.Exprs.NewIdent(source.Span{}, s.b.Intern(cjsRuntimeName))
	return s.b.Exprs.NewMember(source.Span{}, base, s.b.Intern(runtimeImportName), false)
}

func (s *synthesizer) runtimeCall(method string, args []ast.ExprID) ast.ExprID {
	callee := s.b.Exprs.NewMember(source.Span{}, s.runtimeAccessor(), s.b.Intern(method), false)
	return s.b.Exprs.NewCall(source.Span{}, callee, args, false)
}

func (s *synthesizer) objectLit(props []ast.ObjectProp) ast.ExprID {
	return s.b.Exprs.NewObject(source.Span{}, props)
}

func (s *synthesizer) keyValue(key string, value ast.ExprID) ast.ObjectProp {
	return ast.ObjectProp{
		Kind:  ast.PropKeyValue,
		Key:   s.b.Intern(key),
		Value: value,
	}
}

func (s *synthesizer) stringLit(value string) ast.ExprID {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = []byte(`""`)
	}
	return s.b.Exprs.NewLiteral(source.Span{}, ast.ExprLitString,
		s.b.Intern(string(raw)), s.b.Intern(value))
}

// jsonParse builds `JSON.parse("<payload>")` around a marshaled prebuild.
func (s *synthesizer) jsonParse(payload string) ast.ExprID {
	obj := s.b.Exprs.NewIdent(source.Span{}, s.b.Intern("JSON"))
	callee := s.b.Exprs.NewMember(source.Span{}, obj, s.b.Intern("parse"), false)
	return s.b.Exprs.NewCall(source.Span{}, callee, []ast.ExprID{s.stringLit(payload)}, false)
}

// modelCall rewrites `model.User({}, fields, normalize)` into
// `gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize } })`.
func (s *synthesizer) modelCall(prebuild *artifact.ModelPrebuild, args []ast.ExprID) (ast.ExprID, bool) {
	normalize, ok := s.builderArg(args, 2)
	if !ok {
		return ast.NoExprID, false
	}
	arg := s.objectLit([]ast.ObjectProp{
		s.keyValue("prebuild", s.objectLit([]ast.ObjectProp{
			s.keyValue("typename", s.stringLit(prebuild.Typename)),
		})),
		s.keyValue("runtime", s.objectLit([]ast.ObjectProp{
			s.keyValue("normalize", normalize),
		})),
	})
	return s.runtimeCall("model", []ast.ExprID{arg}), true
}

// sliceCall rewrites `query.slice({}, fields, projectionBuilder)` into
// `gqlRuntime.slice({ prebuild: { operationType: "query" }, runtime: { buildProjection } })`.
func (s *synthesizer) sliceCall(prebuild *artifact.SlicePrebuild, args []ast.ExprID) (ast.ExprID, bool) {
	projection, ok := s.builderArg(args, 2)
	if !ok {
		return ast.NoExprID, false
	}
	arg := s.objectLit([]ast.ObjectProp{
		s.keyValue("prebuild", s.objectLit([]ast.ObjectProp{
			s.keyValue("operationType", s.stringLit(prebuild.OperationType)),
		})),
		s.keyValue("runtime", s.objectLit([]ast.ObjectProp{
			s.keyValue("buildProjection", projection),
		})),
	})
	return s.runtimeCall("slice", []ast.ExprID{arg}), true
}

// composedOperationCalls produces the registered protocol for operations:
// a hoisted `gqlRuntime.composedOperation({...})` statement plus a
// `gqlRuntime.getComposedOperation("Name")` reference at the call site.
func (s *synthesizer) composedOperationCalls(prebuild *artifact.OperationPrebuild, args []ast.ExprID) (ast.ExprID, ast.StmtID, bool) {
	getSlices, ok := s.builderArg(args, 1)
	if !ok {
		return ast.NoExprID, ast.NoStmtID, false
	}
	payload, err := json.Marshal(prebuild)
	if err != nil {
		return ast.NoExprID, ast.NoStmtID, false
	}

	registration := s.runtimeCall("composedOperation", []ast.ExprID{
		s.objectLit([]ast.ObjectProp{
			s.keyValue("prebuild", s.jsonParse(string(payload))),
			s.keyValue("runtime", s.objectLit([]ast.ObjectProp{
				s.keyValue("getSlices", getSlices),
			})),
		}),
	})
	stmt := s.b.Stmts.NewExprStmt(source.Span{}, registration)
	s.b.Stmts.Get(stmt).Synth = true

	reference := s.runtimeCall("getComposedOperation", []ast.ExprID{
		s.stringLit(prebuild.OperationName),
	})
	return reference, stmt, true
}

// inlineOperationCalls produces the registered protocol for inline
// operations; there is no runtime callback, so the runtime object is empty.
func (s *synthesizer) inlineOperationCalls(prebuild *artifact.InlineOperationPrebuild) (ast.ExprID, ast.StmtID, bool) {
	payload, err := json.Marshal(prebuild)
	if err != nil {
		return ast.NoExprID, ast.NoStmtID, false
	}

	registration := s.runtimeCall("inlineOperation", []ast.ExprID{
		s.objectLit([]ast.ObjectProp{
			s.keyValue("prebuild", s.jsonParse(string(payload))),
			s.keyValue("runtime", s.objectLit(nil)),
		}),
	})
	stmt := s.b.Stmts.NewExprStmt(source.Span{}, registration)
	s.b.Stmts.Get(stmt).Synth = true

	reference := s.runtimeCall("getInlineOperation", []ast.ExprID{
		s.stringLit(prebuild.OperationName),
	})
	return reference, stmt, true
}

// builderArg fetches a positional builder argument. Spread wrappers are
// unwrapped to the inner expression.
func (s *synthesizer) builderArg(args []ast.ExprID, index int) (ast.ExprID, bool) {
	if index >= len(args) || args[index] == ast.NoExprID {
		return ast.NoExprID, false
	}
	id := args[index]
	if e := s.b.Exprs.Get(id); e != nil && e.Kind == ast.ExprSpread {
		data, _ := s.b.Exprs.Spread(id)
		return data.Arg, true
	}
	return id, true
}
