package ast

// Walker traverses the tree in source order. Enter hooks fire before a
// node's children; returning false skips the subtree. Exit hooks fire after
// the children. Nil hooks are skipped.
type Walker struct {
	B *Builder

	EnterExpr func(ExprID) bool
	ExitExpr  func(ExprID)
	EnterStmt func(StmtID) bool
	ExitStmt  func(StmtID)
	EnterPat  func(PatID) bool
	ExitPat   func(PatID)
}

// File walks every item of a file.
func (w *Walker) File(id FileID) {
	file := w.B.Files.Get(id)
	if file == nil {
		return
	}
	for _, item := range file.Items {
		w.Item(item)
	}
}

// Item walks one module item.
func (w *Walker) Item(id ItemID) {
	item := w.B.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ItemImport, ItemExportAll:
		// no nested nodes
	case ItemExportNamed:
		// specs carry names only
	case ItemExportDecl:
		if data, ok := w.B.Items.ExportDecl(id); ok {
			w.Stmt(data.Decl)
		}
	case ItemExportDefault:
		if data, ok := w.B.Items.ExportDefault(id); ok {
			if data.Decl != NoStmtID {
				w.Stmt(data.Decl)
			} else {
				w.Expr(data.Expr)
			}
		}
	case ItemStmt:
		if data, ok := w.B.Items.StmtItem(id); ok {
			w.Stmt(data.Stmt)
		}
	}
}

// Stmt walks one statement subtree.
func (w *Walker) Stmt(id StmtID) {
	if id == NoStmtID {
		return
	}
	stmt := w.B.Stmts.Get(id)
	if stmt == nil {
		return
	}
	if w.EnterStmt != nil && !w.EnterStmt(id) {
		return
	}

	switch stmt.Kind {
	case StmtVarDecl:
		if data, ok := w.B.Stmts.VarDecl(id); ok {
			for _, d := range data.Decls {
				w.Pat(d.Pat)
				w.Expr(d.Init)
			}
		}
	case StmtExpr:
		if data, ok := w.B.Stmts.ExprStmt(id); ok {
			w.Expr(data.Expr)
		}
	case StmtReturn:
		if data, ok := w.B.Stmts.Return(id); ok {
			w.Expr(data.Arg)
		}
	case StmtIf:
		if data, ok := w.B.Stmts.If(id); ok {
			w.Expr(data.Cond)
			w.Stmt(data.Then)
			w.Stmt(data.Else)
		}
	case StmtFor:
		if data, ok := w.B.Stmts.For(id); ok {
			w.Stmt(data.Init)
			w.Expr(data.Cond)
			w.Expr(data.Post)
			w.Stmt(data.Body)
		}
	case StmtForInOf:
		if data, ok := w.B.Stmts.ForInOf(id); ok {
			w.Stmt(data.Decl)
			w.Expr(data.Left)
			w.Expr(data.Right)
			w.Stmt(data.Body)
		}
	case StmtWhile, StmtDoWhile:
		if data, ok := w.B.Stmts.While(id); ok {
			w.Expr(data.Cond)
			w.Stmt(data.Body)
		}
	case StmtBlock:
		if data, ok := w.B.Stmts.Block(id); ok {
			for _, s := range data.Stmts {
				w.Stmt(s)
			}
		}
	case StmtSwitch:
		if data, ok := w.B.Stmts.Switch(id); ok {
			w.Expr(data.Disc)
			for _, c := range data.Cases {
				w.Expr(c.Test)
				for _, s := range c.Body {
					w.Stmt(s)
				}
			}
		}
	case StmtTry:
		if data, ok := w.B.Stmts.Try(id); ok {
			w.Stmt(data.Block)
			w.Pat(data.CatchParam)
			w.Stmt(data.CatchBody)
			w.Stmt(data.Finally)
		}
	case StmtThrow:
		if data, ok := w.B.Stmts.Throw(id); ok {
			w.Expr(data.Arg)
		}
	case StmtLabeled:
		if data, ok := w.B.Stmts.Labeled(id); ok {
			w.Stmt(data.Body)
		}
	case StmtFnDecl:
		if data, ok := w.B.Stmts.FnDecl(id); ok {
			w.Expr(data.Fn)
		}
	case StmtClassDecl:
		if data, ok := w.B.Stmts.ClassDecl(id); ok {
			w.Expr(data.Class)
		}
	case StmtBreak, StmtContinue, StmtEmpty, StmtDebugger:
		// leaves
	}

	if w.ExitStmt != nil {
		w.ExitStmt(id)
	}
}

// Expr walks one expression subtree.
func (w *Walker) Expr(id ExprID) {
	if id == NoExprID {
		return
	}
	expr := w.B.Exprs.Get(id)
	if expr == nil {
		return
	}
	if w.EnterExpr != nil && !w.EnterExpr(id) {
		return
	}

	switch expr.Kind {
	case ExprMember:
		if data, ok := w.B.Exprs.Member(id); ok {
			w.Expr(data.Obj)
			w.Expr(data.Index)
		}
	case ExprCall:
		if data, ok := w.B.Exprs.Call(id); ok {
			w.Expr(data.Callee)
			for _, a := range data.Args {
				w.Expr(a)
			}
		}
	case ExprNew:
		if data, ok := w.B.Exprs.New(id); ok {
			w.Expr(data.Callee)
			for _, a := range data.Args {
				w.Expr(a)
			}
		}
	case ExprArrow:
		if data, ok := w.B.Exprs.Arrow(id); ok {
			for _, p := range data.Params {
				w.Pat(p)
			}
			if data.ExprBody {
				w.Expr(data.BodyExpr)
			} else {
				w.Stmt(data.Body)
			}
		}
	case ExprFunction:
		if data, ok := w.B.Exprs.Function(id); ok {
			for _, p := range data.Params {
				w.Pat(p)
			}
			w.Stmt(data.Body)
		}
	case ExprClass:
		if data, ok := w.B.Exprs.Class(id); ok {
			w.Expr(data.Heritage)
			for _, m := range data.Members {
				w.Expr(m.KeyExpr)
				w.Expr(m.Value)
				w.Stmt(m.Body)
			}
		}
	case ExprObject:
		if data, ok := w.B.Exprs.Object(id); ok {
			for _, p := range data.Props {
				w.Expr(p.KeyExpr)
				w.Expr(p.Value)
			}
		}
	case ExprArray:
		if data, ok := w.B.Exprs.Array(id); ok {
			for _, e := range data.Elems {
				w.Expr(e)
			}
		}
	case ExprAssign:
		if data, ok := w.B.Exprs.Assign(id); ok {
			w.Expr(data.Target)
			w.Expr(data.Value)
		}
	case ExprBinary:
		if data, ok := w.B.Exprs.Binary(id); ok {
			w.Expr(data.Left)
			w.Expr(data.Right)
		}
	case ExprUnary:
		if data, ok := w.B.Exprs.Unary(id); ok {
			w.Expr(data.Operand)
		}
	case ExprUpdate:
		if data, ok := w.B.Exprs.Update(id); ok {
			w.Expr(data.Operand)
		}
	case ExprCond:
		if data, ok := w.B.Exprs.Cond(id); ok {
			w.Expr(data.Cond)
			w.Expr(data.Then)
			w.Expr(data.Else)
		}
	case ExprSeq:
		if data, ok := w.B.Exprs.Seq(id); ok {
			for _, e := range data.Exprs {
				w.Expr(e)
			}
		}
	case ExprSpread:
		if data, ok := w.B.Exprs.Spread(id); ok {
			w.Expr(data.Arg)
		}
	case ExprParen:
		if data, ok := w.B.Exprs.Paren(id); ok {
			w.Expr(data.Inner)
		}
	case ExprAwait:
		if data, ok := w.B.Exprs.Await(id); ok {
			w.Expr(data.Arg)
		}
	case ExprYield:
		if data, ok := w.B.Exprs.Yield(id); ok {
			w.Expr(data.Arg)
		}
	case ExprTaggedTemplate:
		if data, ok := w.B.Exprs.TaggedTemplate(id); ok {
			w.Expr(data.Tag)
			w.Expr(data.Quasi)
		}
	case ExprIdent, ExprLit, ExprTemplate, ExprRegex:
		// leaves
	}

	if w.ExitExpr != nil {
		w.ExitExpr(id)
	}
}

// Pat walks one binding pattern subtree.
func (w *Walker) Pat(id PatID) {
	if id == NoPatID {
		return
	}
	pat := w.B.Pats.Get(id)
	if pat == nil {
		return
	}
	if w.EnterPat != nil && !w.EnterPat(id) {
		return
	}

	switch pat.Kind {
	case PatObject:
		if data, ok := w.B.Pats.Object(id); ok {
			for _, p := range data.Props {
				w.Expr(p.KeyExpr)
				w.Pat(p.Value)
			}
			w.Pat(data.Rest)
		}
	case PatArray:
		if data, ok := w.B.Pats.Array(id); ok {
			for _, e := range data.Elems {
				w.Pat(e)
			}
			w.Pat(data.Rest)
		}
	case PatAssign:
		if data, ok := w.B.Pats.Assign(id); ok {
			w.Pat(data.Pat)
			w.Expr(data.Default)
		}
	case PatRest:
		if data, ok := w.B.Pats.Rest(id); ok {
			w.Pat(data.Arg)
		}
	case PatIdent:
		// leaf
	}

	if w.ExitPat != nil {
		w.ExitPat(id)
	}
}
