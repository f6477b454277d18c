package parser

import (
	"testing"

	"sodagql/internal/ast"
	"sodagql/internal/token"
)

func TestVarDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kw    token.Kind
		decls int
	}{
		{"const", "const x = 1;", token.KwConst, 1},
		{"let_no_init", "let x;", token.KwLet, 1},
		{"var_multi", "var a = 1, b, c = 3;", token.KwVar, 3},
		{"object_destructure", "const { a, b: c } = obj;", token.KwConst, 1},
		{"array_destructure", "const [x, , y] = arr;", token.KwConst, 1},
		{"nested_destructure", "const { a: { b }, ...rest } = obj;", token.KwConst, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			id := firstStmt(t, arenas, file)
			data, ok := arenas.Stmts.VarDecl(id)
			if !ok {
				t.Fatal("expected var declaration")
			}
			if data.Kw != tt.kw {
				t.Errorf("keyword = %v, want %v", data.Kw, tt.kw)
			}
			if len(data.Decls) != tt.decls {
				t.Errorf("declarators = %d, want %d", len(data.Decls), tt.decls)
			}
		})
	}
}

func TestBoundNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"ident", "const x = 1;", []string{"x"}},
		{"object", "const { a, b: c } = obj;", []string{"a", "c"}},
		{"array_with_rest", "const [x, ...rest] = arr;", []string{"x", "rest"}},
		{"defaulted", "const { a = 1 } = obj;", []string{"a"}},
		{"deep", "const { a: { b: [c] } } = obj;", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			id := firstStmt(t, arenas, file)
			data, _ := arenas.Stmts.VarDecl(id)
			names := PatBoundNames(arenas, data.Decls[0].Pat, nil)
			if len(names) != len(tt.want) {
				t.Fatalf("bound names = %d, want %d", len(names), len(tt.want))
			}
			for i, w := range tt.want {
				if got := arenas.Lookup(names[i]); got != w {
					t.Errorf("name %d = %q, want %q", i, got, w)
				}
			}
		})
	}
}

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ast.StmtKind
	}{
		{"if", "if (a) b();", ast.StmtIf},
		{"if_else", "if (a) b(); else c();", ast.StmtIf},
		{"for_classic", "for (let i = 0; i < 10; i++) f(i);", ast.StmtFor},
		{"for_empty_clauses", "for (;;) break;", ast.StmtFor},
		{"for_in", "for (const k in obj) f(k);", ast.StmtForInOf},
		{"for_of", "for (const v of list) f(v);", ast.StmtForInOf},
		{"for_await_of", "async function g() { for await (const v of s) f(v); }", ast.StmtFnDecl},
		{"while", "while (x) f();", ast.StmtWhile},
		{"do_while", "do f(); while (x);", ast.StmtDoWhile},
		{"switch", "switch (x) { case 1: f(); break; default: g(); }", ast.StmtSwitch},
		{"try_catch", "try { f(); } catch (e) { g(e); }", ast.StmtTry},
		{"try_catch_no_param", "try { f(); } catch { g(); }", ast.StmtTry},
		{"try_finally", "try { f(); } finally { g(); }", ast.StmtTry},
		{"throw", "throw new Error(msg);", ast.StmtThrow},
		{"labeled", "outer: for (;;) break outer;", ast.StmtLabeled},
		{"debugger", "debugger;", ast.StmtDebugger},
		{"empty", ";", ast.StmtEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			id := firstStmt(t, arenas, file)
			if got := arenas.Stmts.Get(id).Kind; got != tt.kind {
				t.Errorf("kind = %d, want %d", got, tt.kind)
			}
		})
	}
}

func TestForOfShape(t *testing.T) {
	arenas, file := parseClean(t, "for (const v of list) f(v);")
	id := firstStmt(t, arenas, file)
	data, _ := arenas.Stmts.ForInOf(id)
	if !data.Of {
		t.Error("expected of form")
	}
	if data.Decl == ast.NoStmtID {
		t.Error("expected declaration binding")
	}
	if data.Await {
		t.Error("unexpected await")
	}
}

func TestAutomaticSemicolons(t *testing.T) {
	tests := []struct {
		name  string
		input string
		items int
	}{
		{"newline_separated", "const a = 1\nconst b = 2", 2},
		{"before_close_brace", "function f() { return 1 }", 1},
		{"last_statement", "f()", 1},
		{"return_newline_ends", "function f() {\n  return\n  1\n}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, file := parseClean(t, tt.input)
			if len(file.Items) != tt.items {
				t.Errorf("items = %d, want %d", len(file.Items), tt.items)
			}
		})
	}
}

func TestReturnNewlineRestriction(t *testing.T) {
	// `return\n1` returns nothing; the 1 is its own statement
	arenas, file := parseClean(t, "function f() {\n  return\n  1\n}")
	id := firstStmt(t, arenas, file)
	data, _ := arenas.Stmts.FnDecl(id)
	fn, _ := arenas.Exprs.Function(data.Fn)
	block, _ := arenas.Stmts.Block(fn.Body)
	if len(block.Stmts) != 2 {
		t.Fatalf("body statements = %d, want 2", len(block.Stmts))
	}
	ret, ok := arenas.Stmts.Return(block.Stmts[0])
	if !ok || ret.Arg != ast.NoExprID {
		t.Error("expected bare return")
	}
}

func TestMissingSemicolonDiagnostic(t *testing.T) {
	_, _, bag := parseTestInput(t, "const a = 1 const b = 2")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the missing semicolon")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code.ID() == "SYN2003" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics: %s", diagnosticsSummary(bag))
	}
}

func TestRecoveryContinuesParsing(t *testing.T) {
	// the bad statement is reported but later items still parse
	arenas, file, bag := parseTestInput(t, "const = 1;\nconst ok = 2;")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	var sawOk bool
	for _, itemID := range file.Items {
		data, isStmt := arenas.Items.StmtItem(itemID)
		if !isStmt {
			continue
		}
		if decl, ok := arenas.Stmts.VarDecl(data.Stmt); ok {
			names := PatBoundNames(arenas, decl.Decls[0].Pat, nil)
			for _, n := range names {
				if arenas.Lookup(n) == "ok" {
					sawOk = true
				}
			}
		}
	}
	if !sawOk {
		t.Error("parser did not recover to the following declaration")
	}
}
