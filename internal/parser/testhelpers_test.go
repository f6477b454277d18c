package parser

import (
	"fmt"
	"strings"
	"testing"

	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseTestInput(t *testing.T, src string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(src))
	bag := diag.NewBag(64)
	arenas := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, fs.Get(id), arenas, Options{
		MaxErrors: 64,
		Reporter:  &diag.BagReporter{Bag: bag},
	})
	return arenas, arenas.Files.Get(res.File), bag
}

// parseClean parses input that must produce zero diagnostics.
func parseClean(t *testing.T, src string) (*ast.Builder, *ast.File) {
	t.Helper()
	arenas, file, bag := parseTestInput(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return arenas, file
}

// firstStmt unwraps a single top-level statement item.
func firstStmt(t *testing.T, arenas *ast.Builder, file *ast.File) ast.StmtID {
	t.Helper()
	if len(file.Items) == 0 {
		t.Fatal("expected at least one item")
	}
	data, ok := arenas.Items.StmtItem(file.Items[0])
	if !ok {
		t.Fatalf("expected a statement item, got kind %d", arenas.Items.Get(file.Items[0]).Kind)
	}
	return data.Stmt
}

// firstExpr unwraps `<expr>;` at the top level.
func firstExpr(t *testing.T, arenas *ast.Builder, file *ast.File) ast.ExprID {
	t.Helper()
	id := firstStmt(t, arenas, file)
	data, ok := arenas.Stmts.ExprStmt(id)
	if !ok {
		t.Fatalf("expected expression statement, got kind %d", arenas.Stmts.Get(id).Kind)
	}
	return data.Expr
}

// firstVarInit unwraps `const x = <expr>;` at the top level.
func firstVarInit(t *testing.T, arenas *ast.Builder, file *ast.File) ast.ExprID {
	t.Helper()
	id := firstStmt(t, arenas, file)
	data, ok := arenas.Stmts.VarDecl(id)
	if !ok {
		t.Fatalf("expected var declaration, got kind %d", arenas.Stmts.Get(id).Kind)
	}
	if len(data.Decls) == 0 || data.Decls[0].Init == ast.NoExprID {
		t.Fatal("expected an initializer")
	}
	return data.Decls[0].Init
}
