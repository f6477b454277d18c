package emit

import (
	"encoding/json"
	"strings"
	"testing"

	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/parser"
	"sodagql/internal/source"
)

type emitFixture struct {
	fs  *source.FileSet
	sf  *source.File
	b   *ast.Builder
	fid ast.FileID
}

func parseFixture(t *testing.T, src string) *emitFixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(src))
	sf := fs.Get(id)
	bag := diag.NewBag(16)
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, sf, b, parser.Options{
		MaxErrors: 16,
		Reporter:  &diag.BagReporter{Bag: bag},
	})
	if bag.HasErrors() {
		t.Fatalf("parse errors in fixture: %d", bag.Len())
	}
	return &emitFixture{fs: fs, sf: sf, b: b, fid: res.File}
}

func (f *emitFixture) emit(t *testing.T, opts Options) Result {
	t.Helper()
	res, err := EmitFile(f.sf, f.b, f.fid, opts)
	if err != nil {
		t.Fatalf("EmitFile: %v", err)
	}
	return res
}

func (f *emitFixture) file() *ast.File {
	return f.b.Files.Get(f.fid)
}

func TestPassthroughIsVerbatim(t *testing.T) {
	src := "import { gql } from \"@app/graphql\";\n\n// leading comment\nconst user = gql.model(() => modelBuilder({ name: \"User\" }));\n\nexport { user };\n"
	fx := parseFixture(t, src)
	res := fx.emit(t, Options{})
	if string(res.Code) != src {
		t.Fatalf("output differs from input:\n%s", res.Code)
	}
	if res.SourceMap != nil {
		t.Fatalf("unexpected source map")
	}
}

func TestRemovedItemSkipsLine(t *testing.T) {
	src := "import { gql } from \"@app/graphql\";\nconst n = 1;\n"
	fx := parseFixture(t, src)
	item := fx.b.Items.Get(fx.file().Items[0])
	item.Removed = true

	res := fx.emit(t, Options{})
	want := "const n = 1;\n"
	if string(res.Code) != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestOverwrittenExprIsSpliced(t *testing.T) {
	src := "const a = makeThing(1, 2);\nconst b = a;\n"
	fx := parseFixture(t, src)

	// find the call and overwrite it with runtime.load("x")
	stmtData, ok := fx.b.Items.StmtItem(fx.file().Items[0])
	if !ok {
		t.Fatalf("expected statement item")
	}
	decl, ok := fx.b.Stmts.VarDecl(stmtData.Stmt)
	if !ok {
		t.Fatalf("expected var decl")
	}
	callID := decl.Decls[0].Init

	b := fx.b
	obj := b.Exprs.NewIdent(source.Span{}, b.Intern("runtime"))
	callee := b.Exprs.NewMember(source.Span{}, obj, b.Intern("load"), false)
	arg := b.Exprs.NewLiteral(source.Span{}, ast.ExprLitString, b.Intern(`"x"`), b.Intern("x"))
	repl := b.Exprs.NewCall(source.Span{}, callee, []ast.ExprID{arg}, false)
	b.Exprs.Overwrite(callID, repl)

	res := fx.emit(t, Options{})
	want := "const a = runtime.load(\"x\");\nconst b = a;\n"
	if string(res.Code) != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestSynthImportIsRendered(t *testing.T) {
	src := "const n = 1;\n"
	fx := parseFixture(t, src)
	b := fx.b

	imp := b.Items.NewImport(source.Span{}, ast.ImportItemData{
		Module: b.Intern("@soda-gql/runtime"),
		Named:  []ast.ImportSpec{{Name: b.Intern("gqlRuntime")}},
	})
	b.Items.Get(imp).Synth = true
	file := fx.file()
	file.Items = append([]ast.ItemID{imp}, file.Items...)

	res := fx.emit(t, Options{})
	want := "import { gqlRuntime } from \"@soda-gql/runtime\";\nconst n = 1;\n"
	if string(res.Code) != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestSynthStmtAfterImports(t *testing.T) {
	src := "import { a } from \"./a\";\nconst n = 1;\n"
	fx := parseFixture(t, src)
	b := fx.b

	callee := b.Exprs.NewMember(source.Span{},
		b.Exprs.NewIdent(source.Span{}, b.Intern("gqlRuntime")),
		b.Intern("registerOperation"), false)
	call := b.Exprs.NewCall(source.Span{}, callee, nil, false)
	stmt := b.Stmts.NewExprStmt(source.Span{}, call)
	b.Stmts.Get(stmt).Synth = true
	item := b.Items.NewStmtItem(source.Span{}, stmt)
	b.Items.Get(item).Synth = true

	file := fx.file()
	items := make([]ast.ItemID, 0, len(file.Items)+1)
	items = append(items, file.Items[0], item)
	items = append(items, file.Items[1:]...)
	file.Items = items

	res := fx.emit(t, Options{})
	want := "import { a } from \"./a\";\ngqlRuntime.registerOperation();\nconst n = 1;\n"
	if string(res.Code) != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestSynthVarDeclRendering(t *testing.T) {
	src := "const x = 1;\n"
	fx := parseFixture(t, src)
	b := fx.b

	stmtData, _ := b.Items.StmtItem(fx.file().Items[0])
	decl, _ := b.Stmts.VarDecl(stmtData.Stmt)

	// keep the original declarator and mark the statement synthesized; the
	// printer must re-render the keyword but copy the untouched parts
	b.Stmts.Get(stmtData.Stmt).Synth = true
	b.Items.Get(fx.file().Items[0]).Synth = true
	_ = decl

	res := fx.emit(t, Options{})
	want := "const x = 1;\n"
	if string(res.Code) != want {
		t.Fatalf("got %q, want %q", res.Code, want)
	}
}

func TestSourceMapShape(t *testing.T) {
	src := "const a = 1;\nconst b = makeThing();\n"
	fx := parseFixture(t, src)

	stmtData, _ := fx.b.Items.StmtItem(fx.file().Items[1])
	decl, _ := fx.b.Stmts.VarDecl(stmtData.Stmt)
	repl := fx.b.Exprs.NewIdent(source.Span{}, fx.b.Intern("cached"))
	fx.b.Exprs.Overwrite(decl.Decls[0].Init, repl)

	res := fx.emit(t, Options{SourceMap: true})
	if res.SourceMap == nil {
		t.Fatalf("expected a source map")
	}

	var doc struct {
		Version        int      `json:"version"`
		Sources        []string `json:"sources"`
		SourcesContent []string `json:"sourcesContent"`
		Mappings       string   `json:"mappings"`
	}
	if err := json.Unmarshal(res.SourceMap, &doc); err != nil {
		t.Fatalf("invalid source map JSON: %v", err)
	}
	if doc.Version != 3 {
		t.Errorf("version = %d, want 3", doc.Version)
	}
	if len(doc.Sources) != 1 || doc.Sources[0] != "test.js" {
		t.Errorf("sources = %v", doc.Sources)
	}
	if len(doc.SourcesContent) != 1 || doc.SourcesContent[0] != src {
		t.Errorf("sourcesContent not inlined")
	}
	if strings.Count(doc.Mappings, ";") < 1 {
		t.Errorf("mappings %q covers fewer than two lines", doc.Mappings)
	}
}

func TestVLQEncoding(t *testing.T) {
	cases := []struct {
		v    int32
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{15, "e"},
		{16, "gB"},
		{-16, "hB"},
		{511, "+f"},
		{512, "ggB"},
	}
	for _, tc := range cases {
		var sb strings.Builder
		writeVLQ(&sb, tc.v)
		if sb.String() != tc.want {
			t.Errorf("writeVLQ(%d) = %q, want %q", tc.v, sb.String(), tc.want)
		}
	}
}

func TestMappingsEncodeDeltas(t *testing.T) {
	m := newMappings()
	m.add(segment{genLine: 0, genCol: 0, srcLine: 0, srcCol: 0})
	m.add(segment{genLine: 0, genCol: 4, srcLine: 0, srcCol: 4})
	m.add(segment{genLine: 1, genCol: 0, srcLine: 1, srcCol: 0})

	// AAAA: first segment all zeros; IAAI: +4 gen col, +4 src col;
	// AACF would be wrong since gen col resets per line
	got := m.encode()
	want := "AAAA,IAAI;AACJ"
	if got != want {
		t.Fatalf("encode() = %q, want %q", got, want)
	}
}
