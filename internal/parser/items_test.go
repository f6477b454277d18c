package parser

import (
	"testing"

	"sodagql/internal/ast"
	"sodagql/internal/source"
)

func TestImportForms(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		module    string
		def       string
		namespace string
		named     int
	}{
		{"bare", `import "./side-effect";`, "./side-effect", "", "", 0},
		{"default", `import gql from "@soda-gql/core";`, "@soda-gql/core", "gql", "", 0},
		{"namespace", `import * as core from "@soda-gql/core";`, "@soda-gql/core", "", "core", 0},
		{"named", `import { model, querySlice } from "@soda-gql/core";`, "@soda-gql/core", "", "", 2},
		{"named_alias", `import { model as m } from "@soda-gql/core";`, "@soda-gql/core", "", "", 1},
		{"default_and_named", `import gql, { model } from "@soda-gql/core";`, "@soda-gql/core", "gql", "", 1},
		{"default_and_namespace", `import gql, * as core from "@soda-gql/core";`, "@soda-gql/core", "gql", "core", 0},
		{"string_named", `import { "weird name" as ok } from "./mod";`, "./mod", "", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			if len(file.Items) != 1 {
				t.Fatalf("items = %d, want 1", len(file.Items))
			}
			data, ok := arenas.Items.Import(file.Items[0])
			if !ok {
				t.Fatal("expected import item")
			}
			if got := arenas.Lookup(data.Module); got != tt.module {
				t.Errorf("module = %q, want %q", got, tt.module)
			}
			if got := arenas.Lookup(data.Default); got != tt.def {
				t.Errorf("default = %q, want %q", got, tt.def)
			}
			if got := arenas.Lookup(data.Namespace); got != tt.namespace {
				t.Errorf("namespace = %q, want %q", got, tt.namespace)
			}
			if len(data.Named) != tt.named {
				t.Errorf("named = %d, want %d", len(data.Named), tt.named)
			}
		})
	}
}

func TestImportExpressionNotItem(t *testing.T) {
	// dynamic import and import.meta stay expressions
	for _, src := range []string{`import("./lazy");`, "import.meta.url;"} {
		arenas, file := parseClean(t, src)
		if len(file.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(file.Items))
		}
		if arenas.Items.Get(file.Items[0]).Kind != ast.ItemStmt {
			t.Errorf("%q parsed as a declaration", src)
		}
	}
}

func TestExportNamed(t *testing.T) {
	arenas, file := parseClean(t, `export { userModel, postModel as post };`)
	data, ok := arenas.Items.ExportNamed(file.Items[0])
	if !ok {
		t.Fatal("expected named export")
	}
	if len(data.Specs) != 2 {
		t.Fatalf("specs = %d, want 2", len(data.Specs))
	}
	if arenas.Lookup(data.Specs[1].Name) != "postModel" || arenas.Lookup(data.Specs[1].Alias) != "post" {
		t.Error("alias not recorded")
	}
	if data.Module != source.NoStringID {
		t.Error("local export should have no module")
	}
}

func TestExportReexport(t *testing.T) {
	arenas, file := parseClean(t, `export { model } from "./models";`)
	data, _ := arenas.Items.ExportNamed(file.Items[0])
	if arenas.Lookup(data.Module) != "./models" {
		t.Errorf("module = %q", arenas.Lookup(data.Module))
	}
}

func TestExportAll(t *testing.T) {
	tests := []struct {
		name  string
		input string
		alias string
	}{
		{"star", `export * from "./models";`, ""},
		{"star_as", `export * as models from "./models";`, "models"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			data, ok := arenas.Items.ExportAll(file.Items[0])
			if !ok {
				t.Fatal("expected export *")
			}
			if arenas.Lookup(data.Alias) != tt.alias {
				t.Errorf("alias = %q, want %q", arenas.Lookup(data.Alias), tt.alias)
			}
		})
	}
}

func TestExportDecl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ast.StmtKind
	}{
		{"const", `export const userModel = gql.model(() => f());`, ast.StmtVarDecl},
		{"let", `export let counter = 0;`, ast.StmtVarDecl},
		{"function", `export function run() {}`, ast.StmtFnDecl},
		{"async_function", `export async function run() {}`, ast.StmtFnDecl},
		{"class", `export class Repo {}`, ast.StmtClassDecl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file := parseClean(t, tt.input)
			data, ok := arenas.Items.ExportDecl(file.Items[0])
			if !ok {
				t.Fatal("expected export declaration")
			}
			if got := arenas.Stmts.Get(data.Decl).Kind; got != tt.kind {
				t.Errorf("decl kind = %d, want %d", got, tt.kind)
			}
		})
	}
}

func TestExportDefault(t *testing.T) {
	t.Run("expression", func(t *testing.T) {
		arenas, file := parseClean(t, `export default gql.model(() => f());`)
		data, ok := arenas.Items.ExportDefault(file.Items[0])
		if !ok {
			t.Fatal("expected default export")
		}
		if data.Expr == ast.NoExprID || data.Decl != ast.NoStmtID {
			t.Error("expected expression form")
		}
	})
	t.Run("named_function", func(t *testing.T) {
		arenas, file := parseClean(t, `export default function main() {}`)
		data, _ := arenas.Items.ExportDefault(file.Items[0])
		if data.Decl == ast.NoStmtID {
			t.Fatal("expected declaration form to keep the binding")
		}
		fnData, _ := arenas.Stmts.FnDecl(data.Decl)
		fn, _ := arenas.Exprs.Function(fnData.Fn)
		if arenas.Lookup(fn.Name) != "main" {
			t.Errorf("name = %q, want %q", arenas.Lookup(fn.Name), "main")
		}
	})
}

func TestMixedModule(t *testing.T) {
	src := `import gql from "@soda-gql/core";
import { other } from "./other";

const helper = 1;

export const userModel = gql.model(() => def("User"));
export default userModel;
`
	arenas, file := parseClean(t, src)
	if len(file.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(file.Items))
	}
	kinds := []ast.ItemKind{ast.ItemImport, ast.ItemImport, ast.ItemStmt, ast.ItemExportDecl, ast.ItemExportDefault}
	for i, want := range kinds {
		if got := arenas.Items.Get(file.Items[i]).Kind; got != want {
			t.Errorf("item %d kind = %d, want %d", i, got, want)
		}
	}
}
