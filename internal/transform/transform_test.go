package transform

import (
	"encoding/json"
	"strings"
	"testing"
)

const testArtifact = `{
	"/src/app.js::userModel": {
		"type": "model",
		"prebuild": { "typename": "User" }
	},
	"/src/app.js::userSlice": {
		"type": "slice",
		"prebuild": { "operationType": "query" }
	},
	"/src/app.js::getUser": {
		"type": "operation",
		"prebuild": {
			"operationName": "GetUser",
			"operationType": "query",
			"document": "query GetUser { user { id } }"
		}
	},
	"/src/app.js::quickPing": {
		"type": "inlineOperation",
		"prebuild": {
			"operationName": "QuickPing",
			"document": "query QuickPing { ping }"
		}
	}
}`

func runTransform(t *testing.T, src, path string, cfg Config) *Result {
	t.Helper()
	tr, err := NewTransformer([]byte(testArtifact), cfg)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}
	res, err := tr.Transform(src, path)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return res
}

func strPtr(s string) *string { return &s }

func TestModelRewrite(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
import { helpers } from "./helpers";
const userModel = gql.model((m) => m.entity({}, helpers.fields, normalize));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if !res.Transformed {
		t.Fatal("expected a transformation")
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `import { helpers } from "./helpers";
import { gqlRuntime } from "@soda-gql/runtime";
const userModel = gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize: normalize } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestSliceRewrite(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
const userSlice = gql.slice((s) => s.fields({}, shape, buildProjection));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `import { gqlRuntime } from "@soda-gql/runtime";
const userSlice = gqlRuntime.slice({ prebuild: { operationType: "query" }, runtime: { buildProjection: buildProjection } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestComposedOperationRegistration(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
import { userSlice } from "./slices";
export const getUser = gql.composedOperation((op) => op.build(deps, getSlices));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `import { userSlice } from "./slices";
import { gqlRuntime } from "@soda-gql/runtime";
gqlRuntime.composedOperation({ prebuild: JSON.parse("{\"operationName\":\"GetUser\",\"operationType\":\"query\",\"document\":\"query GetUser { user { id } }\"}"), runtime: { getSlices: getSlices } });
export const getUser = gqlRuntime.getComposedOperation("GetUser");
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestInlineOperationRegistration(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
import { track } from "./track";
export const quickPing = gql.inlineOperation(() => ping());
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `import { track } from "./track";
import { gqlRuntime } from "@soda-gql/runtime";
gqlRuntime.inlineOperation({ prebuild: JSON.parse("{\"operationName\":\"QuickPing\",\"document\":\"query QuickPing { ping }\"}"), runtime: {} });
export const quickPing = gqlRuntime.getInlineOperation("QuickPing");
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestRegistrationPrecedesLookupWithoutSurvivingImports(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
const getUser = gql.composedOperation((op) => op.build(deps, getSlices));
console.log(getUser);
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `import { gqlRuntime } from "@soda-gql/runtime";
gqlRuntime.composedOperation({ prebuild: JSON.parse("{\"operationName\":\"GetUser\",\"operationType\":\"query\",\"document\":\"query GetUser { user { id } }\"}"), runtime: { getSlices: getSlices } });
const getUser = gqlRuntime.getComposedOperation("GetUser");
console.log(getUser);
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
	reg := strings.Index(res.OutputCode, "gqlRuntime.composedOperation(")
	ref := strings.Index(res.OutputCode, `getComposedOperation("GetUser")`)
	if reg < 0 || ref < 0 || reg > ref {
		t.Errorf("registration must precede its lookup, got offsets %d and %d", reg, ref)
	}
}

func TestCjsRewrite(t *testing.T) {
	src := `const system = require("@/graphql-system");
const helpers = require("./helpers");
const userModel = system.gql.model((m) => m.entity({}, helpers.fields, normalize));
`
	cfg := DefaultConfig()
	cfg.IsCjs = true
	res := runTransform(t, src, "/src/app.js", cfg)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `const helpers = require("./helpers");
const __soda_gql_runtime = require("@soda-gql/runtime");
const userModel = __soda_gql_runtime.gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize: normalize } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestCjsPartialRequireFilter(t *testing.T) {
	src := `const gqlSys = require("@/graphql-system"), helpers = require("./helpers");
const userModel = gqlSys.gql.model((m) => m.entity({}, helpers.fields, normalize));
`
	cfg := DefaultConfig()
	cfg.IsCjs = true
	res := runTransform(t, src, "/src/app.js", cfg)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	want := `const helpers = require("./helpers");
const __soda_gql_runtime = require("@soda-gql/runtime");
const userModel = __soda_gql_runtime.gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize: normalize } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestCjsInteropRequireIsStripped(t *testing.T) {
	src := `const system = __importDefault(require("@/graphql-system"));
const userModel = system.gql.model((m) => m.entity({}, f, normalize));
`
	cfg := DefaultConfig()
	cfg.IsCjs = true
	res := runTransform(t, src, "/src/app.js", cfg)
	if strings.Contains(res.OutputCode, "@/graphql-system") {
		t.Errorf("interop require survived:\n%s", res.OutputCode)
	}
	if !strings.Contains(res.OutputCode, `const __soda_gql_runtime = require("@soda-gql/runtime");`) {
		t.Errorf("runtime require missing:\n%s", res.OutputCode)
	}
}

func TestRuntimeImportMerge(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
import { other } from "@soda-gql/runtime";
const userModel = gql.model((m) => m.entity({}, f, normalize));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	want := `import { other, gqlRuntime } from "@soda-gql/runtime";
const userModel = gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize: normalize } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestRuntimeImportAlreadyPresent(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
import { gqlRuntime } from "@soda-gql/runtime";
const userModel = gql.model((m) => m.entity({}, f, normalize));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	want := `import { gqlRuntime } from "@soda-gql/runtime";
const userModel = gqlRuntime.model({ prebuild: { typename: "User" }, runtime: { normalize: normalize } });
`
	if res.OutputCode != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.OutputCode, want)
	}
}

func TestAliasSubpathBoundary(t *testing.T) {
	src := `import { gql } from "@app/gql";
import { widget } from "@app/gqlx";
import { scalar } from "@app/gql/scalars";
const userModel = gql.model((m) => m.entity({}, widget, normalize));
`
	cfg := DefaultConfig()
	cfg.GraphqlSystemAliases = []string{"@app/gql"}
	res := runTransform(t, src, "/src/app.js", cfg)
	if strings.Contains(res.OutputCode, "@app/gql\"") || strings.Contains(res.OutputCode, "@app/gql/scalars") {
		t.Errorf("system import survived:\n%s", res.OutputCode)
	}
	if !strings.Contains(res.OutputCode, `import { widget } from "@app/gqlx";`) {
		t.Errorf("sibling import was stripped:\n%s", res.OutputCode)
	}
}

func TestPassthroughWithoutBuilderCalls(t *testing.T) {
	src := `import { gql } from "@/graphql-system";

export function plain() {
  return gql.version;
}
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if res.Transformed {
		t.Error("expected no transformation")
	}
	if res.OutputCode != src {
		t.Errorf("output differs from input:\n%s", res.OutputCode)
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
	if res.SourceMap != nil {
		t.Error("unexpected source map on passthrough")
	}
}

func TestDeterministicOutput(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
export const getUser = gql.composedOperation((op) => op.build(deps, getSlices));
const userModel = gql.model((m) => m.entity({}, f, normalize));
`
	first := runTransform(t, src, "/src/app.js", DefaultConfig())
	second := runTransform(t, src, "/src/app.js", DefaultConfig())
	if first.OutputCode != second.OutputCode {
		t.Errorf("outputs differ:\n%s\n---\n%s", first.OutputCode, second.OutputCode)
	}
}

func TestArtifactNotFound(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
const unknownThing = gql.model((m) => m.entity({}, f, n));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if res.Transformed {
		t.Error("expected no transformation")
	}
	if res.OutputCode != src {
		t.Errorf("output differs from input:\n%s", res.OutputCode)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	e := res.Errors[0]
	if e.Code != CodeArtifactNotFound || e.Stage != StageAnalysis {
		t.Errorf("error = %+v", e)
	}
	if e.CanonicalID != "/src/app.js::unknownThing" {
		t.Errorf("canonical id = %q", e.CanonicalID)
	}
	wantMsg := "No artifact found for canonical ID '/src/app.js::unknownThing' in '/src/app.js'"
	if e.Message != wantMsg {
		t.Errorf("message = %q, want %q", e.Message, wantMsg)
	}
}

func TestMissingBuilderArg(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
const userModel = gql.model((m) => m.entity({}, partial));
`
	res := runTransform(t, src, "/src/app.js", DefaultConfig())
	if !res.Transformed {
		t.Fatal("analysis resolved the call, result should count as transformed")
	}
	// the call site itself stays untouched
	if !strings.Contains(res.OutputCode, "gql.model((m) => m.entity({}, partial));") {
		t.Errorf("call site was mutated:\n%s", res.OutputCode)
	}
	if strings.Contains(res.OutputCode, "@soda-gql/runtime") {
		t.Errorf("runtime import added for a failed rewrite:\n%s", res.OutputCode)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	e := res.Errors[0]
	if e.Code != CodeMissingBuilderArg || e.Stage != StageTransform {
		t.Errorf("error = %+v", e)
	}
	if e.BuilderType != "model" || e.ArgName != "builder callback" {
		t.Errorf("error = %+v", e)
	}
	wantMsg := "Missing required builder argument 'builder callback' for model in '/src/app.js'"
	if e.Message != wantMsg {
		t.Errorf("message = %q, want %q", e.Message, wantMsg)
	}
}

func TestStubPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GraphqlSystemPath = strPtr("/src/graphql-system/index.js")
	cfg.InjectPaths = []string{"/src/inject/scalars.js"}

	for _, path := range []string{
		"/src/graphql-system/index.js",
		"/src/inject/scalars.js",
		`\src\inject\scalars.js`,
	} {
		res := runTransform(t, "definitely not parseable {{{", path, cfg)
		if res.OutputCode != "export {};\n" {
			t.Errorf("%s: output = %q", path, res.OutputCode)
		}
		if !res.Transformed {
			t.Errorf("%s: expected transformed stub", path)
		}
		if len(res.Errors) != 0 {
			t.Errorf("%s: unexpected errors: %v", path, res.Errors)
		}
	}
}

func TestParseFailureIsFatal(t *testing.T) {
	tr, err := NewTransformer([]byte(testArtifact), DefaultConfig())
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}
	if _, err := tr.Transform("const = ;;;{", "/src/app.js"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestOneShotTransform(t *testing.T) {
	res, err := Transform(Input{
		SourceCode: `import { gql } from "@/graphql-system";
const userModel = gql.model((m) => m.entity({}, f, normalize));
`,
		SourcePath:   "/src/app.js",
		ArtifactJSON: testArtifact,
		Config:       DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !res.Transformed {
		t.Fatal("expected a transformation")
	}
	if !strings.Contains(res.OutputCode, "gqlRuntime.model(") {
		t.Errorf("output:\n%s", res.OutputCode)
	}
}

func TestSourceMapOutput(t *testing.T) {
	src := `import { gql } from "@/graphql-system";
const userModel = gql.model((m) => m.entity({}, f, normalize));
`
	cfg := DefaultConfig()
	cfg.SourceMap = true
	res := runTransform(t, src, "/src/app.js", cfg)
	if res.SourceMap == nil {
		t.Fatal("expected a source map")
	}
	var m struct {
		Version  int      `json:"version"`
		Sources  []string `json:"sources"`
		Mappings string   `json:"mappings"`
	}
	if err := json.Unmarshal([]byte(*res.SourceMap), &m); err != nil {
		t.Fatalf("invalid source map JSON: %v", err)
	}
	if m.Version != 3 {
		t.Errorf("version = %d", m.Version)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "/src/app.js" {
		t.Errorf("sources = %v", m.Sources)
	}
	if m.Mappings == "" {
		t.Error("empty mappings")
	}
}
