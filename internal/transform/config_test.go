package transform

import (
	"encoding/json"
	"testing"
)

func TestSystemAliasMatching(t *testing.T) {
	cfg := Config{GraphqlSystemAliases: []string{"@/graphql-system", "@app/gql"}}

	cases := []struct {
		specifier string
		want      bool
	}{
		{"@/graphql-system", true},
		{"@/graphql-system/models", true},
		{"@app/gql", true},
		{"@app/gql/scalars", true},
		{"@app/gqlx", false},
		{"@app/gql-tools", false},
		{"@soda-gql/runtime", false},
	}
	for _, c := range cases {
		if got := cfg.isSystemAlias(c.specifier); got != c.want {
			t.Errorf("isSystemAlias(%q) = %v, want %v", c.specifier, got, c.want)
		}
	}
}

func TestStubPathNormalization(t *testing.T) {
	cfg := Config{
		GraphqlSystemPath: strPtr(`C:\work\src\graphql-system\index.ts`),
		InjectPaths:       []string{"/src/inject/scalars.ts"},
	}

	if !cfg.isStubPath("C:/work/src/graphql-system/index.ts") {
		t.Error("forward-slash spelling should match a backslash config path")
	}
	if !cfg.isStubPath(`\src\inject\scalars.ts`) {
		t.Error("backslash spelling should match a forward-slash inject path")
	}
	if cfg.isStubPath("/src/other.ts") {
		t.Error("unrelated path matched")
	}
}

func TestConfigWireShape(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{
		"graphqlSystemAliases": ["@/graphql-system"],
		"isCjs": true,
		"graphqlSystemPath": "/src/gql/index.ts",
		"injectPaths": ["/src/gql/scalars.ts"],
		"sourceMap": true
	}`), &cfg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cfg.IsCjs || !cfg.SourceMap {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.GraphqlSystemPath == nil || *cfg.GraphqlSystemPath != "/src/gql/index.ts" {
		t.Errorf("system path = %v", cfg.GraphqlSystemPath)
	}

	// omitempty keeps the optional fields off the wire when unset
	out, err := json.Marshal(Config{GraphqlSystemAliases: []string{"@/graphql-system"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, absent := range []string{"graphqlSystemPath", "injectPaths"} {
		if jsonHasKey(out, absent) {
			t.Errorf("marshaled config contains %q: %s", absent, out)
		}
	}
}

func jsonHasKey(data []byte, key string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}
