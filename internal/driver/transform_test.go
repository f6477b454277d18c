package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sodagql/internal/transform"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// modelArtifact builds an artifact table with one model entry rooted at
// the given absolute file path.
func modelArtifact(path string) []byte {
	id := filepath.ToSlash(path) + "::userModel"
	return []byte(`{"` + id + `": {"type": "model", "prebuild": {"typename": "User"}}}`)
}

const modelSource = `import { gql } from "@/graphql-system";
const userModel = gql.model((m) => m.entity({}, f, normalize));
`

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.js"), "const b = 1;\n")
	writeFile(t, filepath.Join(dir, "a.mjs"), "const a = 1;\n")
	writeFile(t, filepath.Join(dir, "sub", "c.cjs"), "const c = 1;\n")
	writeFile(t, filepath.Join(dir, "sub", "d.ts"), "const d = 1;\n")
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "e.js"), "const e = 1;\n")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.mjs"),
		filepath.Join(dir, "b.js"),
		filepath.Join(dir, "sub", "c.cjs"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestTransformPaths(t *testing.T) {
	dir := t.TempDir()
	appJS := filepath.Join(dir, "app.js")
	plainJS := filepath.Join(dir, "plain.js")
	writeFile(t, appJS, modelSource)
	writeFile(t, plainJS, "export const n = 1;\n")

	results, err := TransformPaths(context.Background(), []string{appJS, plainJS}, Options{
		ArtifactJSON: modelArtifact(appJS),
		Config:       transform.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("TransformPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// input order is preserved
	if results[0].Path != appJS || results[1].Path != plainJS {
		t.Fatalf("result order: %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Err != nil {
		t.Fatalf("app.js: %v", results[0].Err)
	}
	if !results[0].Result.Transformed {
		t.Error("app.js should be transformed")
	}
	if !strings.Contains(results[0].Result.OutputCode, "gqlRuntime.model(") {
		t.Errorf("app.js output:\n%s", results[0].Result.OutputCode)
	}
	if results[1].Result.Transformed {
		t.Error("plain.js should pass through")
	}
	if HasErrors(results) {
		t.Error("unexpected errors")
	}
}

func TestTransformPathsRecordsParseFailure(t *testing.T) {
	dir := t.TempDir()
	badJS := filepath.Join(dir, "bad.js")
	writeFile(t, badJS, "const = ;;;{\n")

	results, err := TransformPaths(context.Background(), []string{badJS}, Options{
		ArtifactJSON: []byte("{}"),
		Config:       transform.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("TransformPaths: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("expected a per-file error")
	}
	if !HasErrors(results) {
		t.Error("HasErrors should report the failure")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("sodagql-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	appJS := filepath.Join(dir, "app.js")
	writeFile(t, appJS, modelSource)
	opts := Options{
		ArtifactJSON: modelArtifact(appJS),
		Config:       transform.DefaultConfig(),
		Cache:        cache,
	}

	first, err := TransformPaths(context.Background(), []string{appJS}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Cached {
		t.Error("first run should miss the cache")
	}

	second, err := TransformPaths(context.Background(), []string{appJS}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].Cached {
		t.Error("second run should hit the cache")
	}
	if second[0].Result.OutputCode != first[0].Result.OutputCode {
		t.Error("cached output differs")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	cfg := transform.DefaultConfig()
	base := CacheKey([]byte("{}"), cfg, []byte("src"))

	if CacheKey([]byte("{}"), cfg, []byte("src2")) == base {
		t.Error("key ignores source changes")
	}
	if CacheKey([]byte(`{"a":1}`), cfg, []byte("src")) == base {
		t.Error("key ignores artifact changes")
	}
	cjs := cfg
	cjs.IsCjs = true
	if CacheKey([]byte("{}"), cjs, []byte("src")) == base {
		t.Error("key ignores config changes")
	}
}

func TestOutputPath(t *testing.T) {
	root := filepath.Join("work", "src")
	out := filepath.Join("work", "dist")

	got := OutputPath(root, out, filepath.Join(root, "sub", "a.js"))
	want := filepath.Join(out, "sub", "a.js")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	got = OutputPath(root, out, filepath.Join("elsewhere", "b.js"))
	want = filepath.Join(out, "b.js")
	if got != want {
		t.Errorf("outside root = %q, want %q", got, want)
	}
}
