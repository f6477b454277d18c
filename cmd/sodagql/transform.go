package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sodagql/internal/driver"
	"sodagql/internal/transform"
)

var (
	transformArtifact   string
	transformConfigPath string
	transformOutDir     string
	transformStdout     bool
	transformSourceMap  bool
	transformCjs        bool
	transformAliases    []string
	transformSystemFile string
	transformInject     []string
	transformJobs       int
	transformCache      bool
	transformFormat     string
)

func init() {
	f := transformCmd.Flags()
	f.StringVar(&transformArtifact, "artifact", "", "path to the builder artifact JSON")
	f.StringVar(&transformConfigPath, "config", "", "path to a transform config JSON (wire shape)")
	f.StringVar(&transformOutDir, "out-dir", "", "directory for transformed output (default dist)")
	f.BoolVar(&transformStdout, "stdout", false, "print transformed code to stdout instead of writing files")
	f.BoolVar(&transformSourceMap, "source-map", false, "emit source maps next to outputs")
	f.BoolVar(&transformCjs, "cjs", false, "emit CommonJS runtime wiring")
	f.StringSliceVar(&transformAliases, "alias", nil, "graphql-system import alias (repeatable)")
	f.StringVar(&transformSystemFile, "system-file", "", "path of the graphql-system module to stub out")
	f.StringSliceVar(&transformInject, "inject", nil, "path of an inject module to stub out (repeatable)")
	f.IntVar(&transformJobs, "jobs", 0, "worker parallelism (0 = GOMAXPROCS)")
	f.BoolVar(&transformCache, "cache", false, "reuse results for unchanged inputs via the disk cache")
	f.StringVar(&transformFormat, "format", "text", "diagnostics format (text|json)")
}

var transformCmd = &cobra.Command{
	Use:   "transform [paths...]",
	Short: "Rewrite gql builder calls using the prebuilt artifact",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTransformCmd,
}

func runTransformCmd(cmd *cobra.Command, args []string) error {
	colorize := useColor(cmd)

	manifest, hasManifest, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	cfg, outDir, artifactPath, err := resolveTransformConfig(cmd, manifest, hasManifest)
	if err != nil {
		return err
	}
	if artifactPath == "" {
		return fmt.Errorf("no artifact: pass --artifact or add [artifact].path to sodagql.toml")
	}
	artifactJSON, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	root, paths, err := collectInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .js/.mjs/.cjs inputs under %v", args)
	}

	opts := driver.Options{
		ArtifactJSON: artifactJSON,
		Config:       cfg,
		Jobs:         transformJobs,
	}
	if transformCache {
		cache, err := driver.OpenDiskCache("sodagql")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}

	results, err := driver.TransformPaths(cmd.Context(), paths, opts)
	if err != nil {
		return err
	}

	if transformStdout {
		for _, r := range results {
			if r.Result != nil {
				fmt.Fprint(cmd.OutOrStdout(), r.Result.OutputCode)
			}
		}
	} else {
		if err := writeOutputs(root, outDir, results); err != nil {
			return err
		}
	}

	switch transformFormat {
	case "json":
		if err := renderResultsJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	case "text":
		renderFileResults(cmd.ErrOrStderr(), results)
		if !quiet(cmd) {
			renderSummary(cmd.ErrOrStderr(), results, colorize)
		}
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", transformFormat)
	}

	if driver.HasErrors(results) {
		return fmt.Errorf("transform finished with errors")
	}
	return nil
}

// resolveTransformConfig layers the manifest under the explicit flags.
func resolveTransformConfig(cmd *cobra.Command, manifest *projectManifest, hasManifest bool) (transform.Config, string, string, error) {
	cfg := transform.DefaultConfig()
	outDir := "dist"
	artifactPath := ""

	if hasManifest {
		t := manifest.Config.Transform
		if len(t.Aliases) > 0 {
			cfg.GraphqlSystemAliases = t.Aliases
		}
		cfg.IsCjs = t.Cjs
		cfg.SourceMap = t.SourceMap
		if t.SystemFile != "" {
			p := t.SystemFile
			cfg.GraphqlSystemPath = &p
		}
		cfg.InjectPaths = t.Inject
		if t.OutDir != "" {
			outDir = t.OutDir
		}
		artifactPath = manifest.artifactPath()
	}

	if transformConfigPath != "" {
		data, err := os.ReadFile(transformConfigPath)
		if err != nil {
			return cfg, "", "", fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, "", "", fmt.Errorf("parse config %s: %w", transformConfigPath, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("alias") {
		cfg.GraphqlSystemAliases = transformAliases
	}
	if flags.Changed("cjs") {
		cfg.IsCjs = transformCjs
	}
	if flags.Changed("source-map") {
		cfg.SourceMap = transformSourceMap
	}
	if flags.Changed("system-file") {
		p := transformSystemFile
		cfg.GraphqlSystemPath = &p
	}
	if flags.Changed("inject") {
		cfg.InjectPaths = transformInject
	}
	if flags.Changed("out-dir") {
		outDir = transformOutDir
	}
	if transformArtifact != "" {
		artifactPath = transformArtifact
	}
	return cfg, outDir, artifactPath, nil
}

// collectInputs expands files and directories into the transform list. The
// root anchors relative output paths: the single directory argument when
// there is one, the current directory otherwise.
func collectInputs(args []string) (string, []string, error) {
	root := "."
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			root = args[0]
		}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return "", nil, err
		}
		if info.IsDir() {
			dirFiles, err := driver.ListSourceFiles(arg)
			if err != nil {
				return "", nil, err
			}
			paths = append(paths, dirFiles...)
			continue
		}
		paths = append(paths, arg)
	}
	return root, paths, nil
}

func writeOutputs(root, outDir string, results []driver.FileResult) error {
	for _, r := range results {
		if r.Err != nil || r.Result == nil {
			continue
		}
		out := driver.OutputPath(root, outDir, r.Path)
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(r.Result.OutputCode), 0o644); err != nil {
			return err
		}
		if r.Result.SourceMap != nil {
			if err := os.WriteFile(out+".map", []byte(*r.Result.SourceMap), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// resultPayload is the --format json shape, one entry per input file.
type resultPayload struct {
	Path        string                  `json:"path"`
	Transformed bool                    `json:"transformed"`
	Cached      bool                    `json:"cached,omitempty"`
	Error       string                  `json:"error,omitempty"`
	Errors      []transform.PluginError `json:"errors,omitempty"`
}

func renderResultsJSON(w io.Writer, results []driver.FileResult) error {
	payload := make([]resultPayload, 0, len(results))
	for _, r := range results {
		entry := resultPayload{Path: r.Path, Cached: r.Cached}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		if r.Result != nil {
			entry.Transformed = r.Result.Transformed
			entry.Errors = r.Result.Errors
		}
		payload = append(payload, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
