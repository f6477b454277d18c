package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is a located and parsed sodagql.toml.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package   packageSection   `toml:"package"`
	Artifact  artifactSection  `toml:"artifact"`
	Transform transformSection `toml:"transform"`
}

type packageSection struct {
	Name string `toml:"name"`
}

type artifactSection struct {
	Path string `toml:"path"`
}

type transformSection struct {
	Aliases    []string `toml:"aliases"`
	Cjs        bool     `toml:"cjs"`
	SourceMap  bool     `toml:"source-map"`
	SystemFile string   `toml:"system-file"`
	Inject     []string `toml:"inject"`
	OutDir     string   `toml:"out-dir"`
}

// findSodagqlToml walks from startDir toward the filesystem root looking
// for a sodagql.toml.
func findSodagqlToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sodagql.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findSodagqlToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("artifact") || strings.TrimSpace(cfg.Artifact.Path) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [artifact].path", path)
	}
	return cfg, nil
}

// artifactPath resolves the manifest's artifact path against its root.
func (m *projectManifest) artifactPath() string {
	p := filepath.FromSlash(m.Config.Artifact.Path)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
