package transform

import "strings"

// Config controls a transformation run. The JSON shape is shared with the
// build tooling that invokes the transformer, so the tags are load-bearing.
type Config struct {
	// GraphqlSystemAliases identifies declarative-system imports to strip.
	// A specifier matches on exact equality or on an `alias/` prefix.
	GraphqlSystemAliases []string `json:"graphqlSystemAliases"`

	// IsCjs switches runtime wiring to require/module.exports form.
	IsCjs bool `json:"isCjs"`

	// GraphqlSystemPath is the canonical path of the declarative system
	// module itself; a source file at this path is stubbed out entirely.
	GraphqlSystemPath *string `json:"graphqlSystemPath,omitempty"`

	// InjectPaths are canonical paths of injected modules (scalars,
	// adapter); files at these paths are stubbed out like the system file.
	InjectPaths []string `json:"injectPaths,omitempty"`

	// SourceMap enables source map generation.
	SourceMap bool `json:"sourceMap"`
}

// DefaultConfig returns the config used when the caller provides none.
func DefaultConfig() Config {
	return Config{
		GraphqlSystemAliases: []string{"@/graphql-system"},
	}
}

// Input is the one-shot transform request.
type Input struct {
	SourceCode   string `json:"sourceCode"`
	SourcePath   string `json:"sourcePath"`
	ArtifactJSON string `json:"artifactJson"`
	Config       Config `json:"config"`
}

// isStubPath reports whether sourcePath points at the declarative system
// module or one of the inject modules. Both sides are compared with forward
// slashes.
func (c *Config) isStubPath(sourcePath string) bool {
	normalized := strings.ReplaceAll(sourcePath, "\\", "/")
	if c.GraphqlSystemPath != nil &&
		normalized == strings.ReplaceAll(*c.GraphqlSystemPath, "\\", "/") {
		return true
	}
	for _, p := range c.InjectPaths {
		if normalized == strings.ReplaceAll(p, "\\", "/") {
			return true
		}
	}
	return false
}

// isSystemAlias reports whether an import specifier refers to the
// declarative system, either exactly or as a subpath of an alias.
func (c *Config) isSystemAlias(specifier string) bool {
	for _, alias := range c.GraphqlSystemAliases {
		if specifier == alias || strings.HasPrefix(specifier, alias+"/") {
			return true
		}
	}
	return false
}
