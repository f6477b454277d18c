package transform

import "fmt"

// Stage identifies the phase that produced a wire diagnostic.
type Stage string

const (
	StageAnalysis  Stage = "analysis"
	StageTransform Stage = "transform"
)

// Wire diagnostic codes shared with the TypeScript plugin family.
const (
	CodeMetadataNotFound  = "SODA_GQL_METADATA_NOT_FOUND"
	CodeArtifactNotFound  = "SODA_GQL_ANALYSIS_ARTIFACT_NOT_FOUND"
	CodeMissingBuilderArg = "SODA_GQL_TRANSFORM_MISSING_BUILDER_ARG"
)

// PluginError is a structured, non-fatal diagnostic in the shared plugin
// wire shape. The transform collects them and keeps going.
type PluginError struct {
	Type         string `json:"type"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	Stage        Stage  `json:"stage"`
	Filename     string `json:"filename,omitempty"`
	CanonicalID  string `json:"canonicalId,omitempty"`
	ArtifactType string `json:"artifactType,omitempty"`
	BuilderType  string `json:"builderType,omitempty"`
	ArgName      string `json:"argName,omitempty"`
}

func metadataNotFound(filename string) PluginError {
	return PluginError{
		Type:     "PluginError",
		Code:     CodeMetadataNotFound,
		Message:  fmt.Sprintf("No metadata found for gql call in '%s'", filename),
		Stage:    StageAnalysis,
		Filename: filename,
	}
}

func artifactNotFound(filename, canonicalID string) PluginError {
	return PluginError{
		Type:        "PluginError",
		Code:        CodeArtifactNotFound,
		Message:     fmt.Sprintf("No artifact found for canonical ID '%s' in '%s'", canonicalID, filename),
		Stage:       StageAnalysis,
		Filename:    filename,
		CanonicalID: canonicalID,
	}
}

func missingBuilderArg(filename, builderType, argName string) PluginError {
	return PluginError{
		Type:        "PluginError",
		Code:        CodeMissingBuilderArg,
		Message:     fmt.Sprintf("Missing required builder argument '%s' for %s in '%s'", argName, builderType, filename),
		Stage:       StageTransform,
		Filename:    filename,
		BuilderType: builderType,
		ArgName:     argName,
	}
}

// Format renders the diagnostic for log output.
func (e PluginError) Format() string {
	return fmt.Sprintf("[%s] (%s) %s", e.Code, e.Stage, e.Message)
}
