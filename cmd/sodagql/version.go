package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sodagql/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sodagql build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch versionFormat {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout())
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(w io.Writer) {
	fmt.Fprintf(w, "sodagql %s\n", version.Version)
	if version.GitCommit != "" {
		fmt.Fprintf(w, "  commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(w, "  built:  %s\n", version.BuildDate)
	}
}

func renderVersionJSON(w io.Writer) error {
	payload := versionPayload{
		Tool:      "sodagql",
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
