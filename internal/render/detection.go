package render

import (
	"fmt"
	"io"

	"github.com/jakoblorz/go-psa/internal/models"
)

// Detection is the result of classifying a directory by its marker file.
type Detection struct {
	Path        string             `json:"path" yaml:"path" toml:"path"`
	Analyzer    string             `json:"analyzer" yaml:"analyzer" toml:"analyzer"`
	ProjectType models.ProjectType `json:"project_type" yaml:"project_type" toml:"project_type"`
	BuildFile   string             `json:"build_file" yaml:"build_file" toml:"build_file"`
}

// WriteDetection renders d in format.
func WriteDetection(w io.Writer, format string, d Detection) error {
	switch format {
	case FormatText:
		_, err := fmt.Fprintf(w, "%s %s (%s, %s analyzer)\n", headingStyle.Render(d.Path), d.ProjectType, d.BuildFile, d.Analyzer)
		return err
	case FormatJSON:
		return writeJSON(w, d)
	case FormatYAML:
		return writeYAML(w, d)
	case FormatTOML:
		return writeTOML(w, d)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
