package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-psa/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML}

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7D56F4"))

const textTemplate = `{{- range $i, $p := .}}{{if $i}}
{{end}}{{heading $p.Name}} {{$p.Type}} ({{$p.BuildFile}})
  path: {{$p.AbsolutePath}}
  modules: {{len $p.Rows}}
{{- range $p.Rows}}
{{indent .Indent "- "}}{{.Name}}{{with .ID}} [{{.}}]{{end}}
{{- $pad := .DetailIndent}}
{{- range .Roots}}
{{indent $pad .Label}}: {{join ", " .Dirs}}
{{- end}}
{{- end}}
{{end}}`

var textTmpl = template.Must(template.New("projects").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{"heading": func(s string) string { return headingStyle.Render(s) }}).
	Parse(textTemplate))

type textProject struct {
	*models.Project
	Rows []textRow
}

type textRow struct {
	Indent       int
	DetailIndent int
	Name         string
	ID           string
	Roots        []textRoot
}

type textRoot struct {
	Label string
	Dirs  []string
}

// Write renders projects in format: a JSON array, a YAML sequence, a TOML
// array of tables named projects or one text block per project.
func Write(w io.Writer, format string, projects []*models.Project) error {
	if projects == nil {
		projects = []*models.Project{}
	}

	switch format {
	case FormatText:
		return writeText(w, projects)
	case FormatJSON:
		return writeJSON(w, projects)
	case FormatYAML:
		return writeYAML(w, projects)
	case FormatTOML:
		return writeTOML(w, tomlProjects{Projects: projects})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteProject renders a single project; JSON and YAML emit the project
// itself instead of a one element list.
func WriteProject(w io.Writer, format string, project *models.Project) error {
	switch format {
	case FormatText:
		return writeText(w, []*models.Project{project})
	case FormatJSON:
		return writeJSON(w, project)
	case FormatYAML:
		return writeYAML(w, project)
	case FormatTOML:
		return writeTOML(w, project)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

// tomlProjects wraps a project list; a TOML document cannot be an array.
type tomlProjects struct {
	Projects []*models.Project `toml:"projects"`
}

func writeTOML(w io.Writer, v any) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode toml: %w", err)
	}
	return nil
}

func writeText(w io.Writer, projects []*models.Project) error {
	views := make([]textProject, len(projects))
	for i, p := range projects {
		views[i] = textProject{Project: p, Rows: rows(p)}
	}

	var b strings.Builder
	if err := textTmpl.Execute(&b, views); err != nil {
		return fmt.Errorf("failed to render projects: %w", err)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func rows(p *models.Project) []textRow {
	var result []textRow
	for _, top := range p.Modules {
		top.Walk(func(m *models.Module, depth int) bool {
			result = append(result, textRow{
				Indent:       2 + depth*2,
				DetailIndent: 6 + depth*2,
				Name:         m.Name,
				ID:           m.ID,
				Roots:        roots(m.ContentRoot),
			})
			return true
		})
	}
	return result
}

func roots(c models.ContentRoot) []textRoot {
	var result []textRoot
	for _, r := range []textRoot{
		{Label: "source", Dirs: c.SourceRoot},
		{Label: "resource", Dirs: c.ResourceRoot},
		{Label: "test source", Dirs: c.TestSourceRoot},
		{Label: "test resource", Dirs: c.TestResourceRoot},
	} {
		if len(r.Dirs) > 0 {
			result = append(result, r)
		}
	}
	return result
}
