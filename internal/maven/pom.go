package maven

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// pom is the subset of a Maven descriptor psa reads: coordinates, declared
// modules and the build directory overrides.
type pom struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Parent     struct {
		GroupID string `xml:"groupId"`
	} `xml:"parent"`
	Modules  []string     `xml:"modules>module"`
	Profiles []pomProfile `xml:"profiles>profile"`
	Build    pomBuild     `xml:"build"`
}

type pomProfile struct {
	ID      string   `xml:"id"`
	Modules []string `xml:"modules>module"`
}

type pomBuild struct {
	SourceDirectory     string   `xml:"sourceDirectory"`
	TestSourceDirectory string   `xml:"testSourceDirectory"`
	Resources           []string `xml:"resources>resource>directory"`
	TestResources       []string `xml:"testResources>testResource>directory"`
}

func parsePOM(data []byte) (*pom, error) {
	var p pom
	decoder := xml.NewDecoder(bytes.NewReader(data))
	// Declared encodings other than UTF-8 (ISO-8859-1 is common) are read as is.
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse pom.xml: %w", err)
	}
	return &p, nil
}

// coordinates returns groupId:artifactId, inheriting the groupId from the
// parent when the module omits it.
func (p *pom) coordinates() string {
	artifactID := strings.TrimSpace(p.ArtifactID)
	if artifactID == "" {
		return ""
	}
	groupID := strings.TrimSpace(p.GroupID)
	if groupID == "" {
		groupID = strings.TrimSpace(p.Parent.GroupID)
	}
	if groupID == "" {
		return artifactID
	}
	return groupID + ":" + artifactID
}

// moduleEntries returns the declared modules in order. Profile modules follow
// the top level list when includeProfiles is set; duplicates are dropped.
func (p *pom) moduleEntries(includeProfiles bool) []string {
	seen := make(map[string]struct{})
	var entries []string

	add := func(modules []string) {
		for _, m := range modules {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			key := filepath.Clean(filepath.FromSlash(m))
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, m)
		}
	}

	add(p.Modules)
	if includeProfiles {
		for _, profile := range p.Profiles {
			add(profile.Modules)
		}
	}

	return entries
}

var basedirPrefixes = []string{"${project.basedir}", "${basedir}", "${pom.basedir}"}

// relativeDir normalizes a directory override to a path relative to moduleDir.
func relativeDir(moduleDir, dir string) string {
	dir = strings.TrimSpace(dir)
	for _, prefix := range basedirPrefixes {
		if strings.HasPrefix(dir, prefix) {
			dir = strings.TrimLeft(strings.TrimPrefix(dir, prefix), `/\`)
			break
		}
	}
	if dir == "" {
		return "."
	}

	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) {
		if rel, err := filepath.Rel(moduleDir, dir); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return filepath.Clean(dir)
	}

	return filepath.Clean(dir)
}
