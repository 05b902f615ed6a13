package contentroot

import (
	"github.com/jakoblorz/go-psa/internal/filesystem"
	"github.com/jakoblorz/go-psa/internal/models"
)

// DefaultMavenLanguage is the source language directory used when none is configured.
const DefaultMavenLanguage = "java"

// Convention holds, per content category, the path segments of each root
// relative to the module directory.
type Convention struct {
	Source       [][]string
	Resource     [][]string
	TestSource   [][]string
	TestResource [][]string
}

// Maven returns the standard directory layout for the given source language
// ("java", "kotlin", "scala", ...).
func Maven(language string) Convention {
	if language == "" {
		language = DefaultMavenLanguage
	}
	return Convention{
		Source:       [][]string{{"src", "main", language}},
		Resource:     [][]string{{"src", "main", "resources"}},
		TestSource:   [][]string{{"src", "test", language}},
		TestResource: [][]string{{"src", "test", "resources"}},
	}
}

// Go returns the Go layout: sources and tests share the module directory,
// fixtures live in testdata and there is no resource directory.
func Go() Convention {
	return Convention{
		Source:       [][]string{{"."}},
		TestSource:   [][]string{{"."}},
		TestResource: [][]string{{"testdata"}},
	}
}

// Derive turns a convention into content roots. Nothing is checked on disk.
func Derive(c Convention) models.ContentRoot {
	return models.ContentRoot{
		SourceRoot:       join(c.Source),
		ResourceRoot:     join(c.Resource),
		TestSourceRoot:   join(c.TestSource),
		TestResourceRoot: join(c.TestResource),
	}
}

func join(roots [][]string) []string {
	paths := make([]string, 0, len(roots))
	for _, segments := range roots {
		paths = append(paths, filesystem.JoinPath("", segments...))
	}
	return paths
}
