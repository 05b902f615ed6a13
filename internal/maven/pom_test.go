package maven

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const profilePOM = `<?xml version="1.0" encoding="ISO-8859-1"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <parent>
    <groupId>org.example</groupId>
    <artifactId>platform</artifactId>
  </parent>
  <artifactId>services</artifactId>
  <modules>
    <module> api </module>
    <module>core</module>
    <module></module>
  </modules>
  <profiles>
    <profile>
      <id>integration</id>
      <modules>
        <module>it</module>
        <module>core</module>
      </modules>
    </profile>
  </profiles>
</project>
`

func TestParsePOM_ModulesAndCoordinates(t *testing.T) {
	p, err := parsePOM([]byte(profilePOM))
	require.NoError(t, err)

	require.Equal(t, "org.example:services", p.coordinates())
	require.Equal(t, []string{"api", "core"}, p.moduleEntries(false))
	require.Equal(t, []string{"api", "core", "it"}, p.moduleEntries(true))
}

func TestParsePOM_WithoutNamespace(t *testing.T) {
	p, err := parsePOM([]byte(`<project><artifactId>solo</artifactId></project>`))
	require.NoError(t, err)
	require.Equal(t, "solo", p.coordinates())
	require.Empty(t, p.moduleEntries(true))
}

func TestParsePOM_RejectsOtherDocuments(t *testing.T) {
	_, err := parsePOM([]byte(`<settings><localRepository/></settings>`))
	require.Error(t, err)

	_, err = parsePOM([]byte(``))
	require.Error(t, err)
}

func TestParsePOM_BuildOverrides(t *testing.T) {
	p, err := parsePOM([]byte(`<project>
  <artifactId>legacy</artifactId>
  <build>
    <sourceDirectory>${project.basedir}/src</sourceDirectory>
    <testSourceDirectory>test</testSourceDirectory>
    <resources>
      <resource><directory>conf</directory></resource>
      <resource><directory>${basedir}/static</directory></resource>
    </resources>
    <testResources>
      <testResource><directory>test-data</directory></testResource>
    </testResources>
  </build>
</project>`))
	require.NoError(t, err)

	require.Equal(t, "${project.basedir}/src", p.Build.SourceDirectory)
	require.Equal(t, "test", p.Build.TestSourceDirectory)
	require.Equal(t, []string{"conf", "${basedir}/static"}, p.Build.Resources)
	require.Equal(t, []string{"test-data"}, p.Build.TestResources)
}

func TestRelativeDir(t *testing.T) {
	moduleDir := filepath.FromSlash("/repo/app")

	tests := []struct {
		in   string
		want string
	}{
		{in: "src/java", want: filepath.Join("src", "java")},
		{in: "${project.basedir}/src/java", want: filepath.Join("src", "java")},
		{in: "${basedir}/gen", want: "gen"},
		{in: "${project.basedir}", want: "."},
		{in: "/repo/app/source", want: "source"},
		{in: " ./lib/ ", want: "lib"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, relativeDir(moduleDir, tt.in))
		})
	}
}

func TestResolveEntry(t *testing.T) {
	require.Equal(t, filepath.FromSlash("/repo/module1"), resolveEntry("/repo", "module1"))
	require.Equal(t, filepath.FromSlash("/repo/module1"), resolveEntry("/repo", "module1/pom.xml"))
	require.Equal(t, filepath.FromSlash("/repo/nested/deep"), resolveEntry("/repo", "nested/deep/"))
	require.Equal(t, filepath.FromSlash("/lib"), resolveEntry("/repo", "../lib"))
}
