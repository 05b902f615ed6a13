package buildsystem

import (
	"github.com/jakoblorz/go-psa/internal/models"
)

const (
	MavenFile       = "pom.xml"
	GradleFile      = "build.gradle"
	GradleKotlinDSL = "build.gradle.kts"
	GoWorkFile      = "go.work"
	GoModFile       = "go.mod"
)

// Marker is a build descriptor file name and the project type it indicates.
type Marker struct {
	FileName string
	Type     models.ProjectType
}

// JVMMarkers are the JVM build descriptors in priority order.
// Gradle is recognized as a project root but has no analyzer, hence unknown.
var JVMMarkers = []Marker{
	{FileName: MavenFile, Type: models.ProjectTypeMaven},
	{FileName: GradleFile, Type: models.ProjectTypeUnknown},
	{FileName: GradleKotlinDSL, Type: models.ProjectTypeUnknown},
}

// GoMarkers are the Go descriptors in priority order.
var GoMarkers = []Marker{
	{FileName: GoWorkFile, Type: models.ProjectTypeGo},
	{FileName: GoModFile, Type: models.ProjectTypeGo},
}

// Detector classifies a directory listing by the markers it contains.
type Detector struct {
	markers []Marker
}

// NewDetector creates a Detector; earlier markers take priority.
func NewDetector(markers ...Marker) *Detector {
	return &Detector{markers: append([]Marker(nil), markers...)}
}

// Detect returns the highest priority marker present in names.
func (d *Detector) Detect(names []string) (Marker, bool) {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	for _, marker := range d.markers {
		if _, ok := present[marker.FileName]; ok {
			return marker, true
		}
	}

	return Marker{}, false
}

// IsBuildFile reports whether name is one of the detector's markers.
func (d *Detector) IsBuildFile(name string) bool {
	for _, marker := range d.markers {
		if marker.FileName == name {
			return true
		}
	}
	return false
}

// Classify maps a marker file name to its project type; unrecognized names
// are unknown.
func (d *Detector) Classify(fileName string) models.ProjectType {
	for _, marker := range d.markers {
		if marker.FileName == fileName {
			return marker.Type
		}
	}
	return models.ProjectTypeUnknown
}

// FileNames returns the marker file names in priority order.
func (d *Detector) FileNames() []string {
	names := make([]string, len(d.markers))
	for i, marker := range d.markers {
		names[i] = marker.FileName
	}
	return names
}
