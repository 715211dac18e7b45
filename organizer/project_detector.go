package organizer

import (
	"os"
	"path/filepath"
	"strings"
)

// projectMarker ties a root-level marker file to a project type. Detection
// returns the first match in declaration order.
type projectMarker struct {
	file        string
	projectType string
}

var projectMarkers = []projectMarker{
	{"package.json", "nodejs"},
	{"go.mod", "golang"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"setup.py", "python"},
	{"Cargo.toml", "rust"},
	{"pom.xml", "java-maven"},
	{"build.gradle", "java-gradle"},
	{"main.tf", "terraform"},
	{"Dockerfile", "docker"},
}

const codeProjectGuidelines = `- Keep source code in 'src/' or similar
- Separate tests in 'tests/' or 'test/'
- Configuration files in 'config/' or root
- Documentation in 'docs/' or 'doc/'
- Assets in 'assets/', 'static/', or 'public/'`

const terraformGuidelines = `- Terraform files in 'terraform/' or 'infrastructure/'
- Separate environments (dev, staging, prod)
- Keep modules in 'modules/'
- Variables and outputs in separate files`

var projectGuidelines = map[string]string{
	"nodejs":      codeProjectGuidelines,
	"golang":      codeProjectGuidelines,
	"python":      codeProjectGuidelines,
	"rust":        codeProjectGuidelines,
	"java-maven":  codeProjectGuidelines,
	"java-gradle": codeProjectGuidelines,
	"terraform":   terraformGuidelines,
}

// DetectProjectType inspects only the root directory (non-recursive) for
// marker files and returns the project type plus its guideline text. An
// unreadable or unmarked root yields "general" with no guidelines.
func DetectProjectType(root string) (string, string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "general", ""
	}

	names := make(map[string]bool, len(entries))
	hasTerraform := false
	for _, entry := range entries {
		names[entry.Name()] = true
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".tf") {
			hasTerraform = true
		}
	}

	for _, marker := range projectMarkers {
		if names[marker.file] {
			return marker.projectType, projectGuidelines[marker.projectType]
		}
	}
	// Loose *.tf files outrank the bare .git marker: a git repo full of
	// terraform is a terraform project.
	if hasTerraform {
		return "terraform", projectGuidelines["terraform"]
	}
	if names[".git"] {
		return "git-repo", ""
	}

	return "general", ""
}

// Guidelines returns the guideline text for a known project type.
func Guidelines(projectType string) string {
	return projectGuidelines[projectType]
}

// RootName returns the display name of the scanned root folder.
func RootName(root string) string {
	return filepath.Base(filepath.Clean(root))
}
