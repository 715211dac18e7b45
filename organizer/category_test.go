package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Extension lookup is total and case-insensitive
func TestCategorizeExtension_CaseInsensitiveAndTotal(t *testing.T) {
	assert.Equal(t, "code", CategorizeExtension(".py"))
	assert.Equal(t, "code", CategorizeExtension(".PY"))
	assert.Equal(t, "images", CategorizeExtension(".JpEg"))
	assert.Equal(t, "terraform", CategorizeExtension(".tfvars"))

	// Unknown extensions never error, they classify as misc
	assert.Equal(t, "misc", CategorizeExtension(".xyz"))
	assert.Equal(t, "misc", CategorizeExtension(""))
}

// Marker file names win over extensions
func TestCategorizeFile_MarkerNames(t *testing.T) {
	assert.Equal(t, "docker", CategorizeFile("Dockerfile", "", ""))
	assert.Equal(t, "docker", CategorizeFile("docker-compose.yml", ".yml", ""))
	assert.Equal(t, "git", CategorizeFile(".gitignore", ".gitignore", ""))
	assert.Equal(t, "terraform", CategorizeFile(".terraform.lock.hcl", ".hcl", ""))
}

// Extension-less files are sniffed by their first line
func TestCategorizeFile_ContentSniff(t *testing.T) {
	assert.Equal(t, "scripts", CategorizeFile("deploy", "", "#!/bin/bash"))
	assert.Equal(t, "data", CategorizeFile("feed", "", `<?xml version="1.0"?>`))
	assert.Equal(t, "data", CategorizeFile("payload", "", `{"key": "value"}`))
	assert.Equal(t, "misc", CategorizeFile("LICENSE-APACHE", "", "Apache License"))
}

// Every known category has a usable fallback destination
func TestFallbackFolder(t *testing.T) {
	assert.Equal(t, "src", FallbackFolder("code"))
	assert.Equal(t, "infrastructure/terraform", FallbackFolder("terraform"))
	assert.Equal(t, "docs", FallbackFolder("docs"))

	// misc and unknown categories land in Uncategorized
	assert.Equal(t, "Uncategorized", FallbackFolder("misc"))
	assert.Equal(t, "Uncategorized", FallbackFolder("nope"))
}
