package organizer

import "strings"

// extensionCategories maps a lowercased extension to its coarse category.
// Keys are unique; lookups are case-insensitive and total (unmatched
// extensions fall through to "misc").
var extensionCategories = map[string]string{
	// code
	".py": "code", ".js": "code", ".ts": "code", ".java": "code",
	".cpp": "code", ".c": "code", ".h": "code", ".hpp": "code",
	".cs": "code", ".php": "code", ".rb": "code", ".go": "code",
	".rs": "code", ".swift": "code", ".kt": "code",
	// config
	".yaml": "config", ".yml": "config", ".toml": "config", ".ini": "config",
	".cfg": "config", ".conf": "config", ".env": "config", ".properties": "config",
	// docs
	".md": "docs", ".txt": "docs", ".rst": "docs", ".adoc": "docs",
	".tex": "docs", ".doc": "docs", ".docx": "docs", ".pdf": "docs", ".rtf": "docs",
	// images
	".jpg": "images", ".jpeg": "images", ".png": "images", ".gif": "images",
	".bmp": "images", ".tiff": "images", ".webp": "images", ".svg": "images", ".ico": "images",
	// audio
	".mp3": "audio", ".wav": "audio", ".flac": "audio", ".aac": "audio",
	".ogg": "audio", ".m4a": "audio", ".wma": "audio",
	// video
	".mp4": "video", ".avi": "video", ".mov": "video", ".mkv": "video",
	".wmv": "video", ".flv": "video", ".webm": "video", ".m4v": "video",
	// archives
	".zip": "archives", ".rar": "archives", ".7z": "archives", ".tar": "archives",
	".gz": "archives", ".bz2": "archives", ".xz": "archives",
	// data
	".csv": "data", ".xlsx": "data", ".xls": "data", ".db": "data",
	".sqlite": "data", ".xml": "data", ".json": "data",
	// terraform
	".tf": "terraform", ".tfvars": "terraform", ".tfstate": "terraform", ".hcl": "terraform",
	// logs
	".log": "logs", ".out": "logs", ".err": "logs", ".trace": "logs",
}

// markerFileCategories catches extension-less files that classify by name.
var markerFileCategories = map[string]string{
	"dockerfile":         "docker",
	"docker-compose.yml": "docker",
	"docker-compose.yaml": "docker",
	".dockerignore":      "docker",
	".gitignore":         "git",
	".gitattributes":     "git",
	".gitmodules":        "git",
}

// categoryFallbacks maps a category to the destination used when the
// validator rejects a suggestion.
var categoryFallbacks = map[string]string{
	"code":      "src",
	"config":    "config",
	"docs":      "docs",
	"images":    "images",
	"audio":     "audio",
	"video":     "video",
	"archives":  "archives",
	"data":      "data",
	"terraform": "infrastructure/terraform",
	"docker":    "docker",
	"git":       "config",
	"logs":      "logs",
	"scripts":   "scripts",
}

const defaultCategory = "misc"

// fallbackDefault is used when a category has no dedicated fallback folder.
const fallbackDefault = "Uncategorized"

// CategorizeExtension maps an extension to its category, defaulting to misc.
func CategorizeExtension(ext string) string {
	if category, ok := extensionCategories[strings.ToLower(ext)]; ok {
		return category
	}
	return defaultCategory
}

// CategorizeFile classifies by file name first (Dockerfile, .gitignore and
// friends have no meaningful extension), then by extension, then by a content
// sniff of the first line.
func CategorizeFile(name string, ext string, firstLine string) string {
	if category, ok := markerFileCategories[strings.ToLower(name)]; ok {
		return category
	}
	if strings.HasSuffix(strings.ToLower(name), ".lock.hcl") {
		return "terraform"
	}
	if category, ok := extensionCategories[strings.ToLower(ext)]; ok {
		return category
	}

	trimmed := strings.TrimSpace(firstLine)
	switch {
	case strings.HasPrefix(trimmed, "#!"):
		return "scripts"
	case strings.HasPrefix(trimmed, "<?xml"):
		return "data"
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return "data"
	}

	return defaultCategory
}

// FallbackFolder returns the category-table default destination.
func FallbackFolder(category string) string {
	if folder, ok := categoryFallbacks[category]; ok {
		return folder
	}
	return fallbackDefault
}
