package organizer

import (
	"regexp"
	"strings"

	"github.com/organai/organai/organizer/models"
)

// maxPathDepth is the hard bound on suggested path segments; deeper
// suggestions are rejected, not truncated.
const maxPathDepth = 3

var (
	jsonPathRe   = regexp.MustCompile(`(?i){\s*"path"\s*:\s*"([^"]+)"\s*}`)
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	thinkBlockRe = regexp.MustCompile(`(?is)<think>.*?</think>`)
	headingRe    = regexp.MustCompile(`(?m)^#+\s.*$`)
	proseLeadRe  = regexp.MustCompile(`(?i)\b(the cleaned compact path would be|the path would be|the best path is|final path:|folder path:|this file should go in|this belongs in|organize this as)\b`)
	candidateRe  = regexp.MustCompile(`[A-Za-z0-9_.-]+(?:/[A-Za-z0-9_.-]+){0,3}`)
	multiSlashRe = regexp.MustCompile(`/{2,}`)
)

// prose tokens never meant as folder names on their own.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"is": true, "are": true, "be": true, "would": true, "should": true,
	"could": true, "in": true, "to": true, "for": true, "of": true,
	"under": true, "into": true, "it": true, "here": true, "go": true,
	"goes": true, "put": true, "place": true, "file": true, "folder": true,
	"path": true, "belongs": true, "best": true,
}

// sentinel responses the backends produce when they have no answer.
var sentinelResponses = map[string]bool{
	"":              true,
	"error":         true,
	"none":          true,
	"null":          true,
	"undefined":     true,
	"uncategorized": true,
}

// Validator turns raw backend text into a normalized, bounded relative path,
// falling back to the category table when the text is unusable.
type Validator struct {
	Project       models.ProjectContext
	StayUnderRoot bool
}

// Validate runs the extraction pipeline over raw suggestion text for one
// file. The returned source is first-pass or fallback; callers promote it to
// refined or cached.
func (v *Validator) Validate(record models.FileRecord, raw string) models.SuggestionResult {
	candidate := extractPath(raw)
	candidate = normalizePath(candidate)

	if rejected(candidate) {
		return v.fallback(record)
	}

	candidate = v.adjustConvention(candidate)
	confidence := v.confidence(candidate)

	if v.StayUnderRoot && !startsWithRoot(candidate, v.Project.RootName) {
		candidate = v.Project.RootName + "/" + candidate
	}

	return models.SuggestionResult{
		Path:       candidate,
		Confidence: confidence,
		Source:     models.SourceFirstPass,
	}
}

// fallback produces the category-table default for a file.
func (v *Validator) fallback(record models.FileRecord) models.SuggestionResult {
	path := FallbackFolder(record.Category)
	if v.StayUnderRoot && !startsWithRoot(path, v.Project.RootName) {
		path = v.Project.RootName + "/" + path
	}
	return models.SuggestionResult{
		Path:       path,
		Confidence: models.ConfidenceLow,
		Source:     models.SourceFallback,
	}
}

// extractPath pulls the most path-like token out of free text.
func extractPath(text string) string {
	if text == "" {
		return ""
	}

	if m := jsonPathRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	text = strings.ReplaceAll(text, "\\", "/")
	text = multiSlashRe.ReplaceAllString(text, "/")
	text = codeFenceRe.ReplaceAllString(text, "")
	text = thinkBlockRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = proseLeadRe.ReplaceAllString(text, "")

	var candidates []string
	for _, c := range candidateRe.FindAllString(text, -1) {
		c = strings.Trim(c, "./")
		if c == "" || stopwords[strings.ToLower(c)] {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return ""
	}

	best := candidates[0]
	bestScore := scoreCandidate(best)
	for _, c := range candidates[1:] {
		if s := scoreCandidate(c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}

// scoreCandidate prefers slash-separated tokens, shorter over longer.
func scoreCandidate(c string) int {
	length := len(strings.ReplaceAll(c, "/", ""))
	if length > 9 {
		length = 9
	}
	score := 10 - length
	if strings.Contains(c, "/") {
		score += 10
	}
	return score
}

// normalizePath converts separators, keeps the first line only, and trims
// stray slashes and whitespace.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if idx := strings.IndexByte(path, '\n'); idx >= 0 {
		path = path[:idx]
	}
	path = strings.Trim(strings.TrimSpace(path), "/")
	path = multiSlashRe.ReplaceAllString(path, "/")

	parts := splitSegments(path)
	return strings.Join(parts, "/")
}

// rejected reports whether a normalized candidate must fall back to the
// category default: sentinels, escapes, illegal characters, or excess depth.
func rejected(path string) bool {
	if sentinelResponses[strings.ToLower(path)] {
		return true
	}
	if strings.ContainsAny(path, `<>:"|?*`) {
		return true
	}
	parts := splitSegments(path)
	if len(parts) == 0 || len(parts) > maxPathDepth {
		return true
	}
	for _, part := range parts {
		if part == ".." {
			return true
		}
	}
	return false
}

// adjustConvention rewrites separators to match the project's dominant
// folder naming style.
func (v *Validator) adjustConvention(path string) string {
	switch v.Project.Structure.Convention {
	case models.ConventionKebab:
		return strings.ToLower(strings.ReplaceAll(path, "_", "-"))
	case models.ConventionSnake:
		return strings.ToLower(strings.ReplaceAll(path, "-", "_"))
	default:
		return path
	}
}

// confidence is high only when the path reuses an existing folder name; a
// new but well-formed path is medium.
func (v *Validator) confidence(path string) models.Confidence {
	for _, part := range splitSegments(path) {
		if HasFolder(v.Project.Structure, part) {
			return models.ConfidenceHigh
		}
	}
	return models.ConfidenceMedium
}

func startsWithRoot(path, rootName string) bool {
	parts := splitSegments(path)
	return len(parts) > 0 && strings.EqualFold(parts[0], rootName)
}

func splitSegments(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
