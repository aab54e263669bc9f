package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/questions/\d+/answers$`), Template: "/questions/:id/answers"},
	{Pattern: regexp.MustCompile(`^/questions/\d+$`), Template: "/questions/:id"},
	{Pattern: regexp.MustCompile(`^/answers/\d+$`), Template: "/answers/:id"},
}

// NormalizePath converts paths with IDs (e.g. /questions/123) to their template
// (/questions/:id) so metric labels keep a bounded cardinality.
// Query strings and a trailing slash are ignored; unknown paths pass through.
//
//	NormalizePath("/questions/42")          // "/questions/:id"
//	NormalizePath("/questions/42/answers")  // "/questions/:id/answers"
//	NormalizePath("/answers/7/")            // "/answers/:id"
//	NormalizePath("/delete-histories")      // "/delete-histories"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
