package search

import (
	"regexp"
	"strings"
)

// SkillKeywords is the default skill vocabulary used to mine a resume or
// listing text. Callers may pass their own list to ExtractSkills.
var SkillKeywords = []string{
	"java", "spring", "spring boot", "backend", "microservices", "rest", "api", "sql", "docker", "kubernetes",
	"aws", "azure", "git", "linux", "agile", "scrum", "maven", "gradle", "hibernate", "jpa", "rabbitmq", "redis",
	"mongodb", "postgresql", "mysql", "jenkins", "ci/cd", "unit testing", "integration testing", "oop", "design patterns",
}

// ExtractSkills returns the set of skills from keywords found in text.
// Multi-word skills match as a case-insensitive substring; single-word
// skills require whole-word boundaries so "java" never matches inside
// "javascript".
func ExtractSkills(text string, keywords []string) map[string]struct{} {

	found := make(map[string]struct{})
	lowered := strings.ToLower(text)

	for _, skill := range keywords {
		needle := strings.ToLower(skill)

		if strings.Contains(needle, " ") {
			if strings.Contains(lowered, needle) {
				found[skill] = struct{}{}
			}
			continue
		}

		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(needle) + `\b`)
		if pattern.MatchString(lowered) {
			found[skill] = struct{}{}
		}
	}

	return found
}
