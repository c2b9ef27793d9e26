package analysis

import (
	"sort"
	"strings"
)

// TopSkillsLimit is how many skills the skills view shows
const TopSkillsLimit = 15

// DefaultSkills is the vocabulary searched when none is configured
var DefaultSkills = []string{
	"python", "javascript", "java", "react", "node.js", "sql",
	"aws", "docker", "kubernetes", "git", "linux", "typescript",
	"postgresql", "mongodb", "redis", "elasticsearch", "kafka",
	"microservices", "rest api", "graphql", "machine learning",
	"data science", "devops", "ci/cd", "agile", "scrum",
}

// SkillCount is the number of postings mentioning a skill
type SkillCount struct {
	Skill   string  `json:"skill"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // of analyzed postings
}

// CountSkills counts, for each vocabulary term, how many descriptions
// contain it as a case-insensitive substring. A description counts at most
// once per term. Terms with no mentions are omitted; ties keep vocabulary order.
func CountSkills(descriptions []string, vocabulary []string) []SkillCount {
	if len(vocabulary) == 0 {
		vocabulary = DefaultSkills
	}
	terms := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		terms[i] = strings.ToLower(strings.TrimSpace(term))
	}

	counts := make([]int, len(terms))
	for _, d := range descriptions {
		lower := strings.ToLower(d)
		for i, term := range terms {
			if term != "" && strings.Contains(lower, term) {
				counts[i]++
			}
		}
	}

	result := make([]SkillCount, 0, len(terms))
	for i, term := range terms {
		if counts[i] == 0 {
			continue
		}
		result = append(result, SkillCount{
			Skill:   term,
			Count:   counts[i],
			Percent: percent(counts[i], len(descriptions)),
		})
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Count > result[b].Count
	})
	return result
}

// TopSkills returns the first n entries of counts
func TopSkills(counts []SkillCount, n int) []SkillCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
