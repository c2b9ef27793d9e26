package analysis

import "sort"

// SkillCategory groups related technology terms
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// DefaultCategories is the vocabulary of the skills report, grouped by kind
var DefaultCategories = []SkillCategory{
	{"Languages", []string{"python", "javascript", "java", "typescript", "go", "rust", "c++", "c#", "ruby", "php", "swift", "kotlin"}},
	{"Frameworks", []string{"react", "angular", "vue", "django", "flask", "spring", "express", "fastapi", "laravel", "rails"}},
	{"Databases", []string{"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb"}},
	{"Cloud", []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins"}},
	{"Data", []string{"pandas", "numpy", "tensorflow", "pytorch", "spark", "hadoop", "tableau", "power bi"}},
	{"Tools", []string{"git", "jira", "slack", "figma", "sketch", "postman", "webpack", "babel"}},
}

// CategorizedSkill is a SkillCount tagged with its category
type CategorizedSkill struct {
	SkillCount
	Category string `json:"category"`
}

// CategoryCounts holds the skill counts of one category
type CategoryCounts struct {
	Category string       `json:"category"`
	Skills   []SkillCount `json:"skills"`
}

// CountSkillCategories counts each category's vocabulary over descriptions
// and returns per-category counts plus the top n skills across categories
func CountSkillCategories(descriptions []string, categories []SkillCategory, n int) ([]CategoryCounts, []CategorizedSkill) {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	perCategory := make([]CategoryCounts, 0, len(categories))
	var overall []CategorizedSkill
	for _, cat := range categories {
		counts := CountSkills(descriptions, cat.Skills)
		perCategory = append(perCategory, CategoryCounts{Category: cat.Name, Skills: counts})
		for _, c := range counts {
			overall = append(overall, CategorizedSkill{SkillCount: c, Category: cat.Name})
		}
	}
	sort.SliceStable(overall, func(a, b int) bool {
		return overall[a].Count > overall[b].Count
	})
	if n > 0 && len(overall) > n {
		overall = overall[:n]
	}
	return perCategory, overall
}
