package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSkills_OncePerRecord(t *testing.T) {
	counts := CountSkills([]string{
		"Python, python and more PYTHON",
		"We use Docker",
	}, []string{"python", "docker", "rust"})

	require.Len(t, counts, 2)
	assert.Equal(t, SkillCount{Skill: "python", Count: 1, Percent: 50}, counts[0])
	assert.Equal(t, SkillCount{Skill: "docker", Count: 1, Percent: 50}, counts[1])
}

func TestCountSkills_OrderedByCountThenVocabulary(t *testing.T) {
	counts := CountSkills([]string{
		"sql and aws",
		"aws only",
		"git and sql and aws",
	}, []string{"git", "sql", "aws"})

	assert.Equal(t, []SkillCount{
		{Skill: "aws", Count: 3, Percent: 100},
		{Skill: "sql", Count: 2, Percent: 200.0 / 3},
		{Skill: "git", Count: 1, Percent: 100.0 / 3},
	}, counts)
}

func TestCountSkills_SubstringSemantics(t *testing.T) {
	// "java" is a substring of "javascript"
	counts := CountSkills([]string{"JavaScript developer"}, nil)
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Skill
	}
	assert.Equal(t, []string{"javascript", "java"}, names)
}

func TestDefaultSkills(t *testing.T) {
	assert.Len(t, DefaultSkills, 26)
}

func TestTopSkills(t *testing.T) {
	counts := make([]SkillCount, 20)
	assert.Len(t, TopSkills(counts, TopSkillsLimit), 15)
	assert.Len(t, TopSkills(counts[:3], TopSkillsLimit), 3)
	assert.Len(t, TopSkills(counts, 0), 20)
}

func TestCountSkillCategories(t *testing.T) {
	descriptions := []string{
		"Go and PostgreSQL on AWS with Docker",
		"Python, Flask and PostgreSQL",
		"Kubernetes operators in Go",
	}
	categories := []SkillCategory{
		{"Languages", []string{"go", "python", "rust"}},
		{"Databases", []string{"postgresql", "mysql"}},
	}

	perCategory, top := CountSkillCategories(descriptions, categories, 2)
	require.Len(t, perCategory, 2)
	assert.Equal(t, "Languages", perCategory[0].Category)
	assert.Equal(t, []SkillCount{
		{Skill: "go", Count: 2, Percent: 200.0 / 3},
		{Skill: "python", Count: 1, Percent: 100.0 / 3},
	}, perCategory[0].Skills, "rust is never mentioned")

	require.Len(t, top, 2)
	assert.Equal(t, "go", top[0].Skill)
	assert.Equal(t, "Languages", top[0].Category)
	assert.Equal(t, "postgresql", top[1].Skill, "ties keep category order")
	assert.Equal(t, "Databases", top[1].Category)
}
