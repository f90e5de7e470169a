package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityScore_IdenticalTexts(t *testing.T) {
	text := "Senior backend engineer with Golang, PostgreSQL and Kubernetes experience"
	assert.InDelta(t, 100.0, SimilarityScore(text, text), 0.01)
}

func TestSimilarityScore_DisjointTexts(t *testing.T) {
	score := SimilarityScore(
		"golang kubernetes microservices grpc",
		"painting watercolor canvas brushes",
	)
	assert.Equal(t, 0.0, score)
}

func TestSimilarityScore_PartialOverlap(t *testing.T) {
	score := SimilarityScore(
		"golang backend developer with postgresql",
		"golang frontend developer with react",
	)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 100.0)
}

func TestSimilarityScore_Symmetric(t *testing.T) {
	a := "python data science machine learning pandas"
	b := "machine learning engineer with python background"
	assert.Equal(t, SimilarityScore(a, b), SimilarityScore(b, a))
}

func TestSimilarityScore_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		text1 string
		text2 string
	}{
		{"both empty", "", ""},
		{"one empty", "golang developer", ""},
		{"only stop words", "the and of with", "golang developer"},
		{"only punctuation", "!!! ??? ...", "golang developer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, SimilarityScore(tt.text1, tt.text2))
		})
	}
}

func TestSimilarityScore_CaseInsensitive(t *testing.T) {
	assert.InDelta(t, 100.0,
		SimilarityScore("Golang PostgreSQL Docker", "golang postgresql docker"), 0.01)
}

func TestSimilarityScore_WithinRange(t *testing.T) {
	pairs := [][2]string{
		{"java spring hibernate", "java spring boot microservices"},
		{"react typescript frontend", "vue javascript frontend"},
		{"devops terraform aws", "cloud infrastructure aws terraform ansible"},
	}

	for _, p := range pairs {
		score := SimilarityScore(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
