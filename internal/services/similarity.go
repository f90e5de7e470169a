package services

import (
	"math"
	"strings"
	"unicode"
)

// SimilarityScore computes the lexical similarity between two texts as a
// percentage in [0,100], rounded to 2 decimals. It builds a TF-IDF vector
// space over exactly the two documents (English stop words removed) and
// takes the cosine similarity of the resulting vectors. If either document
// has no usable terms the score is 0.
func SimilarityScore(text1, text2 string) float64 {
	terms1 := termCounts(text1)
	terms2 := termCounts(text2)
	if len(terms1) == 0 || len(terms2) == 0 {
		return 0
	}

	// Smoothed document frequency over the two-document corpus.
	idf := make(map[string]float64)
	for term := range terms1 {
		idf[term] = 1
	}
	for term := range terms2 {
		idf[term]++
	}
	for term, df := range idf {
		idf[term] = math.Log(3.0/(1.0+df)) + 1.0
	}

	vec1 := weighted(terms1, idf)
	vec2 := weighted(terms2, idf)

	var dot, norm1, norm2 float64
	for term, w1 := range vec1 {
		if w2, ok := vec2[term]; ok {
			dot += w1 * w2
		}
		norm1 += w1 * w1
	}
	for _, w2 := range vec2 {
		norm2 += w2 * w2
	}

	if norm1 == 0 || norm2 == 0 {
		return 0
	}

	score := dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
	return math.Round(score*100*100) / 100
}

func termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, token := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(token) < 2 || englishStopWords[token] {
			continue
		}
		counts[token]++
	}
	return counts
}

func weighted(counts, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	for term, count := range counts {
		vec[term] = count * idf[term]
	}
	return vec
}

var englishStopWords = func() map[string]bool {
	words := strings.Fields(`
		a about above after again against all am an and any are as at be
		because been before being below between both but by can cannot could
		did do does doing down during each few for from further had has have
		having he her here hers herself him himself his how i if in into is
		it its itself just me more most my myself no nor not now of off on
		once only or other our ours ourselves out over own same she should
		so some such than that the their theirs them themselves then there
		these they this those through to too under until up very was we were
		what when where which while who whom why will with you your yours
		yourself yourselves would also however therefore moreover via etc
	`)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}()
