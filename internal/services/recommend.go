package services

import (
	"math"

	"rakhadian/hr-ai-platform/internal/models"
)

// ApplyHireRecommendations labels every result in the batch. The batch is an
// atomic input: each candidate's label depends on the average and maximum
// score across all candidates, so changing one score can relabel the others.
// Results are labeled in place.
func ApplyHireRecommendations(results []models.CandidateResult) {
	allScores := make([]float64, len(results))
	for i, r := range results {
		allScores[i] = r.Score
	}

	for i := range results {
		results[i].HireRecommendation = recommendOne(
			results[i].Score,
			results[i].SkillStatus,
			allScores,
		)
	}
}

func recommendOne(score float64, status models.SkillStatus, allScores []float64) models.HireRecommendation {
	var recommendation string

	if len(allScores) > 1 {
		var sum, max float64
		for _, s := range allScores {
			sum += s
			if s > max {
				max = s
			}
		}
		avg := sum / float64(len(allScores))

		switch {
		case score >= max*0.9:
			recommendation = models.RecommendationStrongHire
		case score >= avg*1.2 || score >= 60:
			recommendation = models.RecommendationConsider
		case score >= avg:
			recommendation = models.RecommendationConsider
		default:
			recommendation = models.RecommendationNotRecommended
		}
	} else {
		switch {
		case score >= 80:
			recommendation = models.RecommendationStrongHire
		case score >= 60:
			recommendation = models.RecommendationConsider
		default:
			recommendation = models.RecommendationNotRecommended
		}
	}

	totalRisks := len(status.Missing) + len(status.Absent)
	riskLevel := models.RiskHigh
	switch {
	case totalRisks == 0:
		riskLevel = models.RiskLow
	case totalRisks <= 2:
		riskLevel = models.RiskMedium
	}

	return models.HireRecommendation{
		Recommendation: recommendation,
		Confidence:     score,
		RiskLevel:      riskLevel,
	}
}

// ComputeBatchKPIs derives the executive KPIs from one request's result set.
// An empty batch yields all-zero KPIs.
func ComputeBatchKPIs(results []models.CandidateResult) models.BatchKPIs {
	if len(results) == 0 {
		return models.BatchKPIs{}
	}

	var sum, top float64
	for _, r := range results {
		sum += r.Score
		if r.Score > top {
			top = r.Score
		}
	}

	n := len(results)
	top5 := n
	if top5 > 5 {
		top5 = 5
	}

	return models.BatchKPIs{
		TotalCandidates: n,
		AverageMatch:    math.Round(sum/float64(n)*10) / 10,
		TopScore:        top,
		Top5Count:       top5,
	}
}
