package models

// Recommendation labels produced by the hire recommendation engine.
const (
	RecommendationStrongHire     = "Strong Hire"
	RecommendationConsider       = "Consider"
	RecommendationNotRecommended = "Not Recommended"
)

// Risk levels derived from the count of missing and absent skills.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// SkillStatus breaks skills down by how the candidate's CV covers the job
// description: weak coverage, no coverage, or a clear strength.
type SkillStatus struct {
	Missing []string `json:"missing"`
	Absent  []string `json:"absent"`
	Strong  []string `json:"strong"`
}

type HireRecommendation struct {
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	RiskLevel      string  `json:"risk_level"`
}

// CandidateResult is the per-CV outcome of an evaluation batch. It is built
// once and returned directly in the response, never persisted.
type CandidateResult struct {
	Name               string             `json:"name"`
	Score              float64            `json:"score"`
	Evaluation         string             `json:"evaluation"`
	SkillScores        map[string]float64 `json:"skill_scores"`
	Skills             []string           `json:"skills"`
	SkillStatus        SkillStatus        `json:"skill_status"`
	HireRecommendation HireRecommendation `json:"hire_recommendation"`
}

// BatchKPIs are derived from the full result set of one evaluation request.
type BatchKPIs struct {
	TotalCandidates int     `json:"total_candidates"`
	AverageMatch    float64 `json:"average_match"`
	TopScore        float64 `json:"top_score"`
	Top5Count       int     `json:"top_5_count"`
}

type CVEvaluationResponse struct {
	Results       []CandidateResult `json:"results"`
	ExecutiveKPIs BatchKPIs         `json:"executive_kpis"`
}

type PolicyUploadResponse struct {
	Message       string   `json:"message"`
	DocumentCount int      `json:"document_count"`
	DocumentIDs   []string `json:"document_ids"`
}

type PolicyQuestionRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

type PolicyQuestionResponse struct {
	Answer string `json:"answer"`
}

type TechnicalQuestionResponse struct {
	Questions []string `json:"questions"`
}

type TechnicalAnswerEvaluateRequest struct {
	Questions []string `json:"questions" validate:"required,min=1"`
	Answers   []string `json:"answers" validate:"required,min=1"`
}

type QuestionEvaluation struct {
	QuestionNumber int     `json:"question_number"`
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
}

type TechnicalAnswerEvaluateResponse struct {
	Evaluations     []QuestionEvaluation `json:"evaluations"`
	TotalScore      float64              `json:"total_score"`
	MaxScore        float64              `json:"max_score"`
	OverallFeedback string               `json:"overall_feedback"`
}
