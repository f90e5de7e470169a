package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"rakhadian/hr-ai-platform/internal/models"
)

var (
	scoreOutOf20Re = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:/|out of|of)\s*20`)
	scoreLabelRe   = regexp.MustCompile(`(?i)Score[:\s]+(\d+(?:\.\d+)?)`)
)

// TechnicalService generates interview questions from a CV and a job
// description, and scores candidate answers.
type TechnicalService interface {
	GenerateQuestions(ctx context.Context, cvText, jdText string) ([]string, error)
	EvaluateAnswers(ctx context.Context, questions, answers []string) (*models.TechnicalAnswerEvaluateResponse, error)
}

type technicalService struct {
	llm        LLMService
	maxRetries int
}

func NewTechnicalService(llm LLMService, maxRetries int) TechnicalService {
	return &technicalService{llm: llm, maxRetries: maxRetries}
}

// GenerateQuestions implements TechnicalService.
func (t *technicalService) GenerateQuestions(ctx context.Context, cvText, jdText string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a technical interviewer.

Based on the candidate CV and Job Description,
generate 5 technical interview questions.
Questions should increase in difficulty.
Number them clearly from 1 to 5.

Candidate CV:
%s

Job Description:
%s`, cvText, jdText)

	response, err := t.llm.GenerateTextWithRetry(ctx, prompt, 0.2, t.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var questions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !unicode.IsDigit(rune(line[0])) && !strings.HasPrefix(line, "Q") {
			continue
		}
		// Strip the numbering prefix ("1.", "Q2)", ...).
		q := strings.TrimLeft(line, "0123456789. )Qq-")
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}

	if len(questions) > 5 {
		questions = questions[:5]
	}
	return questions, nil
}

// EvaluateAnswers implements TechnicalService. Each answer is scored out of
// 20; the score is pulled from the feedback text by pattern, defaulting to 10
// when no score can be found.
func (t *technicalService) EvaluateAnswers(ctx context.Context, questions, answers []string) (*models.TechnicalAnswerEvaluateResponse, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("number of questions and answers must match")
	}

	evaluations := make([]models.QuestionEvaluation, 0, len(questions))
	var totalScore float64

	for i := range questions {
		prompt := fmt.Sprintf(`Evaluate the candidate's answer to the following technical question.
Provide a score from 0 to 20 and a short feedback.

Question:
%s

Candidate Answer:
%s`, questions[i], answers[i])

		feedback, err := t.llm.GenerateTextWithRetry(ctx, prompt, 0.2, t.maxRetries)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate answer %d: %w", i+1, err)
		}

		score := extractScore(feedback)
		totalScore += score

		evaluations = append(evaluations, models.QuestionEvaluation{
			QuestionNumber: i + 1,
			Question:       questions[i],
			Answer:         answers[i],
			Score:          score,
			Feedback:       feedback,
		})
	}

	maxScore := float64(len(questions) * 20)
	return &models.TechnicalAnswerEvaluateResponse{
		Evaluations: evaluations,
		TotalScore:  math.Round(totalScore*10) / 10,
		MaxScore:    maxScore,
		OverallFeedback: fmt.Sprintf(
			"Technical Evaluation Completed. Total Score: %.1f / %.1f", totalScore, maxScore),
	}, nil
}

// extractScore reads a 0-20 score from feedback text, looking for "15/20"
// style notation first and a "Score: 15" label second.
func extractScore(feedback string) float64 {
	score := 10.0 // neutral default when the feedback carries no score

	if m := scoreOutOf20Re.FindStringSubmatch(feedback); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = v
		}
	} else if m := scoreLabelRe.FindStringSubmatch(feedback); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = v
		}
	}

	if score < 0 {
		return 0
	}
	if score > 20 {
		return 20
	}
	return score
}
