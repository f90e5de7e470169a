package services

import (
	"context"
	"fmt"
	"strings"

	"rakhadian/hr-ai-platform/internal/models"
)

// promptCharBudget caps how much CV/JD text is inlined into skill prompts.
const promptCharBudget = 2000

// defaultSkillTaxonomy is returned whenever the skill extraction response
// cannot be parsed.
var defaultSkillTaxonomy = []string{
	"Technical / Functional Expertise",
	"Problem Solving & Analytical Thinking",
	"Communication Skills",
	"Collaboration & Teamwork",
	"Execution & Delivery",
	"Leadership & Ownership",
	"Adaptability & Learning Agility",
	"Cultural & Organizational Fit",
}

// SkillService derives skill taxonomies, per-skill scores and skill status
// buckets from LLM calls. Every parse failure degrades to a deterministic
// fallback and is never surfaced to the caller.
type SkillService interface {
	ExtractSkillsFromJD(ctx context.Context, jdText string) []string
	GetSkillScores(ctx context.Context, cvText, jdText string, skills []string) map[string]float64
	ExtractSkillStatus(ctx context.Context, cvText, jdText string) models.SkillStatus
}

type skillService struct {
	llm LLMService
}

func NewSkillService(llm LLMService) SkillService {
	return &skillService{llm: llm}
}

// ExtractSkillsFromJD implements SkillService.
func (s *skillService) ExtractSkillsFromJD(ctx context.Context, jdText string) []string {
	prompt := fmt.Sprintf(`Analyze the following Job Description and extract the main skill categories/domains required.
Return ONLY a JSON array of skill category names (3-8 skills), nothing else.
Examples: Frontend, Backend, APIs, Testing, DevOps, Leadership, Database, Cloud, etc.
Use concise, single-word or two-word skill names.

Job Description:
%s

Return format: ["Skill1", "Skill2", "Skill3", ...]`, jdText)

	response, err := s.llm.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return defaultSkillTaxonomy
	}

	if skills, ok := decodeStringArray(response); ok {
		return skills
	}
	return defaultSkillTaxonomy
}

// GetSkillScores implements SkillService. The returned map always contains
// exactly the skills passed in: a malformed response scores every skill 50,
// a valid response that omits a skill scores that skill 0.
func (s *skillService) GetSkillScores(ctx context.Context, cvText, jdText string, skills []string) map[string]float64 {
	prompt := fmt.Sprintf(`Evaluate the candidate's CV against the Job Description for each skill category.
Return ONLY a JSON object with skill names as keys and scores (0-100) as values.

Skills to evaluate: %s

CV:
%s

Job Description:
%s

Return format: {"Skill1": 85, "Skill2": 70, "Skill3": 80, ...}`,
		strings.Join(skills, ", "), truncate(cvText, promptCharBudget), truncate(jdText, promptCharBudget))

	scores := make(map[string]float64, len(skills))

	var parsed map[string]float64
	response, err := s.llm.GenerateText(ctx, prompt, 0.2)
	if err != nil || !decodeObject(response, &parsed) {
		for _, skill := range skills {
			scores[skill] = 50
		}
		return scores
	}

	for _, skill := range skills {
		scores[skill] = clampScore(parsed[skill])
	}
	return scores
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ExtractSkillStatus implements SkillService.
func (s *skillService) ExtractSkillStatus(ctx context.Context, cvText, jdText string) models.SkillStatus {
	prompt := fmt.Sprintf(`Analyze the candidate's CV against the Job Description.
Return ONLY a JSON object with three arrays:
- "missing": skills mentioned in JD but weak/limited in CV
- "absent": skills required in JD but completely missing from CV
- "strong": skills that are strong/prominent in CV

Return only specific technology/tool names (e.g., "TypeScript", "Vue.js", "React", "Docker", etc.)
Keep skill names concise (1-3 words max).

CV:
%s

Job Description:
%s

Return format: {"missing": ["Skill1", "Skill2"], "absent": ["Skill3"], "strong": ["Skill4", "Skill5"]}`,
		truncate(cvText, promptCharBudget), truncate(jdText, promptCharBudget))

	var status models.SkillStatus
	response, err := s.llm.GenerateText(ctx, prompt, 0.2)
	if err != nil || !decodeObject(response, &status) {
		return models.SkillStatus{Missing: []string{}, Absent: []string{}, Strong: []string{}}
	}

	if status.Missing == nil {
		status.Missing = []string{}
	}
	if status.Absent == nil {
		status.Absent = []string{}
	}
	if status.Strong == nil {
		status.Strong = []string{}
	}
	return status
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
