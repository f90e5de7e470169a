package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"sort"

	"github.com/google/uuid"

	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/repositories"
)

// HRService covers the HR platform operations: batch CV evaluation against a
// job description, the policy knowledge base, and policy Q&A.
type HRService interface {
	EvaluateCVs(ctx context.Context, jdText string, cvFiles []*multipart.FileHeader) (*models.CVEvaluationResponse, error)
	UploadPolicies(files []*multipart.FileHeader, uploadedBy uuid.UUID) (*models.PolicyUploadResponse, error)
	AskPolicyQuestion(ctx context.Context, question string) (string, error)
}

type hrService struct {
	llm        LLMService
	skills     SkillService
	extractor  ExtractorService
	storage    StorageService
	policyRepo repositories.PolicyDocumentRepository
	maxRetries int
}

func NewHRService(
	llm LLMService,
	skills SkillService,
	extractor ExtractorService,
	storage StorageService,
	policyRepo repositories.PolicyDocumentRepository,
	maxRetries int,
) HRService {
	return &hrService{
		llm:        llm,
		skills:     skills,
		extractor:  extractor,
		storage:    storage,
		policyRepo: policyRepo,
		maxRetries: maxRetries,
	}
}

// EvaluateCVs implements HRService. The skill taxonomy is extracted once per
// batch; files whose text extraction fails are skipped from the results.
func (h *hrService) EvaluateCVs(ctx context.Context, jdText string, cvFiles []*multipart.FileHeader) (*models.CVEvaluationResponse, error) {
	skills := h.skills.ExtractSkillsFromJD(ctx, jdText)

	results := make([]models.CandidateResult, 0, len(cvFiles))
	for _, fh := range cvFiles {
		cvText, err := h.extractor.ExtractUpload(fh)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", fh.Filename, err)
			continue
		}

		results = append(results, models.CandidateResult{
			Name:        fh.Filename,
			Score:       SimilarityScore(cvText, jdText),
			Evaluation:  h.evaluateCandidate(ctx, cvText, jdText),
			SkillScores: h.skills.GetSkillScores(ctx, cvText, jdText, skills),
			Skills:      skills,
			SkillStatus: h.skills.ExtractSkillStatus(ctx, cvText, jdText),
		})
	}

	// Stable: candidates with equal scores keep their upload order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	ApplyHireRecommendations(results)

	return &models.CVEvaluationResponse{
		Results:       results,
		ExecutiveKPIs: ComputeBatchKPIs(results),
	}, nil
}

// evaluateCandidate asks for a free-text evaluation narrative. The response
// is returned verbatim, never parsed.
func (h *hrService) evaluateCandidate(ctx context.Context, cvText, jdText string) string {
	prompt := fmt.Sprintf(`You are a hiring expert.

Evaluate the CV and Job Description match.
Provide:
1. Eligibility percentage
2. Matching skills
3. Missing skills
4. Final recommendation

CV:
%s

Job Description:
%s`, cvText, jdText)

	evaluation, err := h.llm.GenerateTextWithRetry(ctx, prompt, 0.2, h.maxRetries)
	if err != nil {
		return "Evaluation unavailable."
	}
	return evaluation
}

// UploadPolicies implements HRService. Each file is kept on disk, its text
// extracted and appended to the policy knowledge base; files that fail
// extraction are skipped.
func (h *hrService) UploadPolicies(files []*multipart.FileHeader, uploadedBy uuid.UUID) (*models.PolicyUploadResponse, error) {
	var documentIDs []string

	for _, fh := range files {
		if _, _, err := h.storage.SaveFile(fh, "policy"); err != nil {
			log.Printf("⚠️  Failed to store %s: %v", fh.Filename, err)
		}

		content, err := h.extractor.ExtractUpload(fh)
		if err != nil {
			log.Printf("⚠️  Skipping policy %s: %v", fh.Filename, err)
			continue
		}

		doc := &models.PolicyDocument{
			ID:         uuid.New(),
			Filename:   fh.Filename,
			Content:    CleanText(content),
			UploadedBy: &uploadedBy,
		}
		if err := h.policyRepo.Create(doc); err != nil {
			return nil, fmt.Errorf("failed to save policy document: %w", err)
		}
		documentIDs = append(documentIDs, doc.ID.String())
	}

	return &models.PolicyUploadResponse{
		Message:       fmt.Sprintf("%d policy document(s) uploaded successfully", len(documentIDs)),
		DocumentCount: len(documentIDs),
		DocumentIDs:   documentIDs,
	}, nil
}

// AskPolicyQuestion implements HRService. Answers are grounded strictly in
// the concatenated policy knowledge base.
func (h *hrService) AskPolicyQuestion(ctx context.Context, question string) (string, error) {
	policiesText, err := h.policyRepo.GetAllContent()
	if err != nil {
		return "", err
	}

	if policiesText == "" {
		return "HR policy documents not available. Contact HR.", nil
	}

	prompt := fmt.Sprintf(`Answer ONLY using the HR policies below.
If information not present, say:
"Policy does not specify this."

POLICIES:
%s

QUESTION:
%s`, policiesText, question)

	answer, err := h.llm.GenerateTextWithRetry(ctx, prompt, 0.2, h.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to answer policy question: %w", err)
	}
	return answer, nil
}
