package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"rakhadian/hr-ai-platform/internal/middleware"
	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/services"
)

type HRHandler struct {
	hrService        services.HRService
	technicalService services.TechnicalService
	extractor        services.ExtractorService
	maxFileSize      int64
}

func NewHRHandler(
	hrService services.HRService,
	technicalService services.TechnicalService,
	extractor services.ExtractorService,
	maxFileSize int64,
) *HRHandler {
	return &HRHandler{
		hrService:        hrService,
		technicalService: technicalService,
		extractor:        extractor,
		maxFileSize:      maxFileSize,
	}
}

// HandleEvaluateCVs handles POST /hr/cv/evaluate
func (h *HRHandler) HandleEvaluateCVs(c *fiber.Ctx) error {
	jdText := c.FormValue("job_description")
	if jdText == "" {
		return errorResponse(c, fiber.StatusBadRequest, "job_description is required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	cvFiles := form.File["cv_files"]
	if len(cvFiles) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "At least one CV file is required")
	}
	for _, fh := range cvFiles {
		if fh.Size > h.maxFileSize {
			return errorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("File %s too large. Max size: %d bytes", fh.Filename, h.maxFileSize))
		}
	}

	result, err := h.hrService.EvaluateCVs(c.Context(), jdText, cvFiles)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error evaluating CVs: %v", err))
	}

	return successResponse(c, "CV evaluation completed", result)
}

// HandleUploadPolicies handles POST /hr/policy/upload (HR Manager only)
func (h *HRHandler) HandleUploadPolicies(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	policyFiles := form.File["policy_files"]
	if len(policyFiles) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "At least one policy file is required")
	}

	result, err := h.hrService.UploadPolicies(policyFiles, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error uploading policies: %v", err))
	}

	return successResponse(c, result.Message, result)
}

// HandleAskPolicyQuestion handles POST /hr/policy/ask
func (h *HRHandler) HandleAskPolicyQuestion(c *fiber.Ctx) error {
	var req models.PolicyQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if errs := validateStruct(req); errs != nil {
		return validationErrorResponse(c, errs)
	}

	answer, err := h.hrService.AskPolicyQuestion(c.Context(), req.Question)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error answering policy question: %v", err))
	}

	return successResponse(c, "Policy question answered", models.PolicyQuestionResponse{Answer: answer})
}

// HandleGenerateQuestions handles POST /hr/technical/generate-questions (HR Manager only)
func (h *HRHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	jdText := c.FormValue("job_description")
	if jdText == "" {
		return errorResponse(c, fiber.StatusBadRequest, "job_description is required")
	}

	cvFile, err := c.FormFile("cv_file")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "CV file is required")
	}

	cvText, err := h.extractor.ExtractUpload(cvFile)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Error processing CV: %v", err))
	}

	questions, err := h.technicalService.GenerateQuestions(c.Context(), cvText, jdText)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error generating questions: %v", err))
	}

	return successResponse(c, "Technical questions generated", models.TechnicalQuestionResponse{Questions: questions})
}

// HandleEvaluateAnswers handles POST /hr/technical/evaluate-answers (HR Manager only)
func (h *HRHandler) HandleEvaluateAnswers(c *fiber.Ctx) error {
	var req models.TechnicalAnswerEvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if errs := validateStruct(req); errs != nil {
		return validationErrorResponse(c, errs)
	}
	if len(req.Questions) != len(req.Answers) {
		return errorResponse(c, fiber.StatusBadRequest, "Number of questions and answers must match")
	}

	result, err := h.technicalService.EvaluateAnswers(c.Context(), req.Questions, req.Answers)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error evaluating answers: %v", err))
	}

	return successResponse(c, "Technical evaluation completed", result)
}
