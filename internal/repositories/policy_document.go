package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"rakhadian/hr-ai-platform/internal/models"
)

type PolicyDocumentRepository interface {
	Create(doc *models.PolicyDocument) error
	FindAll() ([]models.PolicyDocument, error)
	GetAllContent() (string, error)
}

type policyDocumentRepository struct {
	db *gorm.DB
}

func NewPolicyDocumentRepository(db *gorm.DB) PolicyDocumentRepository {
	return &policyDocumentRepository{db: db}
}

// Create implements PolicyDocumentRepository.
func (r *policyDocumentRepository) Create(doc *models.PolicyDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create policy document: %w", err)
	}
	return nil
}

// FindAll implements PolicyDocumentRepository.
func (r *policyDocumentRepository) FindAll() ([]models.PolicyDocument, error) {
	var docs []models.PolicyDocument
	if err := r.db.Order("uploaded_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find policy documents: %w", err)
	}
	return docs, nil
}

// GetAllContent returns the concatenated knowledge base built from every
// stored policy document.
func (r *policyDocumentRepository) GetAllContent() (string, error) {
	docs, err := r.FindAll()
	if err != nil {
		return "", err
	}

	contents := make([]string, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Content)
	}
	return strings.Join(contents, "\n\n---\n\n"), nil
}
