package models

import (
	"time"

	"github.com/google/uuid"
)

// PolicyDocument stores the extracted text of an uploaded HR policy file.
// Rows are append-only; the concatenation of all rows forms the policy
// knowledge base used for Q&A.
type PolicyDocument struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename   string     `gorm:"type:text;not null" json:"filename"`
	Content    string     `gorm:"type:text;not null" json:"-"`
	UploadedAt time.Time  `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
	UploadedBy *uuid.UUID `gorm:"type:uuid" json:"uploaded_by,omitempty"`
}

func (PolicyDocument) TableName() string {
	return "policy_documents"
}
