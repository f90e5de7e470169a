package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"rakhadian/hr-ai-platform/internal/models"
)

// fakeLLM scripts the model responses for a test. Methods fall back to an
// error when no script is provided.
type fakeLLM struct {
	generateText func(prompt string, temperature float32) (string, error)
	embed        func(text string) ([]float32, error)
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string, temperature float32) (string, error) {
	if f.generateText == nil {
		return "", errors.New("no response scripted")
	}
	return f.generateText(prompt, temperature)
}

func (f *fakeLLM) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeLLM) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if f.embed == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return f.embed(text)
}

// memBookingRepo is an in-memory BookingRepository.
type memBookingRepo struct {
	bookings  []models.Booking
	createErr error
}

func (m *memBookingRepo) Create(booking *models.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memBookingRepo) FindByBookingID(bookingID string) (*models.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].BookingID == bookingID {
			return &m.bookings[i], nil
		}
	}
	return nil, fmt.Errorf("booking not found")
}

func (m *memBookingRepo) ExistsByBookingID(bookingID string) (bool, error) {
	for i := range m.bookings {
		if m.bookings[i].BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookingRepo) Search(bookingID, phone, bookingType string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if bookingID != "" && b.BookingID != bookingID {
			continue
		}
		if phone != "" && b.Phone != phone {
			continue
		}
		if bookingType != "" && string(b.BookingType) != bookingType {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// memPolicyRepo is an in-memory PolicyDocumentRepository.
type memPolicyRepo struct {
	docs []models.PolicyDocument
}

func (m *memPolicyRepo) Create(doc *models.PolicyDocument) error {
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memPolicyRepo) FindAll() ([]models.PolicyDocument, error) {
	return m.docs, nil
}

func (m *memPolicyRepo) GetAllContent() (string, error) {
	var content string
	for i, doc := range m.docs {
		if i > 0 {
			content += "\n\n---\n\n"
		}
		content += doc.Content
	}
	return content, nil
}

// fakeExtractor maps filenames (or paths) to canned text.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) ExtractUpload(fh *multipart.FileHeader) (string, error) {
	return f.lookup(fh.Filename)
}

func (f *fakeExtractor) ExtractFile(path string) (string, error) {
	return f.lookup(path)
}

func (f *fakeExtractor) lookup(key string) (string, error) {
	text, ok := f.texts[key]
	if !ok {
		return "", fmt.Errorf("no text content found in %s", key)
	}
	return text, nil
}

// noopStorage satisfies StorageService without touching disk.
type noopStorage struct{}

func (noopStorage) SaveFile(fh *multipart.FileHeader, fileType string) (string, string, error) {
	return fh.Filename, "/dev/null", nil
}
func (noopStorage) GetFilePath(filename string) string { return filename }
func (noopStorage) DeleteFile(string) error            { return nil }
func (noopStorage) EnsureUploadDir() error             { return nil }

// fakeIndex is a canned VectorIndexService.
type fakeIndex struct {
	passages []string
	buildErr error
}

func (f *fakeIndex) EnsureBuilt(context.Context) error { return f.buildErr }

func (f *fakeIndex) IngestDocument(context.Context, string) error { return nil }

func (f *fakeIndex) Search(_ context.Context, _ string, limit int) ([]string, error) {
	if limit < len(f.passages) {
		return f.passages[:limit], nil
	}
	return f.passages, nil
}
