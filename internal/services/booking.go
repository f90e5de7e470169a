package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/repositories"
)

var (
	ErrInvalidBookingType    = errors.New("invalid booking type")
	ErrMissingBookingDetails = errors.New("name, phone and vehicle model are required")
)

// Booking detail keys the field extraction must produce.
const (
	fieldName          = "Name"
	fieldPhone         = "Phone"
	fieldVehicleModel  = "Vehicle Model"
	fieldPreferredDate = "Preferred Date"
)

var bookingFields = []string{fieldName, fieldPhone, fieldVehicleModel, fieldPreferredDate}

// BookingService creates and looks up AutoSphere bookings. Booking rows are
// immutable once created.
type BookingService interface {
	Create(ctx context.Context, req models.BookingCreateRequest) (*models.Booking, error)
	ExtractBookingDetails(ctx context.Context, userText string) (map[string]string, bool)
	Search(bookingID, phone, bookingType string) ([]models.Booking, error)
	GetByBookingID(bookingID string) (*models.Booking, error)
}

type bookingService struct {
	repo repositories.BookingRepository
	llm  LLMService
}

func NewBookingService(repo repositories.BookingRepository, llm LLMService) BookingService {
	return &bookingService{repo: repo, llm: llm}
}

// Create implements BookingService. When the request carries natural
// language, extracted fields take precedence over the structured ones.
func (b *bookingService) Create(ctx context.Context, req models.BookingCreateRequest) (*models.Booking, error) {
	if !models.ValidBookingType(req.BookingType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookingType, req.BookingType)
	}

	name, phone, vehicleModel, preferredDate := req.Name, req.Phone, req.VehicleModel, req.PreferredDate
	if req.NaturalLanguage != "" {
		extracted, ok := b.ExtractBookingDetails(ctx, req.NaturalLanguage)
		if !ok {
			return nil, fmt.Errorf("could not extract booking details from natural language")
		}
		name = extracted[fieldName]
		phone = extracted[fieldPhone]
		vehicleModel = extracted[fieldVehicleModel]
		preferredDate = extracted[fieldPreferredDate]
	}

	if name == "" || phone == "" || vehicleModel == "" {
		return nil, ErrMissingBookingDetails
	}

	bookingID, err := b.newBookingID()
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:           uuid.New(),
		BookingID:    bookingID,
		BookingType:  models.BookingType(req.BookingType),
		Name:         name,
		Phone:        phone,
		VehicleModel: vehicleModel,
		CreatedAt:    time.Now(),
	}

	if preferredDate != "" {
		if d, err := time.Parse("2006-01-02", preferredDate); err == nil {
			booking.PreferredDate = &d
		}
	}

	if err := b.repo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// newBookingID generates an AS-YYYYMMDD-NNNN id, retrying while the random
// suffix collides with a stored booking.
func (b *bookingService) newBookingID() (string, error) {
	const maxAttempts = 5

	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := fmt.Sprintf("AS-%s-%04d", time.Now().Format("20060102"), 1000+rand.Intn(9000))

		exists, err := b.repo.ExistsByBookingID(id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking id after %d attempts", maxAttempts)
}

// ExtractBookingDetails implements BookingService. The LLM response is tried
// as strict JSON, then as a single-quoted literal structure; as a last resort
// the user's own text is scanned line by line for "key: value" pairs. All
// four fields must be present for the extraction to succeed.
func (b *bookingService) ExtractBookingDetails(ctx context.Context, userText string) (map[string]string, bool) {
	prompt := fmt.Sprintf(`Extract only the booking details from the text and return as JSON with double quotes.
Do not add extra text.

Fields required:
- Name
- Phone
- Vehicle Model
- Preferred Date (YYYY-MM-DD)

Text:
%s`, userText)

	response, err := b.llm.GenerateText(ctx, prompt, 0)
	if err == nil {
		if details, ok := parseBookingJSON(response); ok {
			return details, true
		}
		// Permissive pass for single-quoted pseudo-JSON.
		if details, ok := parseBookingJSON(strings.ReplaceAll(response, "'", `"`)); ok {
			return details, true
		}
	}

	return parseBookingLines(userText)
}

func parseBookingJSON(text string) (map[string]string, bool) {
	var data map[string]string
	if !decodeObject(text, &data) {
		return nil, false
	}
	for _, field := range bookingFields {
		if strings.TrimSpace(data[field]) == "" {
			return nil, false
		}
	}
	return data, true
}

func parseBookingLines(text string) (map[string]string, bool) {
	data := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "name":
			data[fieldName] = val
		case "phone":
			data[fieldPhone] = val
		case "vehicle model":
			data[fieldVehicleModel] = val
		case "preferred date":
			data[fieldPreferredDate] = val
		}
	}

	if len(data) != len(bookingFields) {
		return nil, false
	}
	return data, true
}

// Search implements BookingService.
func (b *bookingService) Search(bookingID, phone, bookingType string) ([]models.Booking, error) {
	return b.repo.Search(bookingID, phone, bookingType)
}

// GetByBookingID implements BookingService.
func (b *bookingService) GetByBookingID(bookingID string) (*models.Booking, error) {
	return b.repo.FindByBookingID(bookingID)
}
