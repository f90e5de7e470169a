package models

// Chat intents returned by the intent classifier.
const (
	IntentServiceBooking   = "service_booking"
	IntentTestDriveBooking = "test_drive_booking"
	IntentGeneralQuestion  = "general_question"
)

// Booking flow stages. The stage travels with the client as an explicit
// token so each chat turn is a pure state transition.
const (
	BookingStageIdle      = "idle"
	BookingStageAwaiting  = "awaiting_booking"
	BookingStageConfirmed = "confirmed"
)

// BookingState is the conversational state token passed by the caller on
// every chat turn and returned with the response.
type BookingState struct {
	Stage       string `json:"stage"`
	BookingType string `json:"booking_type,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Message      string        `json:"message" validate:"required,min=1"`
	ChatHistory  []ChatMessage `json:"chat_history"`
	BookingState *BookingState `json:"booking_state"`
}

type ChatResponse struct {
	Response     string       `json:"response"`
	Intent       string       `json:"intent,omitempty"`
	BookingFlow  bool         `json:"booking_flow"`
	BookingState BookingState `json:"booking_state"`
	Booking      *Booking     `json:"booking,omitempty"`
}

type BookingCreateRequest struct {
	BookingType     string `json:"booking_type" validate:"required"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	VehicleModel    string `json:"vehicle_model"`
	PreferredDate   string `json:"preferred_date"`
	NaturalLanguage string `json:"natural_language"`
}
