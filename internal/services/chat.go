package services

import (
	"context"
	"fmt"
	"strings"

	"rakhadian/hr-ai-platform/internal/models"
)

// ChatService drives the AutoSphere assistant. The booking flow state is an
// explicit token carried by the caller on every turn, so each turn is a pure
// state transition over (state, message).
type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type chatService struct {
	llm     LLMService
	index   VectorIndexService
	booking BookingService
	topK    int
}

func NewChatService(llm LLMService, index VectorIndexService, booking BookingService, topK int) ChatService {
	return &chatService{
		llm:     llm,
		index:   index,
		booking: booking,
		topK:    topK,
	}
}

// Chat implements ChatService.
func (c *chatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	state := models.BookingState{Stage: models.BookingStageIdle}
	if req.BookingState != nil {
		state = *req.BookingState
	}

	if state.Stage == models.BookingStageAwaiting {
		return c.collectBookingFields(ctx, state, req.Message)
	}
	return c.classifyAndRespond(ctx, req.Message, req.ChatHistory)
}

// classifyAndRespond handles the idle stage: a booking intent opens the
// collection stage, anything else is answered from the policy index.
func (c *chatService) classifyAndRespond(ctx context.Context, message string, history []models.ChatMessage) (*models.ChatResponse, error) {
	intent := c.classifyIntent(ctx, message)

	if intent == models.IntentServiceBooking || intent == models.IntentTestDriveBooking {
		bookingType := models.BookingTypeService
		if intent == models.IntentTestDriveBooking {
			bookingType = models.BookingTypeTestDrive
		}

		return &models.ChatResponse{
			Response: fmt.Sprintf(
				"Sure! Let's book your %s.\nPlease provide Name, Phone, Vehicle Model, Preferred Date (YYYY-MM-DD) in one message.",
				bookingType),
			Intent:      intent,
			BookingFlow: true,
			BookingState: models.BookingState{
				Stage:       models.BookingStageAwaiting,
				BookingType: string(bookingType),
			},
		}, nil
	}

	answer, err := c.answerGeneralQuestion(ctx, message, history)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Response:     answer,
		Intent:       intent,
		BookingFlow:  false,
		BookingState: models.BookingState{Stage: models.BookingStageIdle},
	}, nil
}

// collectBookingFields handles the awaiting stage: the message is run
// through field extraction; failure keeps the stage and re-prompts.
func (c *chatService) collectBookingFields(ctx context.Context, state models.BookingState, message string) (*models.ChatResponse, error) {
	details, ok := c.booking.ExtractBookingDetails(ctx, message)
	if !ok {
		return &models.ChatResponse{
			Response:     "I couldn't read all the booking details. Please provide Name, Phone, Vehicle Model, Preferred Date (YYYY-MM-DD) in one message.",
			BookingFlow:  true,
			BookingState: state,
		}, nil
	}

	booking, err := c.booking.Create(ctx, models.BookingCreateRequest{
		BookingType:   state.BookingType,
		Name:          details[fieldName],
		Phone:         details[fieldPhone],
		VehicleModel:  details[fieldVehicleModel],
		PreferredDate: details[fieldPreferredDate],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &models.ChatResponse{
		Response: fmt.Sprintf("%s booking confirmed! Booking ID: %s",
			booking.BookingType, booking.BookingID),
		BookingFlow:  false,
		BookingState: models.BookingState{Stage: models.BookingStageConfirmed},
		Booking:      booking,
	}, nil
}

// classifyIntent labels the message with one of the three intents. Anything
// the model returns outside the label set counts as a general question.
func (c *chatService) classifyIntent(ctx context.Context, message string) string {
	prompt := fmt.Sprintf(`Classify user intent:
- service_booking
- test_drive_booking
- general_question

Message: %s
Return only intent in lowercase.`, message)

	response, err := c.llm.GenerateText(ctx, prompt, 0)
	if err != nil {
		return models.IntentGeneralQuestion
	}

	switch intent := strings.ToLower(strings.TrimSpace(response)); intent {
	case models.IntentServiceBooking, models.IntentTestDriveBooking, models.IntentGeneralQuestion:
		return intent
	default:
		return models.IntentGeneralQuestion
	}
}

func (c *chatService) answerGeneralQuestion(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if err := c.index.EnsureBuilt(ctx); err != nil {
		return "", fmt.Errorf("policy index unavailable: %w", err)
	}

	passages, err := c.index.Search(ctx, message, c.topK)
	if err != nil {
		return "", err
	}

	var conversation strings.Builder
	for _, m := range history {
		conversation.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
	}

	prompt := fmt.Sprintf(`You are AutoSphere AI, the assistant of AutoSphere Motors.
Answer the user's question using the context below.

CONTEXT:
%s

%sUser: %s`, strings.Join(passages, "\n"), conversation.String(), message)

	answer, err := c.llm.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	return answer, nil
}
