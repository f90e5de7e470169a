package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rakhadian/hr-ai-platform/internal/models"
)

func newChatFixture(llm *fakeLLM, index *fakeIndex) (ChatService, *memBookingRepo) {
	repo := &memBookingRepo{}
	booking := NewBookingService(repo, llm)
	return NewChatService(llm, index, booking, 3), repo
}

func TestChat_BookingIntentOpensFlow(t *testing.T) {
	llm := &fakeLLM{generateText: func(prompt string, _ float32) (string, error) {
		return "service_booking", nil
	}}
	svc, _ := newChatFixture(llm, &fakeIndex{})

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "I want to book a service for my car",
	})
	require.NoError(t, err)

	assert.Equal(t, models.IntentServiceBooking, resp.Intent)
	assert.True(t, resp.BookingFlow)
	assert.Equal(t, models.BookingStageAwaiting, resp.BookingState.Stage)
	assert.Equal(t, "Service", resp.BookingState.BookingType)
	assert.Contains(t, resp.Response, "Name, Phone, Vehicle Model, Preferred Date")
}

func TestChat_TestDriveIntent(t *testing.T) {
	llm := &fakeLLM{generateText: func(string, float32) (string, error) {
		return "test_drive_booking", nil
	}}
	svc, _ := newChatFixture(llm, &fakeIndex{})

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "can I test drive the EV?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Test Drive", resp.BookingState.BookingType)
}

func TestChat_GeneralQuestionGrounded(t *testing.T) {
	var captured string
	llm := &fakeLLM{generateText: func(prompt string, _ float32) (string, error) {
		if strings.Contains(prompt, "Classify user intent") {
			return "general_question", nil
		}
		captured = prompt
		return "We are open 9am to 6pm on weekdays.", nil
	}}
	index := &fakeIndex{passages: []string{"Opening hours: 9am-6pm Mon-Fri.", "Warranty: 5 years."}}
	svc, _ := newChatFixture(llm, index)

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "what are your opening hours?",
	})
	require.NoError(t, err)

	assert.Equal(t, models.IntentGeneralQuestion, resp.Intent)
	assert.False(t, resp.BookingFlow)
	assert.Equal(t, models.BookingStageIdle, resp.BookingState.Stage)
	assert.Equal(t, "We are open 9am to 6pm on weekdays.", resp.Response)
	assert.Contains(t, captured, "Opening hours: 9am-6pm Mon-Fri.")
}

func TestChat_UnknownIntentTreatedAsGeneral(t *testing.T) {
	llm := &fakeLLM{generateText: func(prompt string, _ float32) (string, error) {
		if strings.Contains(prompt, "Classify user intent") {
			return "purchase_a_yacht", nil
		}
		return "answer", nil
	}}
	svc, _ := newChatFixture(llm, &fakeIndex{})

	resp, err := svc.Chat(context.Background(), models.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentGeneralQuestion, resp.Intent)
}

func TestChat_AwaitingStageConfirmsBooking(t *testing.T) {
	llm := &fakeLLM{generateText: func(prompt string, _ float32) (string, error) {
		if strings.Contains(prompt, "Extract only the booking details") {
			return `{"Name": "Budi", "Phone": "0812", "Vehicle Model": "AutoSphere GT", "Preferred Date": "2026-09-15"}`, nil
		}
		return "", nil
	}}
	svc, repo := newChatFixture(llm, &fakeIndex{})

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message: "Budi, 0812, AutoSphere GT, 2026-09-15",
		BookingState: &models.BookingState{
			Stage:       models.BookingStageAwaiting,
			BookingType: "Service",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStageConfirmed, resp.BookingState.Stage)
	assert.False(t, resp.BookingFlow)
	require.NotNil(t, resp.Booking)
	assert.Contains(t, resp.Response, resp.Booking.BookingID)
	assert.Contains(t, resp.Response, "Service booking confirmed!")
	assert.Len(t, repo.bookings, 1)
}

func TestChat_AwaitingStageRepromptsOnBadInput(t *testing.T) {
	// LLM fails and the message has no key:value lines, so extraction fails.
	svc, repo := newChatFixture(&fakeLLM{}, &fakeIndex{})

	state := &models.BookingState{
		Stage:       models.BookingStageAwaiting,
		BookingType: "Test Drive",
	}
	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message:      "uh I don't remember my phone number",
		BookingState: state,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStageAwaiting, resp.BookingState.Stage)
	assert.Equal(t, "Test Drive", resp.BookingState.BookingType)
	assert.True(t, resp.BookingFlow)
	assert.Contains(t, resp.Response, "couldn't read all the booking details")
	assert.Empty(t, repo.bookings)
}

func TestChat_ConfirmedStageStartsFresh(t *testing.T) {
	llm := &fakeLLM{generateText: func(prompt string, _ float32) (string, error) {
		if strings.Contains(prompt, "Classify user intent") {
			return "general_question", nil
		}
		return "You're welcome!", nil
	}}
	svc, _ := newChatFixture(llm, &fakeIndex{})

	resp, err := svc.Chat(context.Background(), models.ChatRequest{
		Message:      "thanks!",
		BookingState: &models.BookingState{Stage: models.BookingStageConfirmed},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStageIdle, resp.BookingState.Stage)
}

func TestChat_IndexFailureSurfaces(t *testing.T) {
	llm := &fakeLLM{generateText: func(string, float32) (string, error) {
		return "general_question", nil
	}}
	svc, _ := newChatFixture(llm, &fakeIndex{buildErr: assert.AnError})

	_, err := svc.Chat(context.Background(), models.ChatRequest{Message: "hours?"})
	assert.Error(t, err)
}
