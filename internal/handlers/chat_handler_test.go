package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rakhadian/hr-ai-platform/internal/middleware"
	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/services"
)

type fakeChatService struct {
	resp *models.ChatResponse
	err  error
}

func (f *fakeChatService) Chat(context.Context, models.ChatRequest) (*models.ChatResponse, error) {
	return f.resp, f.err
}

type fakeBookingService struct {
	booking *models.Booking
	err     error
}

func (f *fakeBookingService) Create(context.Context, models.BookingCreateRequest) (*models.Booking, error) {
	return f.booking, f.err
}

func (f *fakeBookingService) ExtractBookingDetails(context.Context, string) (map[string]string, bool) {
	return nil, false
}

func (f *fakeBookingService) Search(string, string, string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.booking == nil {
		return nil, nil
	}
	return []models.Booking{*f.booking}, nil
}

func (f *fakeBookingService) GetByBookingID(string) (*models.Booking, error) {
	if f.booking == nil {
		return nil, fmt.Errorf("booking not found: %w", gorm.ErrRecordNotFound)
	}
	return f.booking, f.err
}

type staticAuthService struct {
	token  string
	claims *services.AuthClaims
}

func (s *staticAuthService) Login(string, string) (*models.LoginResponse, error) {
	return nil, fmt.Errorf("not supported")
}

func (s *staticAuthService) VerifyToken(token string) (*services.AuthClaims, error) {
	if token == s.token {
		return s.claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func chatApp(chat services.ChatService, booking services.BookingService) *fiber.App {
	app := fiber.New()
	h := NewChatHandler(chat, booking)
	app.Post("/chat", h.HandleChat)
	app.Post("/bookings", h.HandleCreateBooking)
	app.Get("/bookings", h.HandleSearchBookings)
	app.Get("/bookings/:booking_id", h.HandleGetBooking)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestHandleChat(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		chat := &fakeChatService{resp: &models.ChatResponse{
			Response:     "Hello!",
			Intent:       models.IntentGeneralQuestion,
			BookingState: models.BookingState{Stage: models.BookingStageIdle},
		}}
		app := chatApp(chat, &fakeBookingService{})

		resp := postJSON(t, app, "/chat", models.ChatRequest{Message: "hi"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, true, envelope["success"])
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "Hello!", data["response"])
	})

	t.Run("empty message", func(t *testing.T) {
		app := chatApp(&fakeChatService{}, &fakeBookingService{})

		resp := postJSON(t, app, "/chat", models.ChatRequest{Message: "   "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		app := chatApp(&fakeChatService{err: assert.AnError}, &fakeBookingService{})

		resp := postJSON(t, app, "/chat", models.ChatRequest{Message: "hi"})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandleCreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		booking := &models.Booking{BookingID: "AS-20260830-1234", Name: "Budi"}
		app := chatApp(&fakeChatService{}, &fakeBookingService{booking: booking})

		resp := postJSON(t, app, "/bookings", models.BookingCreateRequest{
			BookingType: "Service", Name: "Budi", Phone: "0812", VehicleModel: "GT",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "AS-20260830-1234", data["booking_id"])
	})

	t.Run("missing booking_type fails validation", func(t *testing.T) {
		app := chatApp(&fakeChatService{}, &fakeBookingService{})

		resp := postJSON(t, app, "/bookings", models.BookingCreateRequest{Name: "Budi"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("invalid type maps to bad request", func(t *testing.T) {
		app := chatApp(&fakeChatService{}, &fakeBookingService{err: services.ErrInvalidBookingType})

		resp := postJSON(t, app, "/bookings", models.BookingCreateRequest{
			BookingType: "Car Wash", Name: "Budi", Phone: "0812", VehicleModel: "GT",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleGetBooking_NotFound(t *testing.T) {
	app := chatApp(&fakeChatService{}, &fakeBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/bookings/AS-20260830-9999", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAutosphereRoutes_RequireAuth(t *testing.T) {
	auth := &staticAuthService{
		token:  "good-token",
		claims: &services.AuthClaims{Username: "tester", Role: models.RoleEmployee},
	}

	app := fiber.New()
	h := NewChatHandler(&fakeChatService{resp: &models.ChatResponse{Response: "hi"}},
		&fakeBookingService{booking: &models.Booking{BookingID: "AS-20260830-1234"}})

	autosphere := app.Group("/autosphere", middleware.RequireAuth(auth))
	autosphere.Post("/chat", h.HandleChat)
	autosphere.Get("/bookings", h.HandleSearchBookings)
	autosphere.Get("/bookings/:booking_id", h.HandleGetBooking)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/autosphere/chat"},
		{http.MethodGet, "/autosphere/bookings"},
		{http.MethodGet, "/autosphere/bookings/AS-20260830-1234"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path+" unauthenticated", func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	t.Run("authenticated request passes the guard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/autosphere/bookings", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHandleSearchBookings(t *testing.T) {
	booking := &models.Booking{BookingID: "AS-20260830-1234", Phone: "0812"}
	app := chatApp(&fakeChatService{}, &fakeBookingService{booking: booking})

	req := httptest.NewRequest(http.MethodGet, "/bookings?phone=0812", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].([]interface{})
	require.Len(t, data, 1)
}
