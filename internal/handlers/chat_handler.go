package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/services"
)

type ChatHandler struct {
	chatService    services.ChatService
	bookingService services.BookingService
}

func NewChatHandler(chatService services.ChatService, bookingService services.BookingService) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		bookingService: bookingService,
	}
}

// HandleChat handles POST /autosphere/chat
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Message) == "" {
		return errorResponse(c, fiber.StatusBadRequest, "message is required")
	}

	resp, err := h.chatService.Chat(c.Context(), req)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error processing chat message: %v", err))
	}

	return successResponse(c, "Chat processed", resp)
}

// HandleCreateBooking handles POST /autosphere/bookings
func (h *ChatHandler) HandleCreateBooking(c *fiber.Ctx) error {
	var req models.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if errs := validateStruct(req); errs != nil {
		return validationErrorResponse(c, errs)
	}

	booking, err := h.bookingService.Create(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrMissingBookingDetails) || errors.Is(err, services.ErrInvalidBookingType) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error creating booking: %v", err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created",
		"data":    booking,
	})
}

// HandleSearchBookings handles GET /autosphere/bookings
func (h *ChatHandler) HandleSearchBookings(c *fiber.Ctx) error {
	bookingID := c.Query("booking_id")
	phone := c.Query("phone")
	bookingType := c.Query("booking_type")

	bookings, err := h.bookingService.Search(bookingID, phone, bookingType)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error searching bookings: %v", err))
	}

	return successResponse(c, "Bookings retrieved", bookings)
}

// HandleGetBooking handles GET /autosphere/bookings/:booking_id
func (h *ChatHandler) HandleGetBooking(c *fiber.Ctx) error {
	bookingID := c.Params("booking_id")

	booking, err := h.bookingService.GetByBookingID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, fiber.StatusNotFound,
				fmt.Sprintf("Booking %s not found", bookingID))
		}
		return errorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Error retrieving booking: %v", err))
	}

	return successResponse(c, "Booking retrieved", booking)
}
