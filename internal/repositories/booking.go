package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rakhadian/hr-ai-platform/internal/models"
)

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByBookingID(bookingID string) (*models.Booking, error)
	ExistsByBookingID(bookingID string) (bool, error)
	Search(bookingID, phone, bookingType string) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create implements BookingRepository.
func (r *bookingRepository) Create(booking *models.Booking) error {
	if err := r.db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// FindByBookingID implements BookingRepository.
func (r *bookingRepository) FindByBookingID(bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Where("booking_id = ?", bookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// ExistsByBookingID implements BookingRepository.
func (r *bookingRepository) ExistsByBookingID(bookingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check booking id: %w", err)
	}
	return count > 0, nil
}

// Search implements BookingRepository.
func (r *bookingRepository) Search(bookingID, phone, bookingType string) ([]models.Booking, error) {
	query := r.db.Model(&models.Booking{})

	if bookingID != "" {
		query = query.Where("booking_id = ?", bookingID)
	}
	if phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if bookingType != "" {
		query = query.Where("booking_type = ?", bookingType)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return bookings, nil
}
