package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTypeService   BookingType = "Service"
	BookingTypeTestDrive BookingType = "Test Drive"
)

func ValidBookingType(t string) bool {
	return t == string(BookingTypeService) || t == string(BookingTypeTestDrive)
}

type Booking struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_id"`
	BookingType   BookingType `gorm:"type:varchar(20);not null" json:"booking_type"`
	Name          string      `gorm:"type:varchar(100);not null" json:"name"`
	Phone         string      `gorm:"type:varchar(20);not null;index" json:"phone"`
	VehicleModel  string      `gorm:"type:varchar(100);not null" json:"vehicle_model"`
	PreferredDate *time.Time  `gorm:"type:date" json:"preferred_date,omitempty"`
	CreatedAt     time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
