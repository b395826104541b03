package list_bookings

import "github.com/m04kA/realty-intake-service/internal/service/bookings/models"

// ListBookingsResponse HTTP response model
type ListBookingsResponse struct {
	Success  bool                     `json:"success"`
	Bookings []models.BookingResponse `json:"bookings"`
}
