package update_booking_status

import "github.com/m04kA/realty-intake-service/internal/service/bookings/models"

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}
