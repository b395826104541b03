package create_booking

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}
