package intakeapi

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// ErrorResponse модель ошибки от API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
}

type createLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
}

type listBookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

type listLeadsResponse struct {
	Leads []domain.Lead `json:"leads"`
}

type updateBookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

type updateLeadResponse struct {
	Lead *domain.Lead `json:"lead"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Stats счетчики панели администратора
type Stats struct {
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TotalLeads      int `json:"totalLeads"`
	NewLeads        int `json:"newLeads"`
}

type statsResponse struct {
	Stats *Stats `json:"stats"`
}

// Health ответ проверки живости
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type bookingPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ServiceType  string `json:"serviceType"`
	PropertyType string `json:"propertyType"`
	Budget       string `json:"budget"`
	Message      string `json:"message"`
	SelectedDate string `json:"selectedDate"`
	SelectedTime string `json:"selectedTime"`
}

type leadPayload struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	Interest            string               `json:"interest"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}
