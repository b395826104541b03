package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ServiceType тип услуги, выбранный в форме записи
type ServiceType string

const (
	ServiceBuy          ServiceType = "buy"
	ServiceSell         ServiceType = "sell"
	ServiceInvest       ServiceType = "invest"
	ServiceRent         ServiceType = "rent"
	ServiceConsultation ServiceType = "consultation"
)

// Booking represents a consultation request created from the booking page
type Booking struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	ServiceType  ServiceType   `json:"serviceType"`
	PropertyType string        `json:"propertyType"`
	Budget       string        `json:"budget"`
	Message      string        `json:"message"`
	SelectedDate string        `json:"selectedDate"` // "2025-03-10"
	SelectedTime string        `json:"selectedTime"` // "10:00 AM"
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
	Source       string        `json:"source"`
}

// BookingInput поля бронирования, которые присылает клиент (без id, статуса и временных меток)
type BookingInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	ServiceType  ServiceType
	PropertyType string
	Budget       string
	Message      string
	SelectedDate string
	SelectedTime string
}

// bookingTransitions допустимые переходы статусов бронирования
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal returns true if no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет переход по таблице; повторная установка того же статуса разрешена
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid returns true if the service type is one of the offered services
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceBuy, ServiceSell, ServiceInvest, ServiceRent, ServiceConsultation:
		return true
	}
	return false
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(status string) (BookingStatus, error) {
	s := BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// IsPending returns true if the booking still awaits a decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// GetID и GetCreatedAt нужны репозиторию для сортировки списков
func (b *Booking) GetID() string { return b.ID }

func (b *Booking) GetCreatedAt() time.Time { return b.CreatedAt }
