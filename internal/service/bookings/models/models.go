package models

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Request модели

// CreateBookingRequest данные формы записи на консультацию
type CreateBookingRequest struct {
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

// ToDomainInput конвертирует запрос в domain модель
func (r *CreateBookingRequest) ToDomainInput() domain.BookingInput {
	return domain.BookingInput{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		ServiceType:  domain.ServiceType(r.ServiceType),
		PropertyType: r.PropertyType,
		Budget:       r.Budget,
		Message:      r.Message,
		SelectedDate: r.SelectedDate,
		SelectedTime: r.SelectedTime,
	}
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	ServiceType  string     `json:"serviceType"`
	PropertyType string     `json:"propertyType"`
	Budget       string     `json:"budget"`
	Message      string     `json:"message"`
	SelectedDate string     `json:"selectedDate"`
	SelectedTime string     `json:"selectedTime"`
	Status       string     `json:"status"`
	Source       string     `json:"source"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Email:        b.Email,
		Phone:        b.Phone,
		ServiceType:  string(b.ServiceType),
		PropertyType: b.PropertyType,
		Budget:       b.Budget,
		Message:      b.Message,
		SelectedDate: b.SelectedDate,
		SelectedTime: b.SelectedTime,
		Status:       string(b.Status),
		Source:       b.Source,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
