package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

var (
	// ErrValidation не заполнены обязательные поля; запрос не отправлялся
	ErrValidation = errors.New("scheduling: please fill in all required fields")

	// ErrSubmit API не сохранил запись
	ErrSubmit = errors.New("scheduling: failed to book consultation")
)

// BookingClient отправляет бронирование в API и возвращает его id
type BookingClient interface {
	CreateBooking(ctx context.Context, in domain.BookingInput) (string, error)
}

// Form форма записи на консультацию
type Form struct {
	SelectedDate string // YYYY-MM-DD
	SelectedTime string // "10:00 AM"

	FirstName    string
	LastName     string
	Email        string
	Phone        string
	ServiceType  string
	PropertyType string
	Budget       string
	Message      string
}

// Confirmation данные экрана подтверждения
type Confirmation struct {
	BookingID string
	Date      string
	Time      string
}

func (c Confirmation) Summary() string {
	return fmt.Sprintf("Your consultation has been scheduled for %s at %s", c.Date, c.Time)
}

// MissingFields обязательные поля, оставшиеся пустыми, в порядке формы
func (f *Form) MissingFields() []string {
	required := []struct{ name, value string }{
		{"selectedDate", f.SelectedDate},
		{"selectedTime", f.SelectedTime},
		{"firstName", f.FirstName},
		{"email", f.Email},
		{"serviceType", f.ServiceType},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

func (f *Form) Validate() error {
	if missing := f.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Input поля формы в виде domain модели
func (f *Form) Input() domain.BookingInput {
	return domain.BookingInput{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        strings.TrimSpace(f.Email),
		Phone:        strings.TrimSpace(f.Phone),
		ServiceType:  domain.ServiceType(f.ServiceType),
		PropertyType: f.PropertyType,
		Budget:       f.Budget,
		Message:      f.Message,
		SelectedDate: f.SelectedDate,
		SelectedTime: f.SelectedTime,
	}
}

// Submit проверяет форму и отправляет её. При ошибке валидации сеть не используется.
// Повторная запись создаёт новое бронирование: редактирования нет.
func (f *Form) Submit(ctx context.Context, client BookingClient) (*Confirmation, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id, err := client.CreateBooking(ctx, f.Input())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}

	return &Confirmation{BookingID: id, Date: f.SelectedDate, Time: f.SelectedTime}, nil
}
