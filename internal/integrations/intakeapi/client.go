package intakeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Client клиент HTTP API приёма заявок
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента; baseURL включает префикс API ("http://host:8080/api/v1")
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateBooking отправляет форму записи и возвращает id бронирования
func (c *Client) CreateBooking(ctx context.Context, in domain.BookingInput) (string, error) {
	payload := bookingPayload{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		ServiceType:  string(in.ServiceType),
		PropertyType: in.PropertyType,
		Budget:       in.Budget,
		Message:      in.Message,
		SelectedDate: in.SelectedDate,
		SelectedTime: in.SelectedTime,
	}

	var resp createBookingResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.BookingID == "" {
		return "", fmt.Errorf("%w: booking id missing in response", ErrInvalidResponse)
	}

	c.log.Info("Booking created: booking_id=%s", resp.BookingID)
	return resp.BookingID, nil
}

// CreateLead отправляет контакт из чата и возвращает id лида
func (c *Client) CreateLead(ctx context.Context, in domain.LeadInput) (string, error) {
	history := in.ConversationHistory
	if history == nil {
		history = []domain.ChatMessage{}
	}
	payload := leadPayload{
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Interest:            in.Interest,
		ConversationHistory: history,
	}

	var resp createLeadResponse
	if err := c.do(ctx, http.MethodPost, "/leads", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.LeadID == "" {
		return "", fmt.Errorf("%w: lead id missing in response", ErrInvalidResponse)
	}

	c.log.Info("Lead created: lead_id=%s", resp.LeadID)
	return resp.LeadID, nil
}

// ListBookings бронирования, новые первыми
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var resp listBookingsResponse
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// ListLeads лиды, новые первыми
func (c *Client) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	var resp listLeadsResponse
	if err := c.do(ctx, http.MethodGet, "/leads", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leads, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	var resp updateBookingResponse
	path := "/bookings/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, statusRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	if resp.Booking == nil {
		return nil, fmt.Errorf("%w: booking missing in response", ErrInvalidResponse)
	}
	return resp.Booking, nil
}

func (c *Client) UpdateLeadStatus(ctx context.Context, id, status string) (*domain.Lead, error) {
	var resp updateLeadResponse
	path := "/leads/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, statusRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	if resp.Lead == nil {
		return nil, fmt.Errorf("%w: lead missing in response", ErrInvalidResponse)
	}
	return resp.Lead, nil
}

// Stats счетчики панели администратора
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return nil, fmt.Errorf("%w: stats missing in response", ErrInvalidResponse)
	}
	return resp.Stats, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var resp Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do выполняет запрос и разбирает ответ в out; статус-коды ошибок переводятся в ошибки пакета
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(method, path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(raw))

	var errResp ErrorResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
		message = errResp.Error
	}

	c.log.Warn("%s %s -> %d: %s", method, path, resp.StatusCode, message)

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrInvalidTransition, message)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrPersistence, message)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, message)
	}
}
