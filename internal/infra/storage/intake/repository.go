package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Repository репозиторий бронирований и лидов поверх key-value хранилища.
// Ключи: "booking:<id>", "lead:<id>".
//
// Обновление статуса - read-modify-write без compare-and-swap:
// при параллельных обновлениях одной записи побеждает последний.
type Repository struct {
	store        RecordStore
	ids          IDGenerator
	timeProvider TimeProvider
	logger       Logger
}

// Option настройка репозитория
type Option func(*Repository)

// WithTimeProvider подменяет часы (используется в тестах)
func WithTimeProvider(tp TimeProvider) Option {
	return func(r *Repository) { r.timeProvider = tp }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Repository) { r.ids = g }
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(store RecordStore, logger Logger, opts ...Option) *Repository {
	r := &Repository{
		store:        store,
		ids:          &UUIDGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateBooking создает бронирование со статусом pending
func (r *Repository) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		ID:           r.ids.NewID(domain.KindBooking),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		ServiceType:  in.ServiceType,
		PropertyType: in.PropertyType,
		Budget:       in.Budget,
		Message:      in.Message,
		SelectedDate: in.SelectedDate,
		SelectedTime: in.SelectedTime,
		Status:       domain.StatusPending,
		CreatedAt:    r.now(),
		Source:       domain.SourceBookingPage,
	}

	if err := r.put(ctx, domain.KindBooking.Key(booking.ID), booking); err != nil {
		return nil, fmt.Errorf("CreateBooking: %w", err)
	}
	return booking, nil
}

// CreateLead создает лид со статусом new
func (r *Repository) CreateLead(ctx context.Context, in domain.LeadInput) (*domain.Lead, error) {
	history := in.ConversationHistory
	if history == nil {
		history = []domain.ChatMessage{}
	}

	lead := &domain.Lead{
		ID:                  r.ids.NewID(domain.KindLead),
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Interest:            in.Interest,
		ConversationHistory: history,
		Status:              domain.LeadStatusNew,
		CreatedAt:           r.now(),
		Source:              domain.SourceChatbot,
	}

	if err := r.put(ctx, domain.KindLead.Key(lead.ID), lead); err != nil {
		return nil, fmt.Errorf("CreateLead: %w", err)
	}
	return lead, nil
}

// ListBookings возвращает все бронирования, новые первыми
func (r *Repository) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return listRecords[domain.Booking](ctx, r, domain.KindBooking)
}

// ListLeads возвращает все лиды, новые первыми
func (r *Repository) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	return listRecords[domain.Lead](ctx, r, domain.KindLead)
}

// GetBooking получает бронирование по ID
func (r *Repository) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.load(ctx, domain.KindBooking.Key(id), &booking); err != nil {
		return nil, fmt.Errorf("GetBooking: %w", err)
	}
	return &booking, nil
}

// GetLead получает лид по ID
func (r *Repository) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.load(ctx, domain.KindLead.Key(id), &lead); err != nil {
		return nil, fmt.Errorf("GetLead: %w", err)
	}
	return &lead, nil
}

// UpdateBookingStatus читает бронирование, дописывает status и updatedAt в сохранённый документ
// и записывает его целиком. Поля документа, которых нет в domain.Booking, сохраняются.
// check (может быть nil) получает текущий статус; если он вернул ошибку, хранилище не изменяется.
func (r *Repository) UpdateBookingStatus(
	ctx context.Context,
	id string,
	status domain.BookingStatus,
	check func(current domain.BookingStatus) error,
) (*domain.Booking, error) {
	key := domain.KindBooking.Key(id)

	var booking domain.Booking
	doc, err := r.loadDocument(ctx, key, &booking)
	if err != nil {
		return nil, fmt.Errorf("UpdateBookingStatus: %w", err)
	}

	if check != nil {
		if err := check(booking.Status); err != nil {
			return nil, err
		}
	}

	now := r.now()
	booking.Status = status
	booking.UpdatedAt = &now

	if err := r.putMerged(ctx, key, doc, status, now); err != nil {
		return nil, fmt.Errorf("UpdateBookingStatus: %w", err)
	}
	return &booking, nil
}

// UpdateLeadStatus аналог UpdateBookingStatus для лидов
func (r *Repository) UpdateLeadStatus(
	ctx context.Context,
	id string,
	status domain.LeadStatus,
	check func(current domain.LeadStatus) error,
) (*domain.Lead, error) {
	key := domain.KindLead.Key(id)

	var lead domain.Lead
	doc, err := r.loadDocument(ctx, key, &lead)
	if err != nil {
		return nil, fmt.Errorf("UpdateLeadStatus: %w", err)
	}

	if check != nil {
		if err := check(lead.Status); err != nil {
			return nil, err
		}
	}

	now := r.now()
	lead.Status = status
	lead.UpdatedAt = &now

	if err := r.putMerged(ctx, key, doc, status, now); err != nil {
		return nil, fmt.Errorf("UpdateLeadStatus: %w", err)
	}
	return &lead, nil
}

func (r *Repository) now() time.Time {
	return r.timeProvider.Now().UTC()
}

func (r *Repository) put(ctx context.Context, key string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPersistence, key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrPersistence, key, err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, key string, dst interface{}) error {
	data, err := r.get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return nil
}

// loadDocument декодирует запись в dst и возвращает исходный документ по полям
func (r *Repository) loadDocument(ctx context.Context, key string, dst interface{}) (map[string]json.RawMessage, error) {
	data, err := r.get(ctx, key)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: empty document", ErrCorruptRecord, key)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return doc, nil
}

// putMerged заменяет в документе только status и updatedAt
func (r *Repository) putMerged(
	ctx context.Context,
	key string,
	doc map[string]json.RawMessage,
	status interface{},
	updatedAt time.Time,
) error {
	for field, value := range map[string]interface{}{"status": status, "updatedAt": updatedAt} {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%w: marshal %s.%s: %v", ErrPersistence, key, field, err)
		}
		doc[field] = raw
	}
	return r.put(ctx, key, doc)
}

func (r *Repository) get(ctx context.Context, key string) ([]byte, error) {
	data, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrPersistence, key, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return data, nil
}

// sortable запись, которую можно упорядочить по дате создания
type sortable interface {
	GetID() string
	GetCreatedAt() time.Time
}

// listRecords читает все документы по префиксу и сортирует: createdAt DESC, затем id DESC.
// Битые документы пропускаются с предупреждением, чтобы одна запись не ломала весь список.
func listRecords[T any, PT interface {
	*T
	sortable
}](ctx context.Context, r *Repository, kind domain.RecordKind) ([]*T, error) {
	values, err := r.store.GetByPrefix(ctx, kind.KeyPrefix())
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrPersistence, kind, err)
	}

	records := make([]*T, 0, len(values))
	for _, value := range values {
		record := new(T)
		if err := json.Unmarshal(value, record); err != nil {
			r.logger.Warn("list %s: skipping undecodable record: %v", kind, err)
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := PT(records[i]), PT(records[j])
		if !a.GetCreatedAt().Equal(b.GetCreatedAt()) {
			return a.GetCreatedAt().After(b.GetCreatedAt())
		}
		return a.GetID() > b.GetID()
	})

	return records, nil
}
