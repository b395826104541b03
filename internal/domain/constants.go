package domain

// RecordKind тип записи в хранилище
type RecordKind string

const (
	KindBooking RecordKind = "booking"
	KindLead    RecordKind = "lead"
)

// KeyPrefix возвращает префикс ключей для данного типа записи ("booking:", "lead:")
func (k RecordKind) KeyPrefix() string {
	return string(k) + ":"
}

// Key формирует ключ записи в хранилище
func (k RecordKind) Key(id string) string {
	return k.KeyPrefix() + id
}

// Источники записей
const (
	SourceBookingPage = "booking_page"
	SourceChatbot     = "chatbot"
)

// DefaultInterest используется, если посетитель написал текст вместо выбора варианта
const DefaultInterest = "General inquiry"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
