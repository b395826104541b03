package domain

import "time"

// LeadStatus represents the status of a chatbot lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusCompleted LeadStatus = "completed"
)

// Sender автор сообщения в переписке с ботом
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage одно сообщение истории переписки, сохраняемое вместе с лидом
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Lead represents a contact record collected by the conversational widget
type Lead struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	Interest            string        `json:"interest"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
	Status              LeadStatus    `json:"status"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           *time.Time    `json:"updatedAt,omitempty"`
	Source              string        `json:"source"`
}

// LeadInput поля лида, которые присылает клиент
type LeadInput struct {
	Name                string
	Email               string
	Phone               string
	Interest            string
	ConversationHistory []ChatMessage
}

// leadTransitions допустимые переходы статусов лида (только вперёд по воронке)
var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:       {LeadStatusContacted, LeadStatusQualified, LeadStatusCompleted},
	LeadStatusContacted: {LeadStatusQualified, LeadStatusCompleted},
	LeadStatusQualified: {LeadStatusCompleted},
	LeadStatusCompleted: nil,
}

func (s LeadStatus) IsValid() bool {
	_, ok := leadTransitions[s]
	return ok
}

func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusCompleted
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range leadTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseLeadStatus конвертирует строку в LeadStatus с валидацией
func ParseLeadStatus(status string) (LeadStatus, error) {
	s := LeadStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// IsNew returns true if nobody has contacted the lead yet
func (l *Lead) IsNew() bool {
	return l.Status == LeadStatusNew
}

func (l *Lead) GetID() string { return l.ID }

func (l *Lead) GetCreatedAt() time.Time { return l.CreatedAt }
