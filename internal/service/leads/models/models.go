package models

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// ChatMessage сообщение переписки в запросе и ответе
type ChatMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateLeadRequest контакт, собранный ботом
type CreateLeadRequest struct {
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	Interest            string        `json:"interest"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
}

// ToDomainInput конвертирует запрос в domain модель
func (r *CreateLeadRequest) ToDomainInput() domain.LeadInput {
	history := make([]domain.ChatMessage, 0, len(r.ConversationHistory))
	for _, msg := range r.ConversationHistory {
		history = append(history, domain.ChatMessage{
			Text:      msg.Text,
			Sender:    domain.Sender(msg.Sender),
			Timestamp: msg.Timestamp,
		})
	}

	return domain.LeadInput{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		Interest:            r.Interest,
		ConversationHistory: history,
	}
}

// UpdateStatusRequest запрос на обновление статуса лида
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// LeadResponse ответ с данными лида
type LeadResponse struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	Interest            string        `json:"interest"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
	Status              string        `json:"status"`
	Source              string        `json:"source"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           *time.Time    `json:"updatedAt,omitempty"`
}

// LeadListResponse ответ со списком лидов
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
}

// FromDomainLead конвертирует domain модель в DTO
func FromDomainLead(l *domain.Lead) *LeadResponse {
	if l == nil {
		return nil
	}

	history := make([]ChatMessage, 0, len(l.ConversationHistory))
	for _, msg := range l.ConversationHistory {
		history = append(history, ChatMessage{
			Text:      msg.Text,
			Sender:    string(msg.Sender),
			Timestamp: msg.Timestamp,
		})
	}

	return &LeadResponse{
		ID:                  l.ID,
		Name:                l.Name,
		Email:               l.Email,
		Phone:               l.Phone,
		Interest:            l.Interest,
		ConversationHistory: history,
		Status:              string(l.Status),
		Source:              l.Source,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// FromDomainLeadList конвертирует список domain моделей в DTO
func FromDomainLeadList(leads []*domain.Lead) *LeadListResponse {
	resp := &LeadListResponse{
		Leads: make([]LeadResponse, 0, len(leads)),
	}

	for _, lead := range leads {
		if leadResp := FromDomainLead(lead); leadResp != nil {
			resp.Leads = append(resp.Leads, *leadResp)
		}
	}

	return resp
}
