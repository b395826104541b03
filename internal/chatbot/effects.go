package chatbot

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Effect то, что клиент должен выполнить или показать после перехода
type Effect interface {
	effect()
}

// Typing индикатор "печатает" перед сообщением бота
type Typing struct{ Delay time.Duration }

// BotMessage новое сообщение бота (уже добавлено в Session.Log)
type BotMessage struct{ Message Message }

// ShowLeadForm показать форму контактов
type ShowLeadForm struct{}

// ValidationError форма заполнена не полностью; запрос не отправляется
type ValidationError struct{ Text string }

// SubmitLead отправить лид в API; результат вернуть событием SubmissionSucceeded/SubmissionFailed
type SubmitLead struct{ Payload domain.LeadInput }

type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

// Notify всплывающее уведомление
type Notify struct {
	Level NotifyLevel
	Text  string
}

// OpenBooking перейти на страницу записи на консультацию
type OpenBooking struct{}

func (Typing) effect()          {}
func (BotMessage) effect()      {}
func (ShowLeadForm) effect()    {}
func (ValidationError) effect() {}
func (SubmitLead) effect()      {}
func (Notify) effect()          {}
func (OpenBooking) effect()     {}
