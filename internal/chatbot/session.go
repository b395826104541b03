package chatbot

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Step шаг диалога. Кроме фиксированных шагов есть шаги тем из сценария ("buying", "selling", ...)
type Step string

const (
	StepGreeting       Step = "greeting"
	StepLeadCapture    Step = "lead-capture"
	StepPostSubmission Step = "post-submission"
)

func (s Step) reserved() bool {
	return s == StepGreeting || s == StepLeadCapture || s == StepPostSubmission
}

// MessageKind как клиент должен отрисовать сообщение
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindOptions  MessageKind = "options"
	KindLeadForm MessageKind = "lead-form"
)

// Message сообщение в истории переписки
type Message struct {
	Text      string
	Sender    domain.Sender
	Timestamp time.Time
	Kind      MessageKind
	Options   []string
}

// Draft контактные данные, которые посетитель вводит в форму
type Draft struct {
	Name     string
	Email    string
	Phone    string
	Interest string
}

// Session состояние одного диалога. Значение принадлежит вызывающему коду;
// Engine.Handle возвращает новую сессию и не изменяет переданную.
type Session struct {
	Step    Step
	Log     []Message
	Draft   Draft
	Options []string // варианты, которые можно выбрать сейчас

	Submitting bool   // SubmitLead выдан, результат ещё не пришёл
	LeadID     string // id сохранённого лида после успешной отправки
	Ended      bool   // посетитель выбрал завершение диалога
}

// Offers проверяет, предлагается ли вариант на текущем шаге
func (s Session) Offers(option string) bool {
	for _, o := range s.Options {
		if o == option {
			return true
		}
	}
	return false
}

// History история в формате, который сохраняется вместе с лидом
func (s Session) History() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.Log))
	for i, m := range s.Log {
		out[i] = domain.ChatMessage{Text: m.Text, Sender: m.Sender, Timestamp: m.Timestamp}
	}
	return out
}

func (s Session) clone() Session {
	c := s
	c.Log = make([]Message, len(s.Log))
	copy(c.Log, s.Log)
	c.Options = cloneStrings(s.Options)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
