package chatbot

// Event действие посетителя или результат отправки лида
type Event interface {
	event()
}

// Pick выбор варианта ответа
type Pick struct{ Option string }

// Text свободный текст из поля ввода
type Text struct{ Body string }

// SubmitForm отправка формы контактов
type SubmitForm struct {
	Name  string
	Email string
	Phone string
}

// SubmissionSucceeded API сохранил лид
type SubmissionSucceeded struct{ LeadID string }

// SubmissionFailed API вернул ошибку или был недоступен
type SubmissionFailed struct{ Err error }

// Reset начать диалог заново
type Reset struct{}

func (Pick) event()                {}
func (Text) event()                {}
func (SubmitForm) event()          {}
func (SubmissionSucceeded) event() {}
func (SubmissionFailed) event()    {}
func (Reset) event()               {}
