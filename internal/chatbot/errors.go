package chatbot

import "errors"

var (
	// ErrUnknownOption вариант не предлагается на текущем шаге
	ErrUnknownOption = errors.New("chatbot: option not offered at this step")

	// ErrUnexpectedEvent событие не имеет смысла на текущем шаге (например, форма вне lead-capture)
	ErrUnexpectedEvent = errors.New("chatbot: event not expected at this step")

	// ErrSubmissionInFlight форма уже отправлена, ждём результат
	ErrSubmissionInFlight = errors.New("chatbot: lead submission already in flight")

	// ErrInvalidScript сценарий не прошёл проверку
	ErrInvalidScript = errors.New("chatbot: invalid script")
)
