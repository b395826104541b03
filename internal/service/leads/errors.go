package leads

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStatus возвращается при попытке установить статус вне перечисления
	ErrInvalidStatus = errors.New("invalid lead status")

	// ErrInvalidTransition возвращается, когда переход из текущего статуса запрещен
	ErrInvalidTransition = errors.New("invalid lead status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
