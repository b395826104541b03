package intakeapi

import "errors"

var (
	// ErrNotFound запись с таким id не найдена (404)
	ErrNotFound = errors.New("intakeapi client: record not found")

	// ErrBadRequest статус вне перечисления или тело запроса отклонено (400)
	ErrBadRequest = errors.New("intakeapi client: bad request")

	// ErrInvalidTransition переход статуса запрещен (409)
	ErrInvalidTransition = errors.New("intakeapi client: invalid status transition")

	// ErrPersistence сервис не смог сохранить или прочитать данные (500)
	ErrPersistence = errors.New("intakeapi client: service failed to persist data")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("intakeapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("intakeapi client: invalid response")
)
