package domain

import "errors"

var (
	// ErrInvalidStatus возвращается, когда статус не входит в перечисление для данного типа записи
	ErrInvalidStatus = errors.New("domain: invalid status")

	// ErrInvalidTransition возвращается при недопустимом переходе между статусами
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
