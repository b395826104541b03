package intake

import "errors"

var (
	// ErrNotFound возвращается, когда запись с таким id отсутствует
	ErrNotFound = errors.New("intake.repository: record not found")

	// ErrPersistence возвращается, когда хранилище не смогло прочитать или записать данные
	ErrPersistence = errors.New("intake.repository: persistence failure")

	// ErrCorruptRecord возвращается, когда сохранённый документ не удаётся разобрать
	ErrCorruptRecord = errors.New("intake.repository: corrupt record")
)
