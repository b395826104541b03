package kvstore

import "errors"

var (
	// ErrUnavailable возвращается, когда хранилище недоступно или запрос завершился ошибкой
	ErrUnavailable = errors.New("kvstore: store unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("kvstore: failed to build query")

	// ErrUnsupportedDialect возвращается для неизвестного SQL-диалекта
	ErrUnsupportedDialect = errors.New("kvstore: unsupported dialect")
)
