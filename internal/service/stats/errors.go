package stats

import "errors"

// ErrInternal возвращается, если не удалось прочитать одну из коллекций
var ErrInternal = errors.New("stats: internal error")
