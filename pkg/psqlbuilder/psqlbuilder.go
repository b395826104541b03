package psqlbuilder

import "github.com/Masterminds/squirrel"

// Dialect SQL-диалект хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// psql билдер с плейсхолдерами $1, $2 ...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// For возвращает билдер с плейсхолдерами нужного диалекта
func For(d Dialect) squirrel.StatementBuilderType {
	if d == Postgres {
		return psql
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}
