package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/realty-intake-service/pkg/psqlbuilder"
)

const tableName = "kv_store"

// Store key-value хранилище документов поверх SQL таблицы.
// О типах записей ничего не знает: ключ - строка, значение - JSON документ.
// Транзакций между ключами нет, Set - безусловная перезапись.
type Store struct {
	db      DBExecutor
	dialect psqlbuilder.Dialect
	sb      squirrel.StatementBuilderType
}

// NewStore создает хранилище для указанного диалекта (postgres или sqlite)
func NewStore(db DBExecutor, dialect psqlbuilder.Dialect) (*Store, error) {
	if dialect != psqlbuilder.Postgres && dialect != psqlbuilder.SQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      psqlbuilder.For(dialect),
	}, nil
}

// Migrate создает таблицу, если её ещё нет
func (s *Store) Migrate(ctx context.Context) error {
	var stmts []string
	switch s.dialect {
	case psqlbuilder.Postgres:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			// text_pattern_ops позволяет использовать индекс для LIKE 'prefix%'
			`CREATE INDEX IF NOT EXISTS kv_store_key_prefix_idx ON kv_store (key text_pattern_ops)`,
		}
	default:
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: Migrate - execute ddl: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// Set записывает значение по ключу (upsert, полная перезапись)
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.sb.Insert(tableName).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert key=%s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// Get возвращает значение по ключу.
// Отсутствие ключа - не ошибка: found=false.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.sb.Select("value").
		From(tableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - scan key=%s: %v", ErrUnavailable, key, err)
	}
	return value, true, nil
}

// GetByPrefix возвращает все значения, ключи которых начинаются с prefix.
// Порядок не определён - сортирует вызывающая сторона.
func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	builder := s.sb.Select("value").From(tableName)
	if prefix != "" {
		builder = builder.Where(s.prefixCondition(prefix))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrefix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPrefix - execute query prefix=%s: %v", ErrUnavailable, prefix, err)
	}
	defer rows.Close()

	values := make([][]byte, 0)
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("%w: GetByPrefix - scan row: %v", ErrUnavailable, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPrefix - iterate rows: %v", ErrUnavailable, err)
	}

	return values, nil
}

// Delete удаляет ключ. Удаление отсутствующего ключа не считается ошибкой.
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args, err := s.sb.Delete(tableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute key=%s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// prefixCondition условие "ключ начинается с prefix".
// LIKE в SQLite регистронезависимый, поэтому там используется instr.
func (s *Store) prefixCondition(prefix string) squirrel.Sqlizer {
	if s.dialect == psqlbuilder.SQLite {
		return squirrel.Expr("instr(key, ?) = 1", prefix)
	}
	return squirrel.Expr(`key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
}

// escapeLike экранирует спецсимволы LIKE, чтобы префикс сравнивался буквально
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
