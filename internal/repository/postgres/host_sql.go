package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var tablePlaceholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// ErrHostSchema означает, что таблицы или колонки хоста не найдены
var ErrHostSchema = errors.New("host schema mismatch (check database.table_prefix)")

// hostSQL подставляет имена таблиц хоста с префиксом вместо {table}
func hostSQL(db *gorm.DB, query string) string {
	return tablePlaceholder.ReplaceAllStringFunc(query, func(m string) string {
		return db.NamingStrategy.TableName(m[1 : len(m)-1])
	})
}

// classifyError помечает ошибки отсутствующей схемы хоста как ErrHostSchema
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUndefinedObject(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrHostSchema, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUndefinedObject проверяет 42P01 (undefined_table) и 42703 (undefined_column)
// для pgconn и lib/pq драйверов
func isUndefinedObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "42P01" || pgErr.Code == "42703") {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == "42P01" || pqErr.Code == "42703") {
		return true
	}
	return false
}
