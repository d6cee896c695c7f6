package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrStorage wraps any failure of the underlying database
var ErrStorage = errors.New("storage error")

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// isDuplicateKeyError checks for a unique constraint violation on any of the supported engines
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL error code 23505 = unique_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	// MySQL error 1062 = ER_DUP_ENTRY
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
