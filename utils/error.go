package utils

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorDuplicateRecord = errors.New("record already exists")
)

// ValidationError marks missing/malformed user input (400-class).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
// TranslateError in the gorm config covers most drivers; the MySQL errno and
// sqlite message checks keep this reliable when the raw driver error leaks.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
