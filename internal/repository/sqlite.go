package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// foldFunc is available in every connection; SQLite's own LIKE and lower()
// only fold ASCII.
const foldFunc = "casefold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return foldCase(v), nil
		case []byte:
			return foldCase(string(v)), nil
		default:
			return v, nil
		}
	})
}

// foldCase applies Unicode case folding, so "ÉTÉ" and "été" compare equal.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// SQLite TIMESTAMP text format; values are always stored in UTC.
const timestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed id %q: %w", s, err)
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
