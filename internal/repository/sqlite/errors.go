package sqlite

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// IsForeignKeyViolation reports whether err is a SQLite foreign key
// constraint failure, e.g. an employee pointing at a missing department.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// IsNoSuchTable reports whether err was caused by querying a table that
// does not exist.
func IsNoSuchTable(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrError && strings.Contains(sqliteErr.Error(), "no such table")
}
