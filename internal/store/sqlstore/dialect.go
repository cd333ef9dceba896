package sqlstore

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect names a supported SQL backend.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// sqlitePragmas are applied by the driver on every new connection.
// _txlock=immediate makes BEGIN take the write lock up front, so two
// writers never deadlock upgrading a read lock.
var sqlitePragmas = url.Values{
	"_pragma": {
		"foreign_keys(1)",
		"busy_timeout(5000)",
		"journal_mode(WAL)",
		"synchronous(NORMAL)",
	},
	"_txlock": {"immediate"},
}

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case DialectSQLite, DialectPostgres:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// driverDSN returns the database/sql driver name and DSN for target.
func (d Dialect) driverDSN(target string) (driver, dsn string, err error) {
	switch d {
	case DialectSQLite:
		if target == "" {
			return "", "", errors.New("sqlite database path is empty")
		}
		return "sqlite", "file:" + target + "?" + sqlitePragmas.Encode(), nil
	case DialectPostgres:
		if target == "" {
			return "", "", errors.New("postgres DSN is empty")
		}
		return "pgx", target, nil
	default:
		return "", "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// rebind rewrites ? placeholders to $1, $2, ... for Postgres.
// Queries in this package never contain a literal question mark.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// isUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY
// constraint.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
