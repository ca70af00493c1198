package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect hides the differences between the supported SQL engines.
// Queries are written with "?" placeholders and passed through Rebind.
type Dialect interface {
	// Name is the value used in configuration ("sqlite", "postgres", "mysql").
	Name() string
	// DriverName is the database/sql driver registered for the engine.
	DriverName() string
	// Rebind rewrites "?" placeholders into the engine's bind syntax.
	Rebind(query string) string
	// UseReturning reports whether INSERT must use RETURNING to read the
	// generated key instead of LastInsertId.
	UseReturning() bool
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
	// Schema returns the idempotent statements that create the tables.
	Schema() []string

	dsn(raw string) string
	configurePool(db *sql.DB)
}

// Supported dialects.
var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
	MySQL    Dialect = mysqlDialect{}
)

// ErrUnknownDriver is returned by DialectFor for unsupported driver names.
var ErrUnknownDriver = errors.New("unknown database driver")

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// ---- sqlite ----

type sqliteDialect struct{}

// sqlitePragmas are applied by the driver to every new connection.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

func (sqliteDialect) Name() string               { return "sqlite" }
func (sqliteDialect) DriverName() string         { return "sqlite" }
func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) UseReturning() bool         { return false }

func (sqliteDialect) IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT 1
);`,
		`CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    published BOOLEAN NOT NULL DEFAULT 0,
    owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT
);`,
		`CREATE INDEX IF NOT EXISTS ix_posts_owner_id ON posts (owner_id);`,
		`CREATE INDEX IF NOT EXISTS ix_posts_title ON posts (title);`,
	}
}

func (sqliteDialect) dsn(raw string) string {
	if raw == "" {
		raw = "app.db"
	}
	if strings.Contains(raw, "_pragma=") {
		return raw
	}
	if strings.Contains(raw, "?") {
		return raw + "&" + sqlitePragmas
	}
	return raw + "?" + sqlitePragmas
}

// SQLite is not great with many writers.
func (sqliteDialect) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
}

// ---- postgres ----

type postgresDialect struct{}

const pgUniqueViolation = "23505"

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "pgx" }
func (postgresDialect) UseReturning() bool { return true }

func (postgresDialect) Rebind(query string) string {
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (postgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);`,
		`CREATE TABLE IF NOT EXISTS posts (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    published BOOLEAN NOT NULL DEFAULT FALSE,
    owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT
);`,
		`CREATE INDEX IF NOT EXISTS ix_posts_owner_id ON posts (owner_id);`,
		`CREATE INDEX IF NOT EXISTS ix_posts_title ON posts (title);`,
	}
}

func (postgresDialect) dsn(raw string) string { return raw }

func (postgresDialect) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
}

// ---- mysql ----

type mysqlDialect struct{}

const mysqlDuplicateEntry = 1062

func (mysqlDialect) Name() string               { return "mysql" }
func (mysqlDialect) DriverName() string         { return "mysql" }
func (mysqlDialect) Rebind(query string) string { return query }
func (mysqlDialect) UseReturning() bool         { return false }

func (mysqlDialect) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared inline.
func (mysqlDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    hashed_password VARCHAR(255) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);`,
		`CREATE TABLE IF NOT EXISTS posts (
    id INT AUTO_INCREMENT PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    content TEXT NOT NULL,
    published BOOLEAN NOT NULL DEFAULT FALSE,
    owner_id INT NOT NULL,
    KEY ix_posts_owner_id (owner_id),
    KEY ix_posts_title (title),
    CONSTRAINT fk_posts_owner FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE RESTRICT
);`,
	}
}

// clientFoundRows makes UPDATE report matched rows rather than changed rows.
func (mysqlDialect) dsn(raw string) string {
	if strings.Contains(raw, "clientFoundRows=") {
		return raw
	}
	if strings.Contains(raw, "?") {
		return raw + "&clientFoundRows=true"
	}
	return raw + "?clientFoundRows=true"
}

func (mysqlDialect) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}
