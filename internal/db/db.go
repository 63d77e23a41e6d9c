// Package db reads the legacy publishing platform's relational schema.
// One connection, ad hoc SELECTs, no writes.
package db

import (
	"database/sql"
	"fmt"
	"net"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"spip2jekyll/internal/config"
)

// DB wraps the single connection to the legacy database.
type DB struct {
	conn   *sql.DB
	prefix string // table_prefix + site_prefix, trusted operator input
}

// Open connects to the legacy schema. For mysql the DSN is built from the
// resolved settings (unix socket wins over host/port); for sqlite DBName is
// the database file path.
func Open(cfg config.Settings) (*DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.Driver {
	case "mysql":
		conn, err = sql.Open("mysql", mysqlDSN(cfg))
	case "sqlite":
		conn, err = sql.Open("sqlite", cfg.DBName)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// One-shot batch run: a single connection is all we ever use.
	conn.SetMaxOpenConns(1)

	return &DB{conn: conn, prefix: cfg.TablePrefix + cfg.SitePrefix}, nil
}

// Conn returns the underlying sql.DB for custom queries.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Table prepends the configured prefixes to a base table name. The prefix
// is interpolated, not escaped: it comes from the operator, never from
// row data.
func (d *DB) Table(name string) string {
	return d.prefix + name
}

func mysqlDSN(cfg config.Settings) string {
	cred := cfg.User
	if cfg.Pass != "" {
		cred = cred + ":" + cfg.Pass
	}

	addr := fmt.Sprintf("unix(%s)", cfg.Socket)
	if cfg.Socket == "" {
		addr = fmt.Sprintf("tcp(%s)", net.JoinHostPort(cfg.Host, cfg.Port))
	}

	return fmt.Sprintf("%s@%s/%s", cred, addr, cfg.DBName)
}
