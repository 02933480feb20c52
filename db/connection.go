package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vr33ni-dev/mystic-cards-api/diag"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second
)

// Store is a Postgres-backed diagnostics handle.
type Store struct {
	db   *sql.DB
	name string
}

var _ diag.Handle = (*Store)(nil)

// Open connects to the optional diagnostics database. It never fails the
// caller: an empty DSN is Absent, an unreachable server is Uninitialized.
// Close releases the connection when the returned capability holds one.
func Open(ctx context.Context, dsn string, log logrus.FieldLogger) (diag.Capability, func() error) {
	return open(ctx, driverName, dsn, log)
}

func open(ctx context.Context, driver, dsn string, log logrus.FieldLogger) (diag.Capability, func() error) {
	noop := func() error { return nil }
	if dsn == "" {
		log.Info("DB_URL not set, database diagnostics disabled")
		return diag.Absent(), noop
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		log.WithError(err).Error("cannot open database")
		// Keep the driver's own message; the report shows only its head.
		return diag.Failed(err), noop
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		log.WithError(err).Warn("cannot reach database")
		_ = conn.Close()
		return diag.Uninitialized(), noop
	}

	var name string
	if err := conn.QueryRowContext(ctx, `SELECT current_database()`).Scan(&name); err != nil {
		log.WithError(err).Warn("cannot read database name")
	}

	log.WithField("database", name).Info("database connected")
	s := &Store{db: conn, name: name}
	return diag.Ready(s), conn.Close
}

// Name returns the current database name, or "" if it could not be read.
func (s *Store) Name() string { return s.name }

// ListCollectionNames lists the tables of the current schema by name.
func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}
