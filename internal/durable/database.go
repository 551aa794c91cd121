// Package durable opens the connection to the persistent note datastore
package durable

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// the postgres driver registers itself on import
	_ "github.com/lib/pq"
)

type ConnectionInfo struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SslMode  string
}

func (c ConnectionInfo) String() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", c.Username, c.Password, c.Host, c.Port, c.Database, c.SslMode)
}

func OpenDatabaseClient(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(16)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
