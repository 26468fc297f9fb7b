package engine

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:". Register functions with RegisterVectorFunctions
// before opening so new connections see them.
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

var shared struct {
	mu  sync.Mutex
	dsn string
	db  *sql.DB
}

// Shared returns the process-wide database handle, opening it on first use.
// Virtual table modules attach only to the first connection the driver
// creates, so the handle is pinned to that single connection and every
// session reuses it. Callers must not Close it. Asking for a different dsn
// after the first call is an error.
func Shared(dsn string) (*sql.DB, error) {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.db != nil {
		if dsn != shared.dsn {
			return nil, fmt.Errorf("engine: shared database already open at %q, requested %q", shared.dsn, dsn)
		}
		return shared.db, nil
	}
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	shared.dsn, shared.db = dsn, db
	return db, nil
}
