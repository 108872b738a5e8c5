package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based snapshots, pass a path like "./parlgraph.db". For in-memory
// databases, pass ":memory:". In-memory databases are private to a single
// connection, so the pool is capped at one connection for them.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenWithFunctions registers the vector SQL functions and then opens dsn,
// so every connection of the returned pool can call vec_cosine and vec_l2.
func OpenWithFunctions(dsn string) (*sql.DB, error) {
	if err := RegisterVectorFunctions(nil); err != nil {
		return nil, err
	}
	return Open(dsn)
}
