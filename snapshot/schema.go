package snapshot

import (
	"context"
	"database/sql"
)

// Table names of a dataset snapshot.
const (
	NodesTable      = "parl_nodes"
	EdgesTable      = "parl_edges"
	IndexTable      = "parl_index"
	EmbeddingsTable = "parl_embeddings"
)

// position columns keep the load order of the source document.
var snapshotSchema = []string{
	`CREATE TABLE IF NOT EXISTS parl_nodes (
    position  INTEGER PRIMARY KEY,
    name      TEXT NOT NULL,
    sector    TEXT,
    image_url TEXT
);`,
	`CREATE TABLE IF NOT EXISTS parl_edges (
    position  INTEGER PRIMARY KEY,
    person_a  TEXT NOT NULL,
    person_b  TEXT NOT NULL,
    agreement REAL
);`,
	`CREATE TABLE IF NOT EXISTS parl_index (
    position  INTEGER PRIMARY KEY,
    name      TEXT NOT NULL,
    row_index INTEGER NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS parl_embeddings (
    row_index INTEGER PRIMARY KEY,
    embedding BLOB
);`,
}

// EnsureSchema creates the snapshot tables in the provided database if they
// do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range snapshotSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
