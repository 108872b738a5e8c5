package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/vector"
)

// SQLiteStore saves and loads dataset snapshots.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a snapshot store. It ensures the snapshot schema
// exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("snapshot: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying database.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Save replaces the stored snapshot with ds in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("snapshot: dataset is nil")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{NodesTable, EdgesTable, IndexTable, EmbeddingsTable} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	nodes := ds.Nodes()
	if err := insertAll(ctx, tx, `INSERT INTO parl_nodes(position, name, sector, image_url) VALUES(?, ?, ?, ?)`,
		len(nodes), func(stmt *sql.Stmt, i int) error {
			n := nodes[i]
			_, err := stmt.ExecContext(ctx, i, n.Name, n.Sector, n.ImageURL)
			return err
		}); err != nil {
		return err
	}
	edges := ds.Edges()
	if err := insertAll(ctx, tx, `INSERT INTO parl_edges(position, person_a, person_b, agreement) VALUES(?, ?, ?, ?)`,
		len(edges), func(stmt *sql.Stmt, i int) error {
			e := edges[i]
			_, err := stmt.ExecContext(ctx, i, e.PersonA, e.PersonB, e.Agreement)
			return err
		}); err != nil {
		return err
	}
	entries := ds.Entries()
	if err := insertAll(ctx, tx, `INSERT INTO parl_index(position, name, row_index) VALUES(?, ?, ?)`,
		len(entries), func(stmt *sql.Stmt, i int) error {
			_, err := stmt.ExecContext(ctx, i, entries[i].Name, entries[i].Row)
			return err
		}); err != nil {
		return err
	}
	rows := ds.Rows()
	if err := insertAll(ctx, tx, `INSERT INTO parl_embeddings(row_index, embedding) VALUES(?, ?)`,
		len(rows), func(stmt *sql.Stmt, i int) error {
			blob, err := vector.EncodeEmbedding(rows[i])
			if err != nil {
				return err
			}
			_, err = stmt.ExecContext(ctx, i, blob)
			return err
		}); err != nil {
		return err
	}
	return tx.Commit()
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, n int, exec func(stmt *sql.Stmt, i int) error) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return err
		}
	}
	return nil
}

// Load restores the stored snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*dataset.Dataset, error) {
	var nodes []dataset.Node
	if err := scanAll(ctx, s.db, `SELECT name, COALESCE(sector, ''), COALESCE(image_url, '') FROM parl_nodes ORDER BY position`,
		func(rows *sql.Rows) error {
			var n dataset.Node
			if err := rows.Scan(&n.Name, &n.Sector, &n.ImageURL); err != nil {
				return err
			}
			nodes = append(nodes, n)
			return nil
		}); err != nil {
		return nil, err
	}

	var edges []dataset.Edge
	if err := scanAll(ctx, s.db, `SELECT person_a, person_b, COALESCE(agreement, 0) FROM parl_edges ORDER BY position`,
		func(rows *sql.Rows) error {
			var e dataset.Edge
			if err := rows.Scan(&e.PersonA, &e.PersonB, &e.Agreement); err != nil {
				return err
			}
			edges = append(edges, e)
			return nil
		}); err != nil {
		return nil, err
	}

	var entries []dataset.IndexEntry
	if err := scanAll(ctx, s.db, `SELECT name, row_index FROM parl_index ORDER BY position`,
		func(rows *sql.Rows) error {
			var e dataset.IndexEntry
			if err := rows.Scan(&e.Name, &e.Row); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		}); err != nil {
		return nil, err
	}

	var embeddings [][]float64
	if err := scanAll(ctx, s.db, `SELECT row_index, embedding FROM parl_embeddings ORDER BY row_index`,
		func(rows *sql.Rows) error {
			var row int
			var blob []byte
			if err := rows.Scan(&row, &blob); err != nil {
				return err
			}
			if row != len(embeddings) {
				return fmt.Errorf("snapshot: embedding rows not contiguous: got %d, want %d", row, len(embeddings))
			}
			vec, err := vector.DecodeEmbedding(blob)
			if err != nil {
				return err
			}
			embeddings = append(embeddings, vec)
			return nil
		}); err != nil {
		return nil, err
	}

	return dataset.New(nodes, edges, entries, embeddings), nil
}

func scanAll(ctx context.Context, db *sql.DB, query string, scan func(rows *sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
