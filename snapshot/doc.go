// Package snapshot persists a parliamentarian dataset into SQLite tables and
// restores it with the original ordering of nodes, edges and index entries.
// Embeddings are stored as float64 BLOBs so the SQL ranker can score them
// with vec_cosine.
package snapshot
