// Package index defines the similarity ranking contract shared by the
// embedding engines. Implementations include an in-memory brute-force
// ranker and a ranker evaluated inside SQLite.
package index
