// Package vector holds the numeric primitives shared by the dataset, the
// similarity engines and the SQLite snapshot:
//   - dot product, magnitude and cosine similarity (zero-norm pairs score 0)
//   - Euclidean distance
//   - embedding encoding (BLOB) for SQLite storage
package vector
