// Package sqlrank ranks embedding rows inside SQLite. It reads the
// parl_embeddings table written by the snapshot package and orders rows with
// the vec_cosine SQL function, producing the same order as the brute-force
// ranker.
package sqlrank
