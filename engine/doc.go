// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the vec_cosine
// and vec_l2 scalar functions over float64 embedding BLOBs. It keeps a thin
// surface so the snapshot store and the SQL ranker share one driver instance.
package engine
