// Package dataset holds the immutable parliamentarian graph: nodes, edges,
// the name to embedding-row mapping and the embedding matrix. It derives a
// reverse row to name map and an undirected pair to edge index once at
// construction, and exposes read-only lookups over them.
package dataset
