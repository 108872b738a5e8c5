// Package query is the entry point for similarity questions: given a
// parliamentarian it ranks every embedding row, keeps the top K and joins
// each hit with its name, sector and, where recorded, the agreement
// proportion of the edge linking it to the subject.
package query
