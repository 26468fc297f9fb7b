// Package vec implements the vector_elements SQLite virtual table, a
// read-only relational view over the vectors of a vecset host.
//
// Each row is one element of one vector:
//
//	CREATE VIRTUAL TABLE ve USING vector_elements;
//	SELECT position, value, rank FROM ve WHERE vector_id = ?;
//
// Rows come out in positional (insertion) order; rank is the element's
// 0-based ascending rank in the vector's set view. The vector_id equality
// constraint is required and pushed down to the host.
package vec
