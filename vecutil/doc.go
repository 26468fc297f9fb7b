// Package vecutil provides a small Go client over the vecset SQL surface:
// the vector_* scalar functions and a vector_elements virtual table.
package vecutil
