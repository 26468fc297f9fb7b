// Package index defines the ordered set abstraction used as the canonical,
// ascending view of a vector, plus kind resolution for its implementations.
package index
