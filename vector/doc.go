// Package vector implements the dual-view integer container behind every
// registry handle. It includes:
//   - Vector: an ascending unique set (index.OrderedSet) kept in sync with an
//     insertion-ordered positional sequence
//   - Rejection-sampled uniform selection over a 32-bit entropy source
//   - BLOB encoding of positional sequences and distance functions
package vector
