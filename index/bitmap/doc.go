// Package bitmap provides an ordered int32 set backed by a roaring bitmap.
// Signed values are mapped onto uint32 keys by flipping the sign bit, which
// preserves ascending order, so rank and select come straight from the
// bitmap in O(log n).
package bitmap
