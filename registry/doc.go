// Package registry hands out 1-based handles to vectors. Slots are never
// reused or compacted: a handle stays valid until the whole registry is torn
// down at the end of a host session.
package registry
