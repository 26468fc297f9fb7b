// Package sorted provides a baseline ordered int32 set backed by a sorted
// slice. Lookups use binary search; inserts and removals shift the tail.
package sorted
