package index

// OrderedSet defines the canonical set view of a vector: unique int32 values
// kept in ascending order with rank/select queries.
type OrderedSet interface {
	// Add inserts v and reports whether it was absent.
	Add(v int32) bool

	// Remove deletes v and reports whether it was present.
	Remove(v int32) bool

	// Contains reports membership.
	Contains(v int32) bool

	// Len returns the number of values.
	Len() int

	// Clear removes all values.
	Clear()

	// Rank returns the 0-based ascending position of v, or false when v is absent.
	Rank(v int32) (int, bool)

	// Select returns the value at the given ascending rank.
	Select(rank int) (int32, bool)

	// Next returns the smallest value greater than v. v must be present.
	Next(v int32) (int32, bool)

	// Prev returns the largest value smaller than v. v must be present.
	Prev(v int32) (int32, bool)

	// Values returns an ascending copy of all values.
	Values() []int32

	// MarshalBinary serializes the set into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the set from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}
