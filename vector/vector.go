package vector

import (
	"slices"

	"github.com/viant/sqlite-vecset/index"
)

// Vector keeps two views over the same unique int32 values: members, the
// canonical ascending set, and sequence, the insertion-ordered positional
// mirror. After every operation set(sequence) == members and
// len(sequence) == members.Len().
type Vector struct {
	members  index.OrderedSet
	sequence []int32
	source   Source
}

// Option configures a Vector.
type Option func(*Vector)

// WithSetKind selects the OrderedSet implementation for the set view.
func WithSetKind(kind index.Kind) Option {
	return func(v *Vector) { v.members = index.New(kind) }
}

// WithSource sets the entropy source used by Random.
func WithSource(src Source) Option {
	return func(v *Vector) {
		if src != nil {
			v.source = src
		}
	}
}

// New returns an empty Vector.
func New(opts ...Option) *Vector {
	v := &Vector{source: DefaultSource}
	for _, opt := range opts {
		opt(v)
	}
	if v.members == nil {
		v.members = index.New(index.KindAuto)
	}
	return v
}

// Size returns the number of elements.
func (v *Vector) Size() int { return v.members.Len() }

// IsEmpty reports whether the vector has no elements.
func (v *Vector) IsEmpty() bool { return v.Size() == 0 }

// IsOdd reports whether the element count is odd.
func (v *Vector) IsOdd() bool { return v.Size()%2 == 1 }

// IsEven reports whether the element count is even.
func (v *Vector) IsEven() bool { return v.Size()%2 == 0 }

// First returns the positional first element.
func (v *Vector) First() (int32, error) {
	if len(v.sequence) == 0 {
		return 0, ErrEmpty
	}
	return v.sequence[0], nil
}

// Last returns the positional last element.
func (v *Vector) Last() (int32, error) {
	if len(v.sequence) == 0 {
		return 0, ErrEmpty
	}
	return v.sequence[len(v.sequence)-1], nil
}

// Begin returns First()-1, an exclusive lower bound for iteration. The
// result is int64 so a first element of math.MinInt32 yields MinInt32-1;
// callers must not feed it back as an element value.
func (v *Vector) Begin() (int64, error) {
	first, err := v.First()
	if err != nil {
		return 0, err
	}
	return int64(first) - 1, nil
}

// End returns Last()+1, an exclusive upper bound for iteration. A last
// element of math.MaxInt32 yields MaxInt32+1, outside the element range.
func (v *Vector) End() (int64, error) {
	last, err := v.Last()
	if err != nil {
		return 0, err
	}
	return int64(last) + 1, nil
}

// Next returns the successor of value in ascending set order.
func (v *Vector) Next(value int32) (int32, error) {
	if err := v.checkNeighbor(value); err != nil {
		return 0, err
	}
	next, ok := v.members.Next(value)
	if !ok {
		return 0, ErrNoSuccessor
	}
	return next, nil
}

// Prev returns the predecessor of value in ascending set order.
func (v *Vector) Prev(value int32) (int32, error) {
	if err := v.checkNeighbor(value); err != nil {
		return 0, err
	}
	prev, ok := v.members.Prev(value)
	if !ok {
		return 0, ErrNoPredecessor
	}
	return prev, nil
}

func (v *Vector) checkNeighbor(value int32) error {
	if v.members.Len() < 2 {
		return ErrTooFew
	}
	if !v.members.Contains(value) {
		return ErrValueNotFound
	}
	return nil
}

// FindValue returns the element at a positional index.
func (v *Vector) FindValue(index int) (int32, error) {
	if index < 0 || index >= len(v.sequence) {
		return 0, ErrIndexOutOfRange
	}
	return v.sequence[index], nil
}

// FindIndex returns the ascending rank of value.
func (v *Vector) FindIndex(value int32) (int, error) {
	rank, ok := v.members.Rank(value)
	if !ok {
		return 0, ErrValueNotFound
	}
	return rank, nil
}

// Random returns a uniformly chosen element.
func (v *Vector) Random() (int32, error) {
	if len(v.sequence) == 0 {
		return 0, ErrEmpty
	}
	return v.sequence[randIndex(v.source, len(v.sequence))], nil
}

// Add appends value unless it is already present. It reports whether the
// value was inserted.
func (v *Vector) Add(value int32) bool {
	if !v.members.Add(value) {
		return false
	}
	v.sequence = append(v.sequence, value)
	return true
}

// Clear empties both views and reports whether anything was removed.
func (v *Vector) Clear() bool {
	if len(v.sequence) == 0 {
		return false
	}
	v.members.Clear()
	v.sequence = v.sequence[:0]
	return true
}

// Remove erases value from both views and reports whether it was present.
func (v *Vector) Remove(value int32) bool {
	if !v.members.Remove(value) {
		return false
	}
	pos := v.position(value)
	v.sequence = slices.Delete(v.sequence, pos, pos+1)
	return true
}

// Delete erases the element at a positional index and returns it.
func (v *Vector) Delete(index int) (int32, error) {
	if index < 0 || index >= len(v.sequence) {
		return 0, ErrIndexOutOfRange
	}
	return v.removeAt(index), nil
}

// PopBack removes and returns the positional last element.
func (v *Vector) PopBack() (int32, error) {
	if len(v.sequence) == 0 {
		return 0, ErrEmpty
	}
	return v.removeAt(len(v.sequence) - 1), nil
}

// PopFront removes and returns the positional first element.
func (v *Vector) PopFront() (int32, error) {
	if len(v.sequence) == 0 {
		return 0, ErrEmpty
	}
	return v.removeAt(0), nil
}

// Replace overwrites oldValue in place with newValue and returns the position
// that was written.
func (v *Vector) Replace(oldValue, newValue int32) (int, error) {
	if !v.members.Contains(oldValue) {
		return 0, ErrValueNotFound
	}
	pos := v.position(oldValue)
	v.replaceAt(pos, newValue)
	return pos, nil
}

// ReplaceIndex overwrites the element at index with newValue and returns the
// replaced value.
func (v *Vector) ReplaceIndex(index int, newValue int32) (int32, error) {
	if index < 0 || index >= len(v.sequence) {
		return 0, ErrIndexOutOfRange
	}
	old := v.sequence[index]
	v.replaceAt(index, newValue)
	return old, nil
}

// Values returns a copy of the positional view.
func (v *Vector) Values() []int32 { return slices.Clone(v.sequence) }

// Sorted returns a copy of the ascending set view.
func (v *Vector) Sorted() []int32 { return v.members.Values() }

// MarshalSet returns a tagged snapshot of the set view; decode it with
// index.Restore.
func (v *Vector) MarshalSet() ([]byte, error) { return index.Snapshot(v.members) }

// Rank returns the ascending rank of value, or -1 when absent.
func (v *Vector) Rank(value int32) int {
	rank, ok := v.members.Rank(value)
	if !ok {
		return -1
	}
	return rank
}

func (v *Vector) position(value int32) int { return slices.Index(v.sequence, value) }

func (v *Vector) removeAt(index int) int32 {
	value := v.sequence[index]
	v.sequence = slices.Delete(v.sequence, index, index+1)
	v.members.Remove(value)
	return value
}

// replaceAt writes newValue at index. When newValue already sits at another
// position the slot is dropped instead, keeping the sequence duplicate-free.
// The set view is then rebuilt from the sequence.
func (v *Vector) replaceAt(index int, newValue int32) {
	if v.sequence[index] == newValue {
		return
	}
	if v.members.Contains(newValue) {
		v.sequence = slices.Delete(v.sequence, index, index+1)
	} else {
		v.sequence[index] = newValue
	}
	v.rebuild()
}

func (v *Vector) rebuild() {
	v.members.Clear()
	for _, value := range v.sequence {
		v.members.Add(value)
	}
}
