package sorted

import (
	"encoding/binary"
	"errors"
	"slices"
)

// Set is an ascending int32 set over a sorted slice. The zero value is ready to use.
type Set struct {
	values []int32
}

func (s *Set) search(v int32) (int, bool) { return slices.BinarySearch(s.values, v) }

// Add inserts v and reports whether it was absent.
func (s *Set) Add(v int32) bool {
	i, found := s.search(v)
	if found {
		return false
	}
	s.values = slices.Insert(s.values, i, v)
	return true
}

// Remove deletes v and reports whether it was present.
func (s *Set) Remove(v int32) bool {
	i, found := s.search(v)
	if !found {
		return false
	}
	s.values = slices.Delete(s.values, i, i+1)
	return true
}

// Contains reports membership.
func (s *Set) Contains(v int32) bool {
	_, found := s.search(v)
	return found
}

// Len returns the number of values.
func (s *Set) Len() int { return len(s.values) }

// Clear removes all values.
func (s *Set) Clear() { s.values = s.values[:0] }

// Rank returns the ascending position of v.
func (s *Set) Rank(v int32) (int, bool) { return s.search(v) }

// Select returns the value at ascending rank.
func (s *Set) Select(rank int) (int32, bool) {
	if rank < 0 || rank >= len(s.values) {
		return 0, false
	}
	return s.values[rank], true
}

// Next returns the successor of a present value.
func (s *Set) Next(v int32) (int32, bool) {
	i, found := s.search(v)
	if !found {
		return 0, false
	}
	return s.Select(i + 1)
}

// Prev returns the predecessor of a present value.
func (s *Set) Prev(v int32) (int32, bool) {
	i, found := s.search(v)
	if !found {
		return 0, false
	}
	return s.Select(i - 1)
}

// Values returns an ascending copy.
func (s *Set) Values() []int32 { return slices.Clone(s.values) }

// MarshalBinary stores: n(uint32), then n little-endian int32 values.
func (s *Set) MarshalBinary() ([]byte, error) {
	out := make([]byte, 4+4*len(s.values))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(s.values)))
	for i, v := range s.values {
		binary.LittleEndian.PutUint32(out[4+i*4:], uint32(v))
	}
	return out, nil
}

// UnmarshalBinary restores the set from bytes. Values must be strictly ascending.
func (s *Set) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return errors.New("sorted: invalid data")
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) != 4+4*n {
		return errors.New("sorted: truncated")
	}
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(data[4+i*4:]))
		if i > 0 && values[i] <= values[i-1] {
			return errors.New("sorted: values not strictly ascending")
		}
	}
	s.values = values
	return nil
}
