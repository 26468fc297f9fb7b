package bitmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

const signBit = 1 << 31

func key(v int32) uint32   { return uint32(v) ^ signBit }
func value(k uint32) int32 { return int32(k ^ signBit) }

// Set is an ascending int32 set over a roaring bitmap.
type Set struct {
	bm *roaring.Bitmap
}

// New returns an empty Set.
func New() *Set { return &Set{bm: roaring.New()} }

func (s *Set) bitmap() *roaring.Bitmap {
	if s.bm == nil {
		s.bm = roaring.New()
	}
	return s.bm
}

// Add inserts v and reports whether it was absent.
func (s *Set) Add(v int32) bool { return s.bitmap().CheckedAdd(key(v)) }

// Remove deletes v and reports whether it was present.
func (s *Set) Remove(v int32) bool { return s.bitmap().CheckedRemove(key(v)) }

// Contains reports membership.
func (s *Set) Contains(v int32) bool { return s.bitmap().Contains(key(v)) }

// Len returns the cardinality.
func (s *Set) Len() int { return int(s.bitmap().GetCardinality()) }

// Clear removes all values.
func (s *Set) Clear() { s.bitmap().Clear() }

// Rank returns the ascending position of v.
func (s *Set) Rank(v int32) (int, bool) {
	bm := s.bitmap()
	k := key(v)
	if !bm.Contains(k) {
		return 0, false
	}
	// roaring's Rank counts values <= k.
	return int(bm.Rank(k)) - 1, true
}

// Select returns the value at ascending rank.
func (s *Set) Select(rank int) (int32, bool) {
	if rank < 0 || rank >= s.Len() {
		return 0, false
	}
	k, err := s.bitmap().Select(uint32(rank))
	if err != nil {
		return 0, false
	}
	return value(k), true
}

// Next returns the successor of a present value.
func (s *Set) Next(v int32) (int32, bool) {
	r, ok := s.Rank(v)
	if !ok {
		return 0, false
	}
	return s.Select(r + 1)
}

// Prev returns the predecessor of a present value.
func (s *Set) Prev(v int32) (int32, bool) {
	r, ok := s.Rank(v)
	if !ok {
		return 0, false
	}
	return s.Select(r - 1)
}

// Values returns an ascending copy.
func (s *Set) Values() []int32 {
	keys := s.bitmap().ToArray()
	out := make([]int32, len(keys))
	for i, k := range keys {
		out[i] = value(k)
	}
	return out
}

// MarshalBinary uses the portable roaring serialization.
func (s *Set) MarshalBinary() ([]byte, error) {
	return s.bitmap().MarshalBinary()
}

// UnmarshalBinary restores the set from the portable roaring serialization.
func (s *Set) UnmarshalBinary(data []byte) error {
	bm := roaring.New()
	if err := bm.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("bitmap: invalid data: %w", err)
	}
	s.bm = bm
	return nil
}
