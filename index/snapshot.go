package index

import (
	"errors"
	"fmt"

	"github.com/viant/sqlite-vecset/index/bitmap"
	"github.com/viant/sqlite-vecset/index/sorted"
)

// Snapshot tags identify the implementation that produced the payload.
const (
	tagBitmap byte = 'b'
	tagSorted byte = 's'
)

// Snapshot serializes set behind a one-byte kind tag so Restore can pick the
// matching implementation.
func Snapshot(set OrderedSet) ([]byte, error) {
	var tag byte
	switch set.(type) {
	case *bitmap.Set:
		tag = tagBitmap
	case *sorted.Set:
		tag = tagSorted
	default:
		return nil, fmt.Errorf("index: snapshot of unsupported set %T", set)
	}
	data, err := set.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append([]byte{tag}, data...), nil
}

// Restore decodes a Snapshot.
func Restore(data []byte) (OrderedSet, error) {
	if len(data) == 0 {
		return nil, errors.New("index: empty snapshot")
	}
	var set OrderedSet
	switch data[0] {
	case tagBitmap:
		set = bitmap.New()
	case tagSorted:
		set = &sorted.Set{}
	default:
		return nil, fmt.Errorf("index: unknown snapshot tag %q", data[0])
	}
	if err := set.UnmarshalBinary(data[1:]); err != nil {
		return nil, err
	}
	return set, nil
}
