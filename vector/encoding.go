package vector

import (
	"encoding/binary"
	"fmt"
)

// EncodeValues encodes a positional sequence into a BLOB: a little-endian
// sequence of int32 values without a length prefix; the length is derived
// from the BLOB size on decode.
func EncodeValues(values []int32) []byte {
	if len(values) == 0 {
		return nil
	}
	b := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
	}
	return b
}

// DecodeValues decodes a BLOB produced by EncodeValues.
func DecodeValues(b []byte) ([]int32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid values blob length %d (not multiple of 4)", len(b))
	}
	values := make([]int32, len(b)/4)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return values, nil
}
