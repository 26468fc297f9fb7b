package index

import (
	"fmt"
	"strings"

	"github.com/viant/sqlite-vecset/index/bitmap"
	"github.com/viant/sqlite-vecset/index/sorted"
)

// Kind names an OrderedSet implementation.
type Kind string

const (
	// KindAuto resolves to the default implementation.
	KindAuto Kind = "auto"
	// KindBitmap is a roaring bitmap with O(log n) rank and select.
	KindBitmap Kind = "bitmap"
	// KindSorted is a sorted slice with binary search.
	KindSorted Kind = "sorted"
)

// ParseKind parses a case-insensitive kind name. Empty means auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindBitmap, KindSorted:
		return k, nil
	default:
		return "", fmt.Errorf("index: unsupported set kind %q", s)
	}
}

// New returns an empty OrderedSet of the given kind.
func New(kind Kind) OrderedSet {
	switch kind {
	case KindSorted:
		return &sorted.Set{}
	default:
		return bitmap.New()
	}
}
