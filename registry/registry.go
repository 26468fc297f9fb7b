package registry

import (
	"errors"

	"github.com/viant/sqlite-vecset/index"
	"github.com/viant/sqlite-vecset/vector"
)

// ErrInvalidID is returned when a handle is outside [1, Count()].
var ErrInvalidID = errors.New("registry: invalid vector id")

// Registry owns every Vector created during a host session. It is not safe
// for concurrent use; callers serialize access.
type Registry struct {
	vectors []*vector.Vector
	kind    index.Kind
	source  func() vector.Source
}

// Option configures a Registry.
type Option func(*Registry)

// WithSetKind selects the set implementation for new vectors.
func WithSetKind(kind index.Kind) Option {
	return func(r *Registry) { r.kind = kind }
}

// WithSourceFactory sets the entropy source constructor for new vectors.
func WithSourceFactory(fn func() vector.Source) Option {
	return func(r *Registry) { r.source = fn }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{kind: index.KindAuto}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create appends an empty vector and returns its 1-based id.
func (r *Registry) Create() int64 {
	opts := []vector.Option{vector.WithSetKind(r.kind)}
	if r.source != nil {
		opts = append(opts, vector.WithSource(r.source()))
	}
	r.vectors = append(r.vectors, vector.New(opts...))
	return int64(len(r.vectors))
}

// Resolve returns the vector for a 1-based id.
func (r *Registry) Resolve(id int64) (*vector.Vector, error) {
	if id < 1 || id > int64(len(r.vectors)) {
		return nil, ErrInvalidID
	}
	return r.vectors[id-1], nil
}

// Count returns the number of created vectors.
func (r *Registry) Count() int { return len(r.vectors) }

// Teardown drops all vectors and resets the id counter. It returns the
// number of vectors dropped.
func (r *Registry) Teardown() int {
	n := len(r.vectors)
	clear(r.vectors)
	r.vectors = nil
	return n
}
