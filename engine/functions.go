package engine

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	sqlite "modernc.org/sqlite"

	"github.com/viant/sqlite-vecset/host"
	"github.com/viant/sqlite-vecset/registry"
	"github.com/viant/sqlite-vecset/vector"
)

// ErrNoHost is returned by a vector function invoked before any host is bound.
var ErrNoHost = errors.New("engine: no host bound")

var (
	active       atomic.Pointer[host.Host]
	registerOnce sync.Once
	registerErr  error
)

// RegisterVectorFunctions binds h as the active host and registers every
// native plus vector_blob, vector_set_blob, vector_l2 and vector_cosine with
// the driver.
// Driver registration is global and happens once per process; later calls
// only rebind the active host.
// Note: existing open connections will not see new functions.
func RegisterVectorFunctions(h *host.Host) error {
	if h == nil {
		return fmt.Errorf("engine: host is nil")
	}
	active.Store(h)
	registerOnce.Do(func() { registerErr = registerAll() })
	return registerErr
}

// Active returns the host bound by the last RegisterVectorFunctions call.
func Active() *host.Host { return active.Load() }

func registerAll() error {
	for _, n := range host.Natives() {
		// Arity is checked by the host so wrong counts yield 0 instead of a
		// prepare error.
		if err := sqlite.RegisterScalarFunction(n.Name, -1, nativeImpl(n.Name)); err != nil {
			return fmt.Errorf("engine: register %s: %w", n.Name, err)
		}
	}
	if err := sqlite.RegisterScalarFunction("vector_blob", 1, vectorBlobImpl); err != nil {
		return fmt.Errorf("engine: register vector_blob: %w", err)
	}
	if err := sqlite.RegisterScalarFunction("vector_set_blob", 1, vectorSetBlobImpl); err != nil {
		return fmt.Errorf("engine: register vector_set_blob: %w", err)
	}
	if err := sqlite.RegisterScalarFunction("vector_l2", 2, vectorL2Impl); err != nil {
		return fmt.Errorf("engine: register vector_l2: %w", err)
	}
	if err := sqlite.RegisterScalarFunction("vector_cosine", 2, vectorCosineImpl); err != nil {
		return fmt.Errorf("engine: register vector_cosine: %w", err)
	}
	return nil
}

func nativeImpl(name string) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		h := active.Load()
		if h == nil {
			return nil, ErrNoHost
		}
		ints := make([]int64, len(args))
		for i, arg := range args {
			v, err := asInt(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
			}
			ints[i] = v
		}
		return h.Call(context.Background(), name, ints...)
	}
}

func asInt(arg driver.Value) (int64, error) {
	switch v := arg.(type) {
	case int64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("unexpected NULL; want INTEGER")
	default:
		return 0, fmt.Errorf("unsupported type %T; want INTEGER", arg)
	}
}

// values returns a positional copy of the vector for id, or nil and false
// when id does not resolve.
func values(h *host.Host, arg driver.Value) ([]int32, bool, error) {
	id, err := asInt(arg)
	if err != nil {
		return nil, false, err
	}
	var out []int32
	if err := h.View(id, func(v *vector.Vector) error {
		out = v.Values()
		return nil
	}); err != nil {
		return nil, false, nil
	}
	return out, true, nil
}

func vectorBlobImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	h := active.Load()
	if h == nil {
		return nil, ErrNoHost
	}
	vals, ok, err := values(h, args[0])
	if err != nil {
		return nil, fmt.Errorf("vector_blob: %w", err)
	}
	if !ok {
		return nil, nil
	}
	blob := vector.EncodeValues(vals)
	if blob == nil {
		blob = []byte{}
	}
	return blob, nil
}

// vectorSetBlobImpl returns the tagged set-view snapshot (index.Restore
// decodes it), or NULL for an invalid id.
func vectorSetBlobImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	h := active.Load()
	if h == nil {
		return nil, ErrNoHost
	}
	id, err := asInt(args[0])
	if err != nil {
		return nil, fmt.Errorf("vector_set_blob: %w", err)
	}
	var blob []byte
	if err := h.View(id, func(v *vector.Vector) error {
		var err error
		blob, err = v.MarshalSet()
		return err
	}); err != nil {
		if errors.Is(err, registry.ErrInvalidID) {
			return nil, nil
		}
		return nil, fmt.Errorf("vector_set_blob: %w", err)
	}
	return blob, nil
}

func pair(name string, args []driver.Value) ([]int32, []int32, bool, error) {
	if len(args) != 2 {
		return nil, nil, false, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	h := active.Load()
	if h == nil {
		return nil, nil, false, ErrNoHost
	}
	a, okA, err := values(h, args[0])
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", name, err)
	}
	b, okB, err := values(h, args[1])
	if err != nil {
		return nil, nil, false, fmt.Errorf("%s: %w", name, err)
	}
	return a, b, okA && okB, nil
}

func vectorL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := pair("vector_l2", args)
	if err != nil || !ok {
		return nil, err
	}
	d, err := vector.L2Distance(a, b)
	if err != nil {
		return nil, nil
	}
	return d, nil
}

func vectorCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := pair("vector_cosine", args)
	if err != nil || !ok {
		return nil, err
	}
	sim, err := vector.CosineSimilarity(a, b)
	if err != nil {
		return nil, nil
	}
	return sim, nil
}
