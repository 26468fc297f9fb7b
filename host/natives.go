package host

import (
	"context"

	"github.com/viant/sqlite-vecset/vector"
)

// Native describes one entry of the native table.
type Native struct {
	// Name is the function name exposed to the host runtime.
	Name string

	// Args is the exact argument count, including the vector id.
	Args int

	// Failure is returned when the operation itself fails (empty vector,
	// index out of range, value not found). An invalid vector id always
	// yields -1.
	Failure int64

	// resolves reports whether args[0] is a vector id.
	resolves bool

	call func(ctx context.Context, h *Host, v *vector.Vector, args []int64) (int64, error)
}

// Natives returns the native table in registration order.
func Natives() []Native {
	out := make([]Native, len(natives))
	copy(out, natives)
	return out
}

var natives = []Native{
	{Name: "vector_create", Args: 0, call: func(ctx context.Context, h *Host, _ *vector.Vector, _ []int64) (int64, error) {
		return h.create(ctx), nil
	}},
	{Name: "vector_debug_mode", Args: 1, call: func(ctx context.Context, h *Host, _ *vector.Vector, args []int64) (int64, error) {
		h.setDebug(ctx, "vector_debug_mode", args[0] != 0)
		return 1, nil
	}},
	onVector("vector_size", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return int64(v.Size()), nil
	}),
	onVector("vector_odd", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return boolInt(v.IsOdd()), nil
	}),
	onVector("vector_even", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return boolInt(v.IsEven()), nil
	}),
	onVector("vector_empty", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return boolInt(v.IsEmpty()), nil
	}),
	onVector("vector_add", 2, 0, func(v *vector.Vector, args []int64) (int64, error) {
		v.Add(int32(args[1]))
		return 1, nil
	}),
	onVector("vector_clear", 1, 0, func(v *vector.Vector, _ []int64) (int64, error) {
		return boolInt(v.Clear()), nil
	}),
	onVector("vector_remove", 2, 0, func(v *vector.Vector, args []int64) (int64, error) {
		return boolInt(v.Remove(int32(args[1]))), nil
	}),
	onVector("vector_delete", 2, 0, func(v *vector.Vector, args []int64) (int64, error) {
		_, err := v.Delete(int(args[1]))
		return 1, err
	}),
	onVector("vector_begin", 1, 0, func(v *vector.Vector, _ []int64) (int64, error) {
		return v.Begin()
	}),
	onVector("vector_end", 1, 0, func(v *vector.Vector, _ []int64) (int64, error) {
		return v.End()
	}),
	onVector("vector_first", 1, 0, func(v *vector.Vector, _ []int64) (int64, error) {
		return value(v.First())
	}),
	onVector("vector_last", 1, 0, func(v *vector.Vector, _ []int64) (int64, error) {
		return value(v.Last())
	}),
	onVector("vector_next", 2, -1, func(v *vector.Vector, args []int64) (int64, error) {
		return value(v.Next(int32(args[1])))
	}),
	onVector("vector_prev", 2, -1, func(v *vector.Vector, args []int64) (int64, error) {
		return value(v.Prev(int32(args[1])))
	}),
	onVector("vector_random", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return value(v.Random())
	}),
	onVector("vector_pop_back", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return value(v.PopBack())
	}),
	onVector("vector_pop_front", 1, -1, func(v *vector.Vector, _ []int64) (int64, error) {
		return value(v.PopFront())
	}),
	onVector("vector_find_index", 2, -1, func(v *vector.Vector, args []int64) (int64, error) {
		rank, err := v.FindIndex(int32(args[1]))
		return int64(rank), err
	}),
	onVector("vector_find_value", 2, -1, func(v *vector.Vector, args []int64) (int64, error) {
		return value(v.FindValue(int(args[1])))
	}),
	onVector("vector_replace_index", 3, -1, func(v *vector.Vector, args []int64) (int64, error) {
		_, err := v.ReplaceIndex(int(args[1]), int32(args[2]))
		return 1, err
	}),
	onVector("vector_replace", 3, -1, func(v *vector.Vector, args []int64) (int64, error) {
		_, err := v.Replace(int32(args[1]), int32(args[2]))
		return 1, err
	}),
}

func onVector(name string, args int, failure int64, fn func(v *vector.Vector, args []int64) (int64, error)) Native {
	return Native{
		Name:     name,
		Args:     args,
		Failure:  failure,
		resolves: true,
		call: func(_ context.Context, _ *Host, v *vector.Vector, a []int64) (int64, error) {
			return fn(v, a)
		},
	}
}

func value(v int32, err error) (int64, error) { return int64(v), err }

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
