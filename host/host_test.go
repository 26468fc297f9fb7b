package host

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/viant/sqlite-vecset/internal/config"
	"github.com/viant/sqlite-vecset/vector"
)

func newTestHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	cfg := config.Defaults()
	cfg.Seed = 1
	h := New(cfg, opts...)
	h.Load(context.Background())
	t.Cleanup(func() { h.Unload(context.Background()) })
	return h
}

func call(t *testing.T, h *Host, name string, args ...int64) int64 {
	t.Helper()
	result, err := h.Call(context.Background(), name, args...)
	require.NoError(t, err)
	return result
}

func TestNatives_Table(t *testing.T) {
	table := Natives()
	assert.Len(t, table, 23)
	seen := map[string]bool{}
	for _, n := range table {
		assert.False(t, seen[n.Name], "duplicate native %s", n.Name)
		seen[n.Name] = true
	}
}

func TestHost_InvalidIDIsMinusOneEverywhere(t *testing.T) {
	h := newTestHost(t)
	for _, n := range Natives() {
		if !n.resolves {
			continue
		}
		args := make([]int64, n.Args)
		for _, id := range []int64{0, -3, 1} {
			args[0] = id
			assert.Equal(t, int64(-1), call(t, h, n.Name, args...), "%s(id=%d)", n.Name, id)
		}
	}
}

func TestHost_EmptyVectorSentinels(t *testing.T) {
	h := newTestHost(t)
	id := call(t, h, "vector_create")
	require.Equal(t, int64(1), id)

	testCases := []struct {
		native string
		args   []int64
		want   int64
	}{
		{native: "vector_size", want: 0},
		{native: "vector_empty", want: 1},
		{native: "vector_even", want: 1},
		{native: "vector_odd", want: 0},
		{native: "vector_first", want: 0},
		{native: "vector_last", want: 0},
		{native: "vector_begin", want: 0},
		{native: "vector_end", want: 0},
		{native: "vector_pop_back", want: -1},
		{native: "vector_pop_front", want: -1},
		{native: "vector_random", want: -1},
		{native: "vector_clear", want: 0},
		{native: "vector_remove", args: []int64{4}, want: 0},
		{native: "vector_delete", args: []int64{0}, want: 0},
		{native: "vector_next", args: []int64{4}, want: -1},
		{native: "vector_prev", args: []int64{4}, want: -1},
		{native: "vector_find_index", args: []int64{4}, want: -1},
		{native: "vector_find_value", args: []int64{0}, want: -1},
		{native: "vector_replace", args: []int64{4, 5}, want: -1},
		{native: "vector_replace_index", args: []int64{0, 5}, want: -1},
	}
	for _, tc := range testCases {
		args := append([]int64{id}, tc.args...)
		assert.Equal(t, tc.want, call(t, h, tc.native, args...), tc.native)
	}
}

func TestHost_Operations(t *testing.T) {
	h := newTestHost(t)
	id := call(t, h, "vector_create")
	for _, v := range []int64{5, 1, 3} {
		assert.Equal(t, int64(1), call(t, h, "vector_add", id, v))
	}
	assert.Equal(t, int64(1), call(t, h, "vector_add", id, 5), "duplicate add still reports success")
	assert.Equal(t, int64(3), call(t, h, "vector_size", id))
	assert.Equal(t, int64(1), call(t, h, "vector_odd", id))
	assert.Equal(t, int64(5), call(t, h, "vector_find_value", id, 0))
	assert.Equal(t, int64(3), call(t, h, "vector_next", id, 1))
	assert.Equal(t, int64(-1), call(t, h, "vector_next", id, 5), "no successor past the maximum")
	assert.Equal(t, int64(-1), call(t, h, "vector_prev", id, 1), "no predecessor before the minimum")
	assert.Equal(t, int64(4), call(t, h, "vector_begin", id))
	assert.Equal(t, int64(4), call(t, h, "vector_end", id))
	assert.Equal(t, int64(2), call(t, h, "vector_find_index", id, 5))

	assert.Equal(t, int64(1), call(t, h, "vector_replace", id, 3, 30))
	assert.Equal(t, int64(-1), call(t, h, "vector_find_index", id, 3))
	assert.Equal(t, int64(2), call(t, h, "vector_find_index", id, 30))
	assert.Equal(t, int64(1), call(t, h, "vector_replace_index", id, 0, -5))
	assert.Equal(t, int64(-5), call(t, h, "vector_first", id))
	assert.Equal(t, int64(30), call(t, h, "vector_last", id))

	random := call(t, h, "vector_random", id)
	assert.Contains(t, []int64{-5, 1, 30}, random)

	assert.Equal(t, int64(30), call(t, h, "vector_pop_back", id))
	assert.Equal(t, int64(-5), call(t, h, "vector_pop_front", id))
	assert.Equal(t, int64(1), call(t, h, "vector_delete", id, 0))
	assert.Equal(t, int64(1), call(t, h, "vector_empty", id))
	assert.Equal(t, int64(1), call(t, h, "vector_add", id, 9))
	assert.Equal(t, int64(1), call(t, h, "vector_remove", id, 9))
	assert.Equal(t, int64(1), call(t, h, "vector_add", id, 9))
	assert.Equal(t, int64(1), call(t, h, "vector_clear", id))
	assert.Equal(t, int64(0), call(t, h, "vector_clear", id))
}

func TestHost_RegistryIsolation(t *testing.T) {
	h := newTestHost(t)
	a := call(t, h, "vector_create")
	call(t, h, "vector_add", a, 1)
	b := call(t, h, "vector_create")
	call(t, h, "vector_add", b, 2)
	call(t, h, "vector_add", b, 3)
	assert.Equal(t, int64(1), call(t, h, "vector_size", a))
	assert.Equal(t, int64(1), call(t, h, "vector_first", a))
	assert.Equal(t, int64(2), call(t, h, "vector_size", b))
}

func TestHost_RejectsBadArguments(t *testing.T) {
	h := newTestHost(t)
	id := call(t, h, "vector_create")
	assert.Equal(t, int64(0), call(t, h, "vector_add", id))
	assert.Equal(t, int64(0), call(t, h, "vector_size", id, 1))
	assert.Equal(t, int64(0), call(t, h, "vector_add", id, 1<<33))
	assert.Equal(t, int64(0), call(t, h, "vector_size", id))

	_, err := h.Call(context.Background(), "vector_sort", id)
	assert.ErrorIs(t, err, ErrUnknownNative)
}

func TestHost_DebugMode(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newTestHost(t, WithLogger(logger))
	assert.False(t, h.Debug())

	id := call(t, h, "vector_create")
	call(t, h, "vector_add", id, 42)
	assert.NotContains(t, buf.String(), "native call")

	assert.Equal(t, int64(1), call(t, h, "vector_debug_mode", 1))
	assert.True(t, h.Debug())
	assert.Equal(t, int64(1), call(t, h, "vector_debug_mode", 1))
	assert.Contains(t, buf.String(), "debugging mode unchanged")

	call(t, h, "vector_add", id, 43)
	out := buf.String()
	assert.Contains(t, out, "native=vector_add")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "session="+h.Session())

	h.SetDebug(context.Background(), false)
	assert.False(t, h.Debug())
}

func TestHost_UnloadResetsSession(t *testing.T) {
	h := newTestHost(t)
	call(t, h, "vector_create")
	call(t, h, "vector_create")
	session := h.Session()

	assert.Equal(t, 2, h.Unload(context.Background()))
	assert.NotEqual(t, session, h.Session())
	assert.Equal(t, 0, h.Count())
	assert.Equal(t, int64(-1), call(t, h, "vector_size", 1))
	assert.Equal(t, int64(1), call(t, h, "vector_create"))
}

func TestHost_View(t *testing.T) {
	h := newTestHost(t)
	id := call(t, h, "vector_create")
	call(t, h, "vector_add", id, 7)
	var values []int32
	require.NoError(t, h.View(id, func(v *vector.Vector) error {
		values = v.Values()
		return nil
	}))
	assert.Equal(t, []int32{7}, values)
	assert.Error(t, h.View(id+1, func(*vector.Vector) error { return nil }))
}

func TestHost_Metrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	h := newTestHost(t, WithMetrics(NewMetricsRecorder(provider)))

	id := call(t, h, "vector_create")
	call(t, h, "vector_add", id, 1)
	call(t, h, "vector_pop_front", id)
	call(t, h, "vector_pop_front", id)
	call(t, h, "vector_add", id)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	byOutcome := map[string]int64{}
	var vectors int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case "vecset.native.calls":
					outcome, _ := dp.Attributes.Value("outcome")
					byOutcome[outcome.AsString()] += dp.Value
				case "vecset.vectors":
					vectors += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(3), byOutcome[OutcomeOK])
	assert.Equal(t, int64(1), byOutcome[OutcomeFailed])
	assert.Equal(t, int64(1), byOutcome[OutcomeRejected])
	assert.Equal(t, int64(1), vectors)
}
