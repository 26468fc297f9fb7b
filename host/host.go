package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/viant/sqlite-vecset/internal/config"
	"github.com/viant/sqlite-vecset/registry"
	"github.com/viant/sqlite-vecset/vector"
)

const (
	// PluginName is reported in the load banner.
	PluginName = "vecset"
	// PluginVersion is reported in the load banner.
	PluginVersion = "1.0.0"
)

var (
	// ErrUnknownNative is returned by Call for names missing from the native table.
	ErrUnknownNative = errors.New("host: unknown native")
	// ErrArgumentCount is reported when a native gets the wrong number of arguments.
	ErrArgumentCount = errors.New("host: wrong number of arguments")
	// ErrArgumentRange is reported when an argument does not fit a 32-bit cell.
	ErrArgumentRange = errors.New("host: argument out of range")
)

// Host is the per-session context passed to every native.
type Host struct {
	mu       sync.Mutex
	cfg      config.Config
	registry *registry.Registry
	debug    bool
	session  string
	base     *Logger
	logger   *Logger
	metrics  MetricsRecorder
	byName   map[string]Native
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(h *Host) { h.base = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(h *Host) { h.metrics = m }
}

// New creates a Host for the given configuration. The session starts with
// Load and ends with Unload.
func New(cfg config.Config, opts ...Option) *Host {
	h := &Host{cfg: cfg, debug: cfg.Debug, metrics: NoopMetrics{}}
	for _, opt := range opts {
		opt(h)
	}
	if h.base == nil {
		h.base = NoopLogger()
	}
	h.byName = make(map[string]Native, len(natives))
	for _, n := range natives {
		h.byName[n.Name] = n
	}
	h.registry = h.newRegistry()
	h.session = uuid.NewString()
	h.logger = h.base.WithSession(h.session)
	return h
}

func (h *Host) newRegistry() *registry.Registry {
	opts := []registry.Option{registry.WithSetKind(h.cfg.Kind())}
	if seed := h.cfg.Seed; seed != 0 {
		var n uint64
		opts = append(opts, registry.WithSourceFactory(func() vector.Source {
			n++
			return vector.NewSeededSource(seed + n)
		}))
	}
	return registry.New(opts...)
}

// Load starts a host session.
func (h *Host) Load(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger.LogLoad(ctx, PluginName, PluginVersion)
}

// Unload ends the host session: every vector is dropped, the id counter is
// reset, and a new session id is assigned for the next Load.
func (h *Host) Unload(ctx context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	dropped := h.registry.Teardown()
	h.registry = h.newRegistry()
	h.metrics.RecordVectors(ctx, -int64(dropped))
	h.logger.LogUnload(ctx, PluginName, dropped)
	h.session = uuid.NewString()
	h.logger = h.base.WithSession(h.session)
	return dropped
}

// Session returns the current session id.
func (h *Host) Session() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

// Debug reports whether per-call diagnostics are enabled.
func (h *Host) Debug() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.debug
}

// SetDebug toggles per-call diagnostics.
func (h *Host) SetDebug(ctx context.Context, enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setDebug(ctx, "SetDebug", enabled)
}

// Count returns the number of vectors created in this session.
func (h *Host) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registry.Count()
}

// View runs fn with the vector for id while holding the session lock.
// fn must not retain v.
func (h *Host) View(id int64, fn func(v *vector.Vector) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, err := h.registry.Resolve(id)
	if err != nil {
		return err
	}
	return fn(v)
}

// Call invokes a native by name. Wrong arity or out-of-range arguments
// yield 0; an invalid vector id yields -1; operation failures yield the
// native's Failure sentinel. The error is non-nil only for unknown natives.
func (h *Host) Call(ctx context.Context, name string, args ...int64) (int64, error) {
	n, ok := h.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownNative, name)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := n.validate(args); err != nil {
		h.logger.LogRejected(ctx, name, args, err)
		h.metrics.RecordCall(ctx, name, OutcomeRejected)
		return 0, nil
	}

	var v *vector.Vector
	if n.resolves {
		var err error
		if v, err = h.registry.Resolve(args[0]); err != nil {
			h.finish(ctx, n, args, -1, nil, err)
			return -1, nil
		}
	}
	result, err := n.call(ctx, h, v, args)
	if err != nil {
		result = n.Failure
	}
	h.finish(ctx, n, args, result, v, err)
	return result, nil
}

func (h *Host) finish(ctx context.Context, n Native, args []int64, result int64, v *vector.Vector, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	h.metrics.RecordCall(ctx, n.Name, outcome)
	if !h.debug {
		return
	}
	count := -1
	if v != nil {
		count = v.Size()
	}
	h.logger.LogCall(ctx, n.Name, args, result, count, err)
}

func (h *Host) create(ctx context.Context) int64 {
	id := h.registry.Create()
	h.metrics.RecordVectors(ctx, 1)
	return id
}

func (h *Host) setDebug(ctx context.Context, native string, enabled bool) {
	changed := h.debug != enabled
	h.debug = enabled
	h.logger.LogDebugMode(ctx, native, enabled, changed)
}

func (n Native) validate(args []int64) error {
	if len(args) != n.Args {
		return fmt.Errorf("%w: %s expects %d, got %d", ErrArgumentCount, n.Name, n.Args, len(args))
	}
	if !n.resolves {
		return nil
	}
	for i := 1; i < len(args); i++ {
		if args[i] < math.MinInt32 || args[i] > math.MaxInt32 {
			return fmt.Errorf("%w: %s argument %d = %d", ErrArgumentRange, n.Name, i+1, args[i])
		}
	}
	return nil
}
