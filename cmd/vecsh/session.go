package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/viant/sqlite-vecset/engine"
	"github.com/viant/sqlite-vecset/host"
	"github.com/viant/sqlite-vecset/internal/config"
	"github.com/viant/sqlite-vecset/vec"
	"github.com/viant/sqlite-vecset/vecadmin"
)

// session is one loaded host bound to the process-wide database handle.
type session struct {
	host     *host.Host
	db       *sql.DB
	logger   *host.Logger
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

func newLogger(cfg config.Config) *host.Logger {
	if cfg.Log.Format == "json" {
		return host.NewJSONLogger(host.ParseLevel(cfg.Log.Level))
	}
	return host.NewTextLogger(host.ParseLevel(cfg.Log.Level))
}

// openSession loads a host, binds it, and prepares the process-wide database.
// Extra options are applied after the configured logger and metrics. Any
// failure after Load unloads the host again.
func openSession(ctx context.Context, cfg config.Config, extra ...host.Option) (_ *session, err error) {
	s := &session{logger: newLogger(cfg)}
	opts := []host.Option{host.WithLogger(s.logger)}
	if cfg.Metrics {
		s.reader = sdkmetric.NewManualReader()
		s.provider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))
		opts = append(opts, host.WithMetrics(host.NewMetricsRecorder(s.provider)))
	}
	s.host = host.New(cfg, append(opts, extra...)...)
	s.host.Load(ctx)
	defer func() {
		if err != nil {
			_ = s.close(ctx)
		}
	}()

	// Register globally before first connection so functions are available.
	if err := engine.RegisterVectorFunctions(s.host); err != nil {
		return nil, err
	}
	db, err := engine.Shared(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.DSN, err)
	}
	s.db = db
	if err := vec.Register(db); err != nil {
		return nil, err
	}
	if err := vecadmin.Register(db); err != nil {
		return nil, err
	}
	for _, stmt := range []string{
		`CREATE VIRTUAL TABLE IF NOT EXISTS temp.vector_elements USING vector_elements`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS temp.vector_admin USING vector_admin(op)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating virtual table: %w", err)
		}
	}
	return s, nil
}

// close ends the host session. The shared database stays open for the next
// session.
func (s *session) close(ctx context.Context) error {
	s.host.Unload(ctx)
	if s.reader == nil {
		return nil
	}
	s.logMetrics(ctx)
	return s.provider.Shutdown(ctx)
}

// logMetrics logs the collected call counters, one record per native.
func (s *session) logMetrics(ctx context.Context) {
	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(ctx, &rm); err != nil {
		s.logger.WarnContext(ctx, "metrics collection failed", "error", err)
		return
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				attrs := []any{"metric", m.Name, "value", dp.Value}
				for _, kv := range dp.Attributes.ToSlice() {
					attrs = append(attrs, string(kv.Key), kv.Value.Emit())
				}
				s.logger.InfoContext(ctx, "metrics", attrs...)
			}
		}
	}
}

// exec runs statements in order and writes result rows to out.
func (s *session) exec(ctx context.Context, out io.Writer, statements []string) error {
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := s.query(ctx, out, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

func (s *session) query(ctx context.Context, out io.Writer, stmt string) error {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = formatValue(v)
		}
		fmt.Fprintln(out, strings.Join(fields, "\t"))
	}
	return rows.Err()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("x'%x'", val)
	default:
		return fmt.Sprint(val)
	}
}
