package vec

import (
	"database/sql"
	"fmt"
	"strings"

	"modernc.org/sqlite/vtab"

	"github.com/viant/sqlite-vecset/engine"
	"github.com/viant/sqlite-vecset/vector"
)

// ModuleName is the name passed to CREATE VIRTUAL TABLE ... USING.
const ModuleName = "vector_elements"

const (
	colVectorID = iota
	colPosition
	colValue
	colRank
)

const idxVectorScan = 1

// Module implements vtab.Module for vector_elements. Rows are read from the
// host bound by engine.RegisterVectorFunctions at query time.
type Module struct{}

// Table represents a single vector_elements virtual table instance.
type Table struct {
	name string
}

type element struct {
	position int64
	value    int64
	rank     int64
}

// Cursor scans the elements of one vector.
type Cursor struct {
	table    *Table
	vectorID int64
	rows     []element
	pos      int
}

// Register registers the vector_elements module with the provided *sql.DB.
// The driver keeps modules process-wide, so repeated calls are no-ops; use
// engine.Shared for the handle.
func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

// Create declares the table schema.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing table.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("vec: expected at least 3 args, got %d", len(args))
	}
	if err := ctx.EnableConstraintSupport(); err != nil {
		return nil, fmt.Errorf("vec: EnableConstraintSupport failed: %w", err)
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(vector_id INTEGER, position INTEGER, value INTEGER, rank INTEGER)", args[2])); err != nil {
		return nil, err
	}
	return &Table{name: args[2]}, nil
}

// BestIndex pushes down the required vector_id equality.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == colVectorID && c.Op == vtab.OpEQ {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = idxVectorScan
			return nil
		}
	}
	return fmt.Errorf("vec: %s requires a vector_id = constraint", t.name)
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect cleans up per-connection resources.
func (t *Table) Disconnect() error { return nil }

// Destroy drops nothing; vectors live in the host.
func (t *Table) Destroy() error { return nil }

// Filter snapshots the elements of the requested vector. An id that does not
// resolve yields no rows.
func (c *Cursor) Filter(idxNum int, _ string, vals []vtab.Value) error {
	c.rows = nil
	c.pos = 0
	if idxNum != idxVectorScan || len(vals) == 0 {
		return fmt.Errorf("vec: unsupported query plan")
	}
	id, ok := vals[0].(int64)
	if !ok {
		return fmt.Errorf("vec: vector_id must be INTEGER, got %T", vals[0])
	}
	c.vectorID = id
	h := engine.Active()
	if h == nil {
		return engine.ErrNoHost
	}
	err := h.View(id, func(v *vector.Vector) error {
		values := v.Values()
		rows := make([]element, len(values))
		for i, value := range values {
			rows[i] = element{position: int64(i), value: int64(value), rank: int64(v.Rank(value))}
		}
		c.rows = rows
		return nil
	})
	if err != nil {
		c.rows = nil
	}
	return nil
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the value of a column in the current row.
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("vec: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	row := c.rows[c.pos]
	switch col {
	case colVectorID:
		return c.vectorID, nil
	case colPosition:
		return row.position, nil
	case colValue:
		return row.value, nil
	case colRank:
		return row.rank, nil
	}
	return nil, fmt.Errorf("vec: unsupported column %d", col)
}

// Rowid returns the 1-based position of the current row.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return 0, fmt.Errorf("vec: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return c.rows[c.pos].position + 1, nil
}

// Close releases resources.
func (c *Cursor) Close() error { c.rows = nil; c.pos = 0; return nil }
