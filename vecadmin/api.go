package vecadmin

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"modernc.org/sqlite/vtab"

	"github.com/viant/sqlite-vecset/engine"
	"github.com/viant/sqlite-vecset/host"
)

// Module provides administrative operations via a virtual table.
// Usage:
//
//	CREATE VIRTUAL TABLE vector_admin USING vector_admin(op);
//	SELECT op FROM vector_admin WHERE op MATCH 'stats';
//
// Commands and their single result row:
//
//	stats      vectors:<count>
//	session    session:<id>
//	debug:on   debug:on
//	debug:off  debug:off
//	teardown   teardown:<dropped>
//
// Commands act on the host bound by engine.RegisterVectorFunctions.
type Module struct{}

type Table struct{}

type Cursor struct {
	table *Table
	rows  []string
	pos   int
}

// ModuleName is the name passed to CREATE VIRTUAL TABLE ... USING.
const ModuleName = "vector_admin"

func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("vector_admin: need at least 3 args")
	}
	// Single TEXT column `op` reporting results.
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(op)", args[2])); err != nil {
		return nil, err
	}
	return &Table{}, nil
}

func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.Create(ctx, args)
}

func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = 1
			break
		}
	}
	return nil
}

func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }
func (t *Table) Disconnect() error         { return nil }
func (t *Table) Destroy() error            { return nil }

func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	c.rows = nil
	c.pos = 0
	if idxNum != 1 || len(vals) == 0 || vals[0] == nil {
		return nil
	}
	command, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("vector_admin: MATCH expects a command as TEXT")
	}
	h := engine.Active()
	if h == nil {
		return engine.ErrNoHost
	}
	result, err := Execute(context.Background(), h, command)
	if err != nil {
		return err
	}
	c.rows = []string{result}
	return nil
}

func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("vector_admin: Column out of range")
	}
	if col == 0 {
		return c.rows[c.pos], nil
	}
	return nil, nil
}
func (c *Cursor) Rowid() (int64, error) { return int64(c.pos + 1), nil }
func (c *Cursor) Close() error          { c.rows = nil; c.pos = 0; return nil }

// Execute runs one administrative command against h and returns its result row.
func Execute(ctx context.Context, h *host.Host, command string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "stats":
		return "vectors:" + strconv.Itoa(h.Count()), nil
	case "session":
		return "session:" + h.Session(), nil
	case "debug:on":
		h.SetDebug(ctx, true)
		return "debug:on", nil
	case "debug:off":
		h.SetDebug(ctx, false)
		return "debug:off", nil
	case "teardown":
		dropped := h.Unload(ctx)
		h.Load(ctx)
		return "teardown:" + strconv.Itoa(dropped), nil
	}
	return "", fmt.Errorf("vector_admin: unknown command %q", command)
}
