package vecutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/sqlite-vecset/index"
	"github.com/viant/sqlite-vecset/vector"
)

// ErrInvalidID is returned when a vector id does not resolve in the bound host.
var ErrInvalidID = errors.New("vecutil: invalid vector id")

// Client provides a typed Go API over the vecset SQL functions. It works on
// any *sql.DB whose connections were opened after engine.RegisterVectorFunctions.
type Client struct {
	DB *sql.DB
	// ElementsTable names a vector_elements virtual table used by Elements.
	// It is interpolated into SQL and must be trusted.
	ElementsTable string
}

// NewClient constructs a Client. elementsTable may be empty when Elements is
// not used.
func NewClient(db *sql.DB, elementsTable string) (*Client, error) {
	if db == nil {
		return nil, fmt.Errorf("vecutil: db is nil")
	}
	return &Client{DB: db, ElementsTable: elementsTable}, nil
}

// Call invokes a native by name and returns its raw integer result.
func (c *Client) Call(ctx context.Context, native string, args ...int64) (int64, error) {
	placeholders := ""
	params := make([]any, len(args))
	for i, a := range args {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		params[i] = a
	}
	var out int64
	if err := c.DB.QueryRowContext(ctx, fmt.Sprintf("SELECT %s(%s)", native, placeholders), params...).Scan(&out); err != nil {
		return 0, fmt.Errorf("vecutil: %s: %w", native, err)
	}
	return out, nil
}

// Create allocates a new vector and returns its id.
func (c *Client) Create(ctx context.Context) (int64, error) {
	return c.Call(ctx, "vector_create")
}

// Add appends value to the vector unless already present.
func (c *Client) Add(ctx context.Context, id int64, value int32) error {
	result, err := c.Call(ctx, "vector_add", id, int64(value))
	if err != nil {
		return err
	}
	if result == -1 {
		return ErrInvalidID
	}
	return nil
}

// AddAll appends values in order, stopping at the first error.
func (c *Client) AddAll(ctx context.Context, id int64, values ...int32) error {
	for _, v := range values {
		if err := c.Add(ctx, id, v); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the number of elements.
func (c *Client) Size(ctx context.Context, id int64) (int, error) {
	result, err := c.Call(ctx, "vector_size", id)
	if err != nil {
		return 0, err
	}
	if result == -1 {
		return 0, ErrInvalidID
	}
	return int(result), nil
}

// Remove erases value and reports whether it was present.
func (c *Client) Remove(ctx context.Context, id int64, value int32) (bool, error) {
	result, err := c.Call(ctx, "vector_remove", id, int64(value))
	if err != nil {
		return false, err
	}
	if result == -1 {
		return false, ErrInvalidID
	}
	return result == 1, nil
}

// Clear empties the vector and reports whether anything was removed.
func (c *Client) Clear(ctx context.Context, id int64) (bool, error) {
	result, err := c.Call(ctx, "vector_clear", id)
	if err != nil {
		return false, err
	}
	if result == -1 {
		return false, ErrInvalidID
	}
	return result == 1, nil
}

// Values returns the positional sequence via vector_blob.
func (c *Client) Values(ctx context.Context, id int64) ([]int32, error) {
	var blob []byte
	if err := c.DB.QueryRowContext(ctx, "SELECT vector_blob(?)", id).Scan(&blob); err != nil {
		return nil, fmt.Errorf("vecutil: vector_blob: %w", err)
	}
	if blob == nil {
		return nil, ErrInvalidID
	}
	return vector.DecodeValues(blob)
}

// Set returns the ascending set view via vector_set_blob.
func (c *Client) Set(ctx context.Context, id int64) ([]int32, error) {
	var blob []byte
	if err := c.DB.QueryRowContext(ctx, "SELECT vector_set_blob(?)", id).Scan(&blob); err != nil {
		return nil, fmt.Errorf("vecutil: vector_set_blob: %w", err)
	}
	if blob == nil {
		return nil, ErrInvalidID
	}
	set, err := index.Restore(blob)
	if err != nil {
		return nil, err
	}
	return set.Values(), nil
}

// L2 returns the Euclidean distance between two vectors of equal size.
func (c *Client) L2(ctx context.Context, a, b int64) (float64, error) {
	return c.distance(ctx, "vector_l2", a, b)
}

// Cosine returns the cosine similarity between two vectors of equal size.
func (c *Client) Cosine(ctx context.Context, a, b int64) (float64, error) {
	return c.distance(ctx, "vector_cosine", a, b)
}

func (c *Client) distance(ctx context.Context, fn string, a, b int64) (float64, error) {
	var out sql.NullFloat64
	if err := c.DB.QueryRowContext(ctx, fmt.Sprintf("SELECT %s(?, ?)", fn), a, b).Scan(&out); err != nil {
		return 0, fmt.Errorf("vecutil: %s: %w", fn, err)
	}
	if !out.Valid {
		return 0, fmt.Errorf("vecutil: %s(%d, %d) undefined", fn, a, b)
	}
	return out.Float64, nil
}
