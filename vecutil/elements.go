package vecutil

import (
	"context"
	"fmt"
)

// Element is one row of a vector_elements virtual table.
type Element struct {
	Position int
	Value    int32
	Rank     int
}

// Elements lists the elements of a vector in positional order. An id that does
// not resolve yields no elements.
func (c *Client) Elements(ctx context.Context, id int64) ([]Element, error) {
	return c.elements(ctx, id, "position")
}

// Sorted lists the elements of a vector in ascending order.
func (c *Client) Sorted(ctx context.Context, id int64) ([]Element, error) {
	return c.elements(ctx, id, "rank")
}

func (c *Client) elements(ctx context.Context, id int64, orderBy string) ([]Element, error) {
	if c.ElementsTable == "" {
		return nil, fmt.Errorf("vecutil: ElementsTable is empty")
	}
	q := fmt.Sprintf("SELECT position, value, rank FROM %s WHERE vector_id = ? ORDER BY %s", c.ElementsTable, orderBy)
	rows, err := c.DB.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Element
	for rows.Next() {
		var e Element
		if err := rows.Scan(&e.Position, &e.Value, &e.Rank); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
