package storage

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed sql/schema.sql
var schemaSQL string

// renders the schema for a corpus of the given embedding dimension
func Schema(dimensions int) (string, error) {
	if dimensions <= 0 {
		return "", fmt.Errorf("invalid embedding dimension %d", dimensions)
	}

	return strings.ReplaceAll(schemaSQL, "__DIMENSIONS__", strconv.Itoa(dimensions)), nil
}

// creates the essays table if missing and replaces the match_essays function
func (c *Client) ApplySchema(ctx context.Context, dimensions int) error {
	schema, err := Schema(dimensions)
	if err != nil {
		return err
	}

	if _, err := c.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
