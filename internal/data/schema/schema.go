// Package schema holds the relational schema and applies it at startup.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"hotel-reservation/pkg/database"

	"go.uber.org/zap"
)

//go:embed schema.sql
var ddl string

// DDL returns the embedded schema.
func DDL() string {
	return ddl
}

// Apply runs the idempotent DDL. Without arguments pgx uses the simple
// protocol, so the whole file goes through in one Exec.
func Apply(ctx context.Context, db database.Querier, log *zap.Logger) error {
	if _, err := db.Exec(ctx, ddl); err != nil {
		log.Error("Failed to apply schema", zap.Error(err))
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info("Database schema applied")
	return nil
}
