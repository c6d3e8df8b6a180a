package queryband

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Set attaches the band to the database session for the next transaction.
// The band must come from Build or BuildFromRequestContext, whose sanitizers
// guarantee the value is safe to embed as a SQL literal.
func Set(ctx context.Context, conn sqlx.ExecerContext, band string) error {
	stmt := fmt.Sprintf("SET QUERY_BAND = '%s' FOR TRANSACTION", band)
	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("queryband: set: %w", err)
	}
	return nil
}

// SetForSession attaches the band for the lifetime of the database session
// rather than a single transaction.
func SetForSession(ctx context.Context, conn sqlx.ExecerContext, band string) error {
	stmt := fmt.Sprintf("SET QUERY_BAND = '%s' FOR SESSION", band)
	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("queryband: set for session: %w", err)
	}
	return nil
}
