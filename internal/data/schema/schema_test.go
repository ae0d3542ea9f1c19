package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExec struct {
	sql []string
	err error
}

func (r *recordingExec) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (r *recordingExec) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (r *recordingExec) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql = append(r.sql, sql)
	return pgconn.CommandTag{}, r.err
}

func TestDDLDeclaresStorageGuards(t *testing.T) {
	ddl := DDL()

	assert.Contains(t, ddl, "CREATE EXTENSION IF NOT EXISTS btree_gist")
	assert.Contains(t, ddl, "daterange(check_in_date, check_out_date, '[]') WITH &&")
	assert.Contains(t, ddl, "WHERE (status <> 'cancelled')")
	assert.Contains(t, ddl, "booking_id       UUID           NOT NULL UNIQUE REFERENCES bookings (id)")
	assert.Contains(t, ddl, "booking_id      UUID        NOT NULL UNIQUE REFERENCES bookings (id)")
	assert.Contains(t, ddl, "CHECK (rating BETWEEN 1 AND 5)")
}

func TestApplyExecutesEmbeddedDDL(t *testing.T) {
	exec := &recordingExec{}

	require.NoError(t, Apply(context.Background(), exec, zap.NewNop()))
	require.Len(t, exec.sql, 1)
	assert.Equal(t, DDL(), exec.sql[0])
}

func TestApplyWrapsError(t *testing.T) {
	exec := &recordingExec{err: errors.New("permission denied")}

	err := Apply(context.Background(), exec, zap.NewNop())
	assert.ErrorContains(t, err, "apply schema: permission denied")
}
