package explain

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

const testDatabaseEnv = "PGPLANSTATS_TEST_DATABASE_URL"

const testQuery = `SELECT g, count(*)
FROM generate_series(1, 1000) AS g
JOIN generate_series(1, 10) AS h ON g % 10 = h
GROUP BY g`

// explainOnLiveDatabase captures a real plan the same way callers are expected
// to: one connection, one rolled-back transaction, EXPLAIN with buffers.
func explainOnLiveDatabase(t *testing.T, scan func(pgx.Row) (Document, error)) Document {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err, "connecting to database")
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	require.NoError(t, err, "beginning transaction")
	defer func() { _ = tx.Rollback(ctx) }()

	doc, err := scan(tx.QueryRow(ctx, "EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON) "+testQuery))
	require.NoError(t, err, "executing EXPLAIN")
	return doc
}

func TestLivePlan_TextColumn(t *testing.T) {
	doc := explainOnLiveDatabase(t, func(row pgx.Row) (Document, error) {
		var payload string
		if err := row.Scan(&payload); err != nil {
			return Document{}, err
		}
		return Parse([]byte(payload))
	})

	stats, err := doc.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Get(planstats.ActualLoops), 1.0)
	assert.GreaterOrEqual(t, stats.Get(planstats.ActualRows), 1000.0)
	assert.Positive(t, doc.Summary().ExecutionTime)
}

func TestLivePlan_DecodedColumn(t *testing.T) {
	doc := explainOnLiveDatabase(t, func(row pgx.Row) (Document, error) {
		var payload any
		if err := row.Scan(&payload); err != nil {
			return Document{}, err
		}
		return FromValue(payload)
	})

	_, err := planstats.TotalSharedHits(doc.Root())
	require.NoError(t, err)
	assert.Positive(t, doc.Summary().TotalCost)
}
