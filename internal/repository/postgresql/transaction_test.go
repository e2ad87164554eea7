package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
)

type fakeTx struct {
	pgx.Tx
}

func TestGetQuerier(t *testing.T) {
	db := &database.DB{}

	t.Run("returns pool without a bound transaction", func(t *testing.T) {
		got := GetQuerier(context.Background(), db)
		assert.Equal(t, database.Querier(db.Pool), got)
	})

	t.Run("returns the transaction bound to the context", func(t *testing.T) {
		tx := fakeTx{}
		ctx := context.WithValue(context.Background(), txContextKey{}, pgx.Tx(tx))
		got := GetQuerier(ctx, db)
		assert.Equal(t, database.Querier(tx), got)
	})
}
