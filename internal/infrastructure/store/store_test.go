package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	repos, err := Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Ping(ctx))

	now := time.Now().UTC()
	u := &entity.User{ID: uuid.New().String(), Email: "ana@example.com", DisplayName: "Ana", PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Users.Create(ctx, u))
	got, err := repos.Users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "mysql"}, zerolog.Nop())
	assert.ErrorContains(t, err, "mysql")
}
