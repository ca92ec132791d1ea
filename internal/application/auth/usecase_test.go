package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockledger/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth(t *testing.T) (*auth.AuthUseCase, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	uc := auth.NewAuthUseCase(sqlite.NewUserRepository(store.DB()), auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "stockledger",
	}).WithBcryptCost(bcrypt.MinCost)
	return uc, store
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.Register(ctx, dto.RegisterRequest{Email: "  Ana@Example.COM ", Password: "supersecreto", DisplayName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, u.IsActive)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otraclave1", DisplayName: "Ana 2"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.EntityUser, domain.EntityOf(err))

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := jwt.Parse(testSecret, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "stockledger", claims.Issuer)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.DisplayName)
}

func TestLogin_Failures(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecreto", DisplayName: "Ana"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecreto"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, sqlite.NewUserRepository(store.DB()).Create(ctx, &entity.User{
		ID: uuid.New().String(), Email: "inactivo@example.com", DisplayName: "Inactivo",
		PasswordHash: string(hash), IsActive: false, CreatedAt: now, UpdatedAt: now,
	}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "inactivo@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Me(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
