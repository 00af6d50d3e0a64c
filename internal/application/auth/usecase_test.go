package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/evodia-api/internal/application/auth"
	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/domain"
	pkgjwt "github.com/jhoicas/evodia-api/pkg/jwt"
)

func newAuth(t *testing.T, password string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.Operator{Username: "evodia", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "evodia-test"},
	)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newAuth(t, "rahasia")

	resp, err := uc.Login(dto.LoginRequest{Username: "evodia", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, "evodia", resp.Operator)

	claims, err := pkgjwt.Parse("test-secret", "evodia-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "evodia", claims.Operator)
}

func TestLogin_Rechazos(t *testing.T) {
	uc := newAuth(t, "rahasia")

	_, err := uc.Login(dto.LoginRequest{Username: "evodia", Password: "salah"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Username: "otro", Password: "rahasia"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	sinHash := auth.NewAuthUseCase(auth.Operator{Username: "evodia"}, auth.JWTConfig{Secret: "x"})
	_, err = sinHash.Login(dto.LoginRequest{Username: "evodia", Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
