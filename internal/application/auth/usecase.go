package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/evodia-api/internal/application/dto"
	"github.com/jhoicas/evodia-api/internal/domain"
	"github.com/jhoicas/evodia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credenciales del único operador del negocio. PasswordHash es bcrypt.
type Operator struct {
	Username     string
	PasswordHash string
}

// AuthUseCase login del operador.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y genera el JWT. Sin hash configurado nadie puede entrar.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.Username)), []byte(uc.operator.Username)) == 1
	// bcrypt se evalúa siempre para no filtrar por tiempo si el usuario existe
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Username, uc.jwtCfg.Issuer, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, Operator: uc.operator.Username}, nil
}
