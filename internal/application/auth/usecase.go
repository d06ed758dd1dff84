// Package auth implementa el login contra el caché local de usuarios.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/domain"
	"github.com/sm-global/express-api/internal/domain/repository"
	"github.com/sm-global/express-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	users  repository.UserStore
	jwtCfg JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserStore, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el caché local, genera JWT y retorna
// token + usuario sin contraseña.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !passwordMatches(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, user.Branch, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// passwordMatches acepta tanto hashes bcrypt como valores aún sin hashear:
// el caché guarda texto plano hasta el primer push, que lo protege con bcrypt.
func passwordMatches(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return stored == candidate
}
