// Package auth implements operator account registration and login.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
	"github.com/atolyeos/atolye-api/pkg/config"
	"github.com/atolyeos/atolye-api/pkg/jwt"
)

// UseCase handles registration and login for operator accounts.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates an operator account. The role defaults to WORKER; only
// ADMIN and WORKER are accepted. The email must be unused.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	role := req.Role
	if role == "" {
		role = entity.RoleWorker
	}
	if role != entity.RoleAdmin && role != entity.RoleWorker {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token plus the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (string, *entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return token, user, nil
}
