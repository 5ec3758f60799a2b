package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, domain.ErrUserAlreadyExists
	}
	return s.create(ctx, email, password, name)
}

// Login verifies a known email. An unknown email is registered on the spot
// with the supplied password.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		user, err = s.create(ctx, email, password, displayName(email))
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			return user, err
		}
		// Lost the race against a concurrent first login.
		if user, err = s.userRepo.FindByEmail(ctx, email); err != nil || user == nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	if !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *Service) GenerateToken(userID int64) (string, error) {
	token, err := s.jwtService.GenerateJWT(userID, time.Now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) create(ctx context.Context, email, password, name string) (*domain.User, error) {
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}
	newUser, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			zap.L().Error("can't create user", zap.Error(err))
		}
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.Int64("user_id", newUser.ID))
	return newUser, nil
}

func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
