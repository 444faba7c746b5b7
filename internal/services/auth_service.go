package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saaaathvik/consultansease/internal/models"
	"github.com/saaaathvik/consultansease/internal/repositories"
	"github.com/saaaathvik/consultansease/internal/utils"
)

// AuthService covers signup and credential verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, utils.ErrInvalidCredentials
	}
	return user, nil
}
