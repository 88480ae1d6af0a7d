package service

import (
	"fmt"
	"time"

	"todo-notes-server/internal/domain"
	"todo-notes-server/internal/repository"
	"todo-notes-server/pkg/hash"
	"todo-notes-server/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo        repository.UserRepository
	jwtSecret       string
	loginExpiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, loginExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       jwtSecret,
		loginExpiration: loginExpiration,
	}
}

// Register creates the account and returns it together with a
// non-expiring access token. Only the user's ID goes into the token;
// details are re-fetched server-side on each request.
func (s *AuthService) Register(req *domain.RegisterRequest) (*domain.User, string, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, "", ErrDuplicateAccount
	}

	hashedPassword, err := hash.Hash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedOn: time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := jwt.GenerateToken(user.ID, 0, s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	// Return a copy with the password cleared so the stored user (which
	// the repository may retain by pointer) keeps its hash.
	registered := *user
	registered.Password = ""
	return &registered, token, nil
}

func (s *AuthService) Login(req *domain.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", ErrUserNotFound
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.loginExpiration, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, nil
}
