package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrodash/plot-api/internal/constants"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToAssignRole   = errors.New("failed to assign role")
)

// AuthService handles registration, login and session token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a user with the default role and signs a token for it.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, invalid("name, email and password are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, invalid(fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}

	taken, err := s.userRepo.EmailTaken(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Active:       true,
	}

	if err := s.userRepo.CreateWithRole(user, models.RoleUser); err != nil {
		switch {
		// A concurrent registration can win the race after the check above.
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrAssignRole):
			return nil, ErrFailedToAssignRole
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	return s.issue(user)
}

// Login verifies credentials and signs a token for the user.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the current state of the authenticated user.
func (s *AuthService) Me(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
