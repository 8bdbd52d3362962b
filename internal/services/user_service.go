package services

import (
	"context"
	"errors"

	"github.com/asiaagro/silage-backend/internal/auth"
	"github.com/asiaagro/silage-backend/internal/cache"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/repositories"
)

var ErrTOTPRequired = errors.New("totp code required")

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// Signup creates a new user with hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	existingUser, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "operator"
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token. A correct password
// is cached in Redis so repeated logins skip the bcrypt comparison. Users
// with TOTP enabled must also supply a valid code.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}

	if _, cached := cache.GetCachedAuth(ctx, req.Email, req.Password); !cached {
		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			return nil, errors.New("invalid email or password")
		}
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		if !auth.VerifyTOTPCode(user.TOTPSecret, req.TOTPCode) {
			return nil, errors.New("invalid totp code")
		}
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// SetupTOTP generates a new TOTP secret for the user and stores it
// disabled. The user confirms with VerifyTOTP before it takes effect.
func (s *UserService) SetupTOTP(ctx context.Context, userID int) (secret, url string, err error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	secret, url, err = auth.GenerateTOTPSecret(user.Email)
	if err != nil {
		return "", "", err
	}
	if err := s.Repo.SetTOTP(ctx, userID, secret, false); err != nil {
		return "", "", err
	}
	return secret, url, nil
}

// VerifyTOTP confirms the pending secret with a live code and enables TOTP.
func (s *UserService) VerifyTOTP(ctx context.Context, userID int, code string) error {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return errors.New("totp has not been set up")
	}
	if !auth.VerifyTOTPCode(user.TOTPSecret, code) {
		return errors.New("invalid totp code")
	}
	return s.Repo.SetTOTP(ctx, userID, user.TOTPSecret, true)
}
