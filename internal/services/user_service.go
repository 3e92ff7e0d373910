package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wms-backend/internal/auth"
	"wms-backend/internal/cache"
	"wms-backend/internal/models"
	"wms-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles signup, login, and user administration.
type UserService struct {
	users *repositories.UserRepository
	jwt   *auth.JWTManager
	totp  *TOTPService
}

func NewUserService(users *repositories.UserRepository, jwt *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{users: users, jwt: jwt, totp: totp}
}

// Signup registers a new operator account. Roles beyond operator are assigned
// by an admin afterwards.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         "operator",
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a JWT. Admins with 2FA enabled get a
// short-lived temp token instead and must complete VerifyTOTP.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	// bcrypt is the expensive part; a cache hit for the same credentials
	// skips it.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || int(cachedID) != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	}

	if user.TOTPEnabled {
		temp, err := s.jwt.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{TempToken: temp, RequiresTOTP: true}, nil
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// VerifyTOTP is the second login step for 2FA-enrolled users.
func (s *UserService) VerifyTOTP(ctx context.Context, req *models.VerifyTOTPRequest) (*models.AuthResponse, error) {
	claims, err := s.jwt.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, errors.New("invalid or expired temp token")
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.totp.Verify(ctx, user.ID, req.Code); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if err := validRole(req.Role); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validRole(req.Role); err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Role = req.Role
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) ToggleActive(ctx context.Context, id int) (bool, error) {
	return s.users.ToggleActive(ctx, id)
}

func validRole(role string) error {
	switch role {
	case "admin", "operator", "supervisor":
		return nil
	}
	return fmt.Errorf("unknown role %q", role)
}
