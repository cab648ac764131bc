package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/identity"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for wrong username/password pairs and
// deactivated accounts alike, so login failures do not reveal which part
// was wrong
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles authentication and user management
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active || !user.CheckPassword(req.Password) {
		s.logger.Warn("login rejected", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	issued, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to record login time",
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)

	return &LoginResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresAt: issued.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// RegisterStaffUser creates a staff login
func (s *AuthService) RegisterStaffUser(ctx context.Context, req RegisterStaffUserRequest) (*UserResponse, error) {
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	user, err := identity.NewStaffUser(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// RegisterClientUser creates a portal login scoped to a client
func (s *AuthService) RegisterClientUser(ctx context.Context, req RegisterClientUserRequest) (*UserResponse, error) {
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	user, err := identity.NewClientUser(req.Username, req.Password, req.ClientID)
	if err != nil {
		return nil, err
	}
	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) checkUsernameFree(ctx context.Context, username string) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return shared.NewDomainError("DUPLICATE_USERNAME", "A user with this username already exists")
	}
	return nil
}
