package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
	hash "github.com/DhavalSuthar-24/scoutnet/utils"
)

var (
	errEmailTaken   = apperrors.Conflict("User with this email already exists")
	errBadLogin     = apperrors.Authentication("Invalid email or password")
	errInactive     = apperrors.Authorization("Account is not active")
	errBadRefresh   = apperrors.Authentication("Invalid refresh token")
	errUnknownOwner = apperrors.Authentication("User not found")
)

type AuthService struct {
	repo   AuthRepository
	users  user.UserRepository
	tokens TokenConfig
	now    func() time.Time
}

func NewAuthService(repo AuthRepository, users user.UserRepository, tokens TokenConfig) *AuthService {
	return &AuthService{repo: repo, users: users, tokens: tokens, now: time.Now}
}

// Register creates a player or scout account with its profile and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.Validation("Passwords do not match")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}
	role := user.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if role != user.RolePlayer && role != user.RoleScout {
		return nil, apperrors.Validation("Role must be either player or scout")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}

	var dob *time.Time
	if role == user.RolePlayer && strings.TrimSpace(req.DOB) != "" {
		d, err := player.ParseDOB(req.DOB, s.now())
		if err != nil {
			return nil, err
		}
		dob = d
	}

	email := utils.NormalizeEmail(req.Email)
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errEmailTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &user.User{Name: name, Email: email, Password: hashed, Role: role, Status: user.StatusActive}

	org := strings.TrimSpace(req.Organization)
	err = s.repo.CreateAccount(ctx, u, func(id uint) any {
		if role == user.RoleScout {
			return &scout.ScoutProfile{UserID: id, Organization: org}
		}
		return &player.PlayerProfile{UserID: id, DateOfBirth: dob, Rating: player.MinRating}
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errEmailTaken
	}
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("user_id", u.ID).Str("role", string(role)).Msg("user registered")
	return s.issue(u)
}

// Login checks credentials first and only then the account status.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.users.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !hash.CheckPassword(u.Password, password) {
		return nil, errBadLogin
	}
	if !u.IsActive() {
		return nil, errInactive
	}
	return s.issue(u)
}

// Refresh exchanges a refresh token for a new access token carrying the current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := token.ValidateRefreshToken(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindAuthentication, errBadRefresh.Message)
	}
	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUnknownOwner
	}
	if !u.IsActive() {
		return nil, errInactive
	}
	access, err := token.GenerateJWT(u.ID, string(u.Role), s.tokens.AccessSecret, s.tokens.AccessExpiryMinutes)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: access}, nil
}

func (s *AuthService) Me(ctx context.Context, u *user.User) (*MeResponse, error) {
	resp := &MeResponse{User: u}
	switch u.Role {
	case user.RolePlayer:
		p, err := s.repo.GetPlayerProfile(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			resp.Profile = p
		}
	case user.RoleScout:
		p, err := s.repo.GetScoutProfile(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			resp.Profile = p
		}
	}
	return resp, nil
}

func (s *AuthService) issue(u *user.User) (*AuthResponse, error) {
	access, err := token.GenerateJWT(u.ID, string(u.Role), s.tokens.AccessSecret, s.tokens.AccessExpiryMinutes)
	if err != nil {
		return nil, fmt.Errorf("access token generation failed: %w", err)
	}
	refresh, err := token.GenerateRefreshToken(u.ID, string(u.Role), s.tokens.RefreshSecret, s.tokens.RefreshExpiryDays)
	if err != nil {
		return nil, fmt.Errorf("refresh token generation failed: %w", err)
	}
	return &AuthResponse{Token: access, RefreshToken: refresh, User: u}, nil
}
