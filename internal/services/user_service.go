package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wishlyBack/internal/models"
	"wishlyBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo UserStore
	Tokens   *utils.Manager
}

// AuthResult is a signed-in user together with their token pair. The
// refresh token is backed by a session row and survives access-token expiry.
type AuthResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

func (s *UserService) Register(ctx context.Context, email, name, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return AuthResult{}, models.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return AuthResult{}, err
	}
	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Password: string(hashed),
	}
	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issueTokens(ctx, created)
}

func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return AuthResult{}, models.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return AuthResult{}, models.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a live session's refresh token for a new access token.
// Expired sessions are removed on sight.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.UserRepo.DeleteSession(ctx, refreshToken)
		return "", models.ErrInvalidCredentials
	}
	return s.Tokens.NewJWT(session.UserID, accessTokenTTL)
}

// Logout revokes the session behind the refresh token. Unknown tokens are
// a no-op.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.UserRepo.DeleteSession(ctx, refreshToken)
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (AuthResult, error) {
	access, err := s.Tokens.NewJWT(user.ID, accessTokenTTL)
	if err != nil {
		return AuthResult{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return AuthResult{}, err
	}
	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
