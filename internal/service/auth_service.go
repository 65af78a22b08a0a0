package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/user/dayboard/backend/internal/dto"
	"github.com/user/dayboard/backend/internal/models"
	"github.com/user/dayboard/backend/internal/notification/slack"
	"github.com/user/dayboard/backend/internal/repository"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
	"github.com/user/dayboard/backend/pkg/jwt"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	jwtManager   *jwt.Manager
	googleClient *http.Client
	slackClient  *slack.Client
}

func NewAuthService(userRepo *repository.UserRepository, jwtManager *jwt.Manager, slackClient *slack.Client) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		googleClient: &http.Client{},
		slackClient:  slackClient,
	}
}

// GoogleUserInfo represents the verified identity from Google's tokeninfo endpoint
type GoogleUserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// AuthenticateWithGoogle verifies the Google ID token and returns auth tokens
func (s *AuthService) AuthenticateWithGoogle(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	userInfo, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthorized, "Invalid Google token", http.StatusUnauthorized)
	}

	user, isNew, err := s.userRepo.FindOrCreate(
		userInfo.ID,
		userInfo.Email,
		userInfo.Name,
		userInfo.Picture,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to create user", http.StatusInternalServerError)
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to generate tokens", http.StatusInternalServerError)
	}

	if isNew && s.slackClient != nil {
		s.slackClient.SendNewUserNotification(user.Email, user.DisplayName)
	}

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    s.jwtManager.GetAccessDuration(),
		User:         userToDTO(user),
	}, nil
}

// RefreshToken generates new tokens from a valid refresh token
func (s *AuthService) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	tokenPair, err := s.jwtManager.RefreshTokens(refreshToken)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, err := s.jwtManager.ValidateToken(tokenPair.AccessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    s.jwtManager.GetAccessDuration(),
		User:         userToDTO(user),
	}, nil
}

// verifyGoogleToken verifies the Google ID token using Google's tokeninfo endpoint
func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	url := fmt.Sprintf("https://oauth2.googleapis.com/tokeninfo?id_token=%s", idToken)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.googleClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google token verification failed: %s", string(body))
	}

	var tokenInfo struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, err
	}

	return &GoogleUserInfo{
		ID:      tokenInfo.Sub,
		Email:   tokenInfo.Email,
		Name:    tokenInfo.Name,
		Picture: tokenInfo.Picture,
	}, nil
}

func userToDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}
