package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"pms-backend/internal/config"
	"pms-backend/internal/database/models"
	apperrors "pms-backend/internal/errors"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RefreshTokenData stores information about an issued refresh token
type RefreshTokenData struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthService provides password login and JWT session management
type AuthService struct {
	cfg           *config.Config
	userRepo      *repository.UserRepository
	refreshTokens map[string]*RefreshTokenData // In-memory store for refresh tokens
	tokenMutex    sync.RWMutex                 // Protect the refresh token store
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username" example:"johndoe"`
	IsSuperuser bool      `json:"is_superuser"`
	jwt.RegisteredClaims
}

// LoginRequest represents the request for password login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse represents the response for login and refresh endpoints
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	TokenType    string               `json:"tokenType" example:"Bearer"`
	ExpiresIn    int64                `json:"expiresIn" example:"3600"`
	RefreshToken string               `json:"refreshToken,omitempty"`
	Profile      service.UserResponse `json:"profile"`
}

// LogoutResponse represents the response from the logout endpoint
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:           cfg,
		userRepo:      userRepo,
		refreshTokens: make(map[string]*RefreshTokenData),
		tokenMutex:    sync.RWMutex{},
	}
}

// Login verifies a username/password pair and opens a session. Unknown
// users and wrong passwords return the same error so the response never
// reveals which part failed.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}

	return s.openSession(user)
}

// RefreshToken rotates a refresh token and issues a new access token
func (s *AuthService) RefreshToken(refreshToken string) (*LoginResponse, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(tokenData.ExpiresAt) {
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, apperrors.ErrRefreshTokenExpired
	}

	user, err := s.userRepo.GetByID(tokenData.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}

	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()

	return s.openSession(user)
}

// Logout invalidates a refresh token. Access tokens stay valid until they
// expire.
func (s *AuthService) Logout(refreshToken string) {
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()
}

// GenerateJWT creates a signed access token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "pms-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateJWT validates and parses an access token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) openSession(user *models.User) (*LoginResponse, error) {
	jwtToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := generateRandomString(64)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.tokenMutex.Lock()
	s.refreshTokens[refreshToken] = &RefreshTokenData{
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL()),
		CreatedAt: time.Now(),
	}
	s.tokenMutex.Unlock()

	return &LoginResponse{
		AccessToken:  jwtToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL().Seconds()),
		RefreshToken: refreshToken,
		Profile: service.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsSuperuser: user.IsSuperuser,
			IsActive:    user.IsActive,
			CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}

func (s *AuthService) accessTokenTTL() time.Duration {
	return time.Duration(s.cfg.AccessTokenMinutes) * time.Minute
}

func (s *AuthService) refreshTokenTTL() time.Duration {
	return time.Duration(s.cfg.RefreshTokenHours) * time.Hour
}

func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
