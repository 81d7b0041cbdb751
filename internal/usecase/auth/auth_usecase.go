package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/logger"
	"github.com/linkupge/linkup-backend/internal/repository"
)

// revokedKeyPrefix namespaces revoked token hashes in Redis.
const revokedKeyPrefix = "auth:revoked:"

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	redisClient *redis.Client
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	redisClient *redis.Client,
	jwtSecret string,
	expiryHours int,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		redisClient: redisClient,
		jwtSecret:   jwtSecret,
		tokenExpiry: time.Duration(expiryHours) * time.Hour,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a new account and opens a session for it.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrEmailTaken {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: true,
	}, nil
}

// Login verifies credentials and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// GetUser returns the account behind a user id.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// Logout tears down the session and best-effort pushes the token hash into
// the Redis revocation set so already-issued tokens die immediately even if
// a replica's session read lags.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	tokenHash := hashToken(tokenString)

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, revokedKeyPrefix+tokenHash, 1, uc.tokenExpiry).Err(); err != nil {
			logger.Warn("failed to record token revocation", "error", err)
		}
	}

	return uc.sessionRepo.DeleteByTokenHash(ctx, tokenHash)
}

// VerifyToken validates a JWT, checks the revocation set and the backing
// session, and returns the user id it belongs to.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}

	tokenHash := hashToken(tokenString)

	if uc.redisClient != nil {
		revoked, err := uc.redisClient.Exists(ctx, revokedKeyPrefix+tokenHash).Result()
		if err == nil && revoked > 0 {
			return "", domain.ErrSessionNotFound
		}
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return "", domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return "", domain.ErrSessionExpired
	}

	return userID, nil
}

func (uc *AuthUseCase) createSession(ctx context.Context, userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.tokenExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:    userID,
		TokenHash: hashToken(tokenString),
		ExpiresAt: expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// hashToken stores only a SHA256 digest of tokens at rest.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
