package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 64
)

type AuthService interface {
	RegisterUser(ctx context.Context, username, password string) (*types.User, error)
	LoginUser(ctx context.Context, username, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) RegisterUser(ctx context.Context, username, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return nil, apierr.Validation("invalid_username", fmt.Errorf("username must be 1-%d characters", maxUsernameLength))
	}
	if len(password) < minPasswordLength {
		return nil, apierr.Validation("invalid_password", fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, apierr.Store("user_lookup_failed", fmt.Errorf("check username: %w", err))
	}
	if exists {
		return nil, apierr.Conflict("username_taken", errors.New("username already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{ID: uuid.New(), Username: username, Password: string(hashed)}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("username_taken", errors.New("username already registered"))
		}
		return nil, apierr.Store("user_create_failed", fmt.Errorf("create user: %w", err))
	}
	as.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apierr.Auth("invalid_credentials", errors.New("incorrect username or password"))
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return "", apierr.Store("user_lookup_failed", fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return "", apierr.Auth("invalid_credentials", errors.New("incorrect username or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierr.Auth("invalid_credentials", errors.New("incorrect username or password"))
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates a bearer token and attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Auth("unauthorized", errors.New("missing bearer token"))
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ctx, apierr.Auth("token_expired", errors.New("token expired"))
		}
		return ctx, apierr.Auth("unauthorized", fmt.Errorf("invalid token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Auth("unauthorized", errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Auth("unauthorized", fmt.Errorf("invalid user id in token: %w", err))
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return ctx, apierr.Store("user_lookup_failed", fmt.Errorf("load token user: %w", err))
	}
	if len(users) == 0 {
		return ctx, apierr.Auth("unauthorized", errors.New("token user no longer exists"))
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Username:    users[0].Username,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
