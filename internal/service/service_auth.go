package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

// authService is the concrete implementation of AuthService. It handles
// registration, credential verification and the JWT lifecycle, storing only
// bcrypt hashes of user passwords.
type authService struct {
	*facade

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(f *facade, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		facade:        f,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register creates a new account and immediately issues a token for it.
// Unknown roles collapse to citizen; admin and worker accounts are expected
// to be provisioned with their role spelled out.
func (a *authService) Register(ctx context.Context, user models.User) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" || user.Name == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	switch user.Role {
	case models.RoleAdmin, models.RoleWorker:
	default:
		user.Role = models.RoleCitizen
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	registered, err := runFallback(ctx, a.facade, "CreateUser", func(b *store.Backend) (models.User, error) {
		return b.Users.CreateUser(ctx, user)
	})
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.createToken(ctx, registered)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return registered, token, nil
}

// Login authenticates an existing user and issues a fresh token.
func (a *authService) Login(ctx context.Context, email string, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid credentials provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := runFallback(ctx, a.facade, "FindUserByEmail", func(b *store.Backend) (models.User, error) {
		return b.Users.FindUserByEmail(ctx, email)
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Error().Str("email", email).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	token, err := a.createToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// ParseToken validates a JWT and extracts the caller's identity claims.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Msg("token validation failed")
		return models.Token{}, fmt.Errorf("token validation failed: %w", err)
	}

	return token, nil
}

func (a *authService) createToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("token generation failed: %w", err)
	}

	return token, nil
}
