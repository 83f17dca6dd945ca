package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/internal/store"
	"github.com/civicgrid/civicwatch/internal/utils"
	"github.com/civicgrid/civicwatch/models"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "civicwatch-test",
	TokenDuration: time.Hour,
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	b.localUsers.EXPECT().
		CreateUser(gomock.Any(), gomock.Cond(func(u models.User) bool {
			// only the bcrypt hash crosses the store boundary
			return u.Password == "" && u.PasswordHash != "" && u.Role == models.RoleCitizen
		})).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			u.ID = "user-1"
			return u, nil
		})

	user, token, err := svc.Register(context.Background(), models.User{
		Email:    "citizen@example.com",
		Name:     "Ada",
		Password: "secret-password",
		Role:     "superuser", // unknown roles collapse to citizen
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, models.RoleCitizen, user.Role)
	assert.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "citizen@example.com", parsed.UserEmail)
	assert.Equal(t, models.RoleCitizen, parsed.Role)
}

func TestAuthService_Register_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	_, _, err := svc.Register(context.Background(), models.User{Email: "citizen@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	b.localUsers.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Register(context.Background(), models.User{
		Email:    "citizen@example.com",
		Name:     "Ada",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	b.localUsers.EXPECT().
		FindUserByEmail(gomock.Any(), "citizen@example.com").
		Return(models.User{
			ID:           "user-1",
			Email:        "citizen@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleCitizen,
		}, nil).
		Times(2)

	user, token, err := svc.Login(context.Background(), "citizen@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token.SignedString)

	_, _, err = svc.Login(context.Background(), "citizen@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	b.localUsers.EXPECT().
		FindUserByEmail(gomock.Any(), "missing@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err := svc.Login(context.Background(), "missing@example.com", "secret-password")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBackends(ctrl)
	svc := NewAuthService(b.localOnlyFacade(), testAppConfig, logger.Nop())

	expired, err := utils.GenerateJWTToken(
		testAppConfig.TokenIssuer, "citizen@example.com", models.RoleCitizen,
		-time.Minute, testAppConfig.TokenSignKey,
	)
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), expired.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}
