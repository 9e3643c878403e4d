package usecase

import (
	"context"
	"testing"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authConfig() *utils.Config {
	return &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
}

func TestRegisterAndLogin(t *testing.T) {
	repo, _ := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	auth, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCustomer, auth.Role)
	assert.NotEmpty(t, auth.Token)

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo, _ := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	req := &request.RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret123",
	}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRegisterDecoratorRole(t *testing.T) {
	repo, _ := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	auth, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Dana Deco",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     "decorator",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDecorator, auth.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, _ := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	repo, _ := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestLogoutRevokesSession(t *testing.T) {
	repo, f := newFakes()
	svc := NewAuthService(repo, authConfig(), zap.NewNop())

	auth, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), auth.Token))

	session, err := f.sessions.FindValidSession(context.Background(), auth.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}
