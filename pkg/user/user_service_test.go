package user

import (
	"calorie-snap/domain"
	"calorie-snap/entities"
	"calorie-snap/pkg/jwt"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestService(t *testing.T) (UserService, jwt.JWTService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to create test database")
	require.NoError(t, db.AutoMigrate(&entities.User{}), "Failed to migrate schema")

	jwtService := jwt.NewJWTService("test-secret")
	return NewUserService(NewUserRepository(db), jwtService), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := setupUserTestService(t)

	registered, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Sam",
		Email:    " Sam@Example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", registered.Email)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "sam@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, login.Role)

	userID, _, err := jwtService.GetUserIDByToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUserTestService(t)
	req := domain.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct-horse"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUserTestService(t)

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "sam@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := setupUserTestService(t)

	_, err := svc.Me(context.Background(), "6f1c2a9e-4a52-4a8e-9d1b-8f0d2f7f6a11")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
