package service

import (
	"testing"
	"time"

	"github.com/boranno/University-Canteen-Management-System/internal/app/model"
	"github.com/boranno/University-Canteen-Management-System/internal/app/repository"
	"github.com/boranno/University-Canteen-Management-System/internal/db"
	"github.com/boranno/University-Canteen-Management-System/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "test@campus.edu",
			password: "password123",
			userName: "Test User",
		},
		{
			name:     "Duplicate email",
			email:    "test@campus.edu",
			password: "password456",
			userName: "Another User",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.email, tt.password, tt.userName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			require.NotNil(t, tokens)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, tt.userName, user.Name)
			assert.Equal(t, model.RoleUser, user.Role)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)

			// The stored hash must verify against the raw password.
			assert.True(t, util.VerifyPassword(user.PasswordHash, tt.password))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@campus.edu", "password123", "Login User")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", email: "login@campus.edu", password: "password123"},
		{name: "Wrong password", email: "login@campus.edu", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "Unknown email", email: "ghost@campus.edu", password: "password123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			require.NotNil(t, tokens)

			claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, user.Email, claims.Email)
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@campus.edu", "password123", "Before")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "After", "https://cdn.example.com/p.png")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "https://cdn.example.com/p.png", updated.ProfileImage)

	_, err = authService.UpdateProfile(9999, "Nobody", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
