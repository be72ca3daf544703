package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	env := setupServiceTestEnv(t)

	user, err := env.auth.Signup(SignupInput{Email: "  Jane@Example.com ", Password: "secret1", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = env.auth.Signup(SignupInput{Email: "JANE@example.com", Password: "another", Name: "Jane"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	tests := []struct {
		name  string
		input SignupInput
		want  error
	}{
		{"missing email", SignupInput{Password: "secret1", Name: "Bob"}, ErrEmailRequired},
		{"short password", SignupInput{Email: "bob@example.com", Password: "12345", Name: "Bob"}, ErrPasswordTooShort},
		{"short name", SignupInput{Email: "bob@example.com", Password: "secret1", Name: " B "}, ErrNameTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Signup(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTestEnv(t)
	created, err := env.auth.Signup(SignupInput{Email: "login@example.com", Password: "password", Name: "Login"})
	require.NoError(t, err)

	user, err := env.auth.Login(LoginInput{Email: "LOGIN@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = env.auth.Login(LoginInput{Email: "login@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(LoginInput{Email: "ghost@example.com", Password: "password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.GetUser(created.ID + 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
