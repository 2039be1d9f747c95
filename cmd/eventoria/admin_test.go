package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventoria/internal/domain"
)

func TestNewAdmin(t *testing.T) {
	admin, err := newAdmin("root@eventoria.ro", "secret1", "")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "Administrator", admin.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret1")))
}

func TestNewAdmin_Validation(t *testing.T) {
	_, err := newAdmin("not-an-email", "secret1", "Root")
	assert.Error(t, err)

	_, err = newAdmin("root@eventoria.ro", "123", "Root")
	assert.Error(t, err)
}
