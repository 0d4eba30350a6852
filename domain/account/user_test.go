package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("jdoe", "  Jane Doe ")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "Jane Doe", user.FullName)
}

func TestNewUserRejectsBlankUsername(t *testing.T) {
	_, err := NewUser("   ", "Jane")
	assert.Error(t, err)
}

func TestDisplayNamePrecedence(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			"full name wins",
			User{Username: "jdoe", FirstName: "Jane", LastName: "Doe", FullName: "J. Doe"},
			"J. Doe",
		},
		{
			"first and last name",
			User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"},
			"Jane Doe",
		},
		{
			"first name only",
			User{Username: "jdoe", FirstName: "Jane"},
			"Jane",
		},
		{
			"title-cased username fallback",
			User{Username: "jane doe"},
			"Jane Doe",
		},
		{
			"username with separators",
			User{Username: "jane_m.doe"},
			"Jane_M.Doe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
