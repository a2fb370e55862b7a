package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "agent@bluekey.test", "agent")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "agent@bluekey.test", claims.Email)
	assert.Equal(t, "agent", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "admin@bluekey.test", "admin")
	assert.NoError(t, err)

	old := jwtSecret
	jwtSecret = []byte("some-other-secret")
	defer func() { jwtSecret = old }()

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
