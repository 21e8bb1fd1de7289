package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       primitive.NewObjectID(),
		FullName: "Jane Writer",
		Email:    "jane@example.com",
		Role:     "author",
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", "blogapi", time.Hour)
	require.NoError(t, err)

	user := testUser()
	raw, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID())
	assert.Equal(t, "author", claims.Role)
	assert.Equal(t, "blogapi", claims.Issuer)
}

func TestManagerRejectsExpired(t *testing.T) {
	m, err := NewManager("test-secret", "blogapi", time.Minute)
	require.NoError(t, err)

	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }
	raw, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsWrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", "blogapi", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-b", "blogapi", time.Hour)
	require.NoError(t, err)

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerRejectsGarbage(t *testing.T) {
	m, err := NewManager("test-secret", "blogapi", time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", "blogapi", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("", "s3cret-password"))
}
