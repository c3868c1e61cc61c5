package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/internal/pkg/jwt"
)

func TestParse(t *testing.T) {
	token, err := jwt.GenerateToken(42, "alice", "editor", "secret", 1)
	require.NoError(t, err)

	t.Run("verified", func(t *testing.T) {
		s, err := Parse(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, token, s.Token)
		assert.Equal(t, int64(42), s.UserID)
		assert.Equal(t, "alice", s.Username)
		assert.Equal(t, "editor", s.Role)
		assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)
	})

	t.Run("unverified without secret", func(t *testing.T) {
		s, err := Parse(token, "")
		require.NoError(t, err)
		assert.Equal(t, int64(42), s.UserID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := Parse(token, "other")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := jwt.GenerateToken(1, "bob", "reader", "secret", -1)
		require.NoError(t, err)
		_, err = Parse(expired, "")
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}

func TestHasRole(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.HasRole("editor"))

	editor := &Session{Role: "editor"}
	assert.True(t, editor.HasRole("editor"))
	assert.False(t, editor.HasRole("admin"))

	admin := &Session{Role: "admin"}
	assert.True(t, admin.HasRole("editor"))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithToken(context.Background(), "tok")
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", s.Token)

	_, ok = FromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}
