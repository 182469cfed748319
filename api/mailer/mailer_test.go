package mailer

import (
	"context"
	"testing"

	"PickEm/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordReset(t *testing.T) {
	html, text, err := RenderPasswordReset("https://pickem.example", "sam", "https://pickem.example/reset?token=abc")
	require.NoError(t, err)

	assert.Contains(t, html, "https://pickem.example/reset?token=abc")
	assert.Contains(t, text, "https://pickem.example/reset?token=abc")
	assert.Contains(t, text, "sam")
}

func TestNewSendGridWithoutKey(t *testing.T) {
	m := NewSendGrid(config.Config{})
	assert.Nil(t, m)
	assert.ErrorIs(t, m.SendPasswordReset(context.Background(), "a@b.c", "a", "l"), ErrNotConfigured)
}
