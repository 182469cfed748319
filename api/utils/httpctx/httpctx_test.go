package httpctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
	assert.False(t, IsAdminRequest(c))

	SetUser(c, 7, true)
	uid, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(7), uid)
	assert.True(t, IsAdminRequest(c))

	// Ids of the wrong type are ignored.
	c.Set(userIDKey, 7)
	_, ok = CurrentUserID(c)
	assert.False(t, ok)
}
