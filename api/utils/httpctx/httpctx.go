// Package httpctx carries the authenticated caller on a gin context.
package httpctx

import "github.com/gin-gonic/gin"

const (
	userIDKey = "userID"
	adminKey  = "isAdmin"
)

// SetUser records the caller resolved from the bearer token.
func SetUser(c *gin.Context, id uint, admin bool) {
	c.Set(userIDKey, id)
	c.Set(adminKey, admin)
}

// CurrentUserID reports the authenticated caller. Handlers outside the
// token-auth group always get false.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok && uid != 0
}

func IsAdminRequest(c *gin.Context) bool {
	return c.GetBool(adminKey)
}
