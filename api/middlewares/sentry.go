package middlewares

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware reports panics to Sentry and re-panics so gin's recovery
// still answers 500. Without sentry.Init the hub has no client and nothing
// is sent.
func SentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		c.Set("sentryHub", hub)

		defer func() {
			if r := recover(); r != nil {
				hub.RecoverWithContext(c.Request.Context(), r)
				panic(r)
			}
		}()
		c.Next()
	}
}

// CaptureError reports err on the request's hub, if any.
func CaptureError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if v, ok := c.Get("sentryHub"); ok {
		if hub, ok := v.(*sentry.Hub); ok {
			hub.CaptureException(err)
			return
		}
	}
	sentry.CaptureException(err)
}
