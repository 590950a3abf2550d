// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the acting user's identity. Authentication itself is
// owned by the upstream identity provider (the platform gateway terminates
// sessions and forwards the resolved user in the X-User-ID header); this
// middleware only carries that identity into the request context. Handlers
// decide whether an anonymous request is acceptable for their route.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the Gin context key under which the user id is stored.
	userIDKey = "userID"
	// userIDHeader is the identity header set by the upstream session layer.
	userIDHeader = "X-User-ID"
)

// Identity extracts the authenticated user from the identity header and
// stores it in the Gin context. An absent header leaves the request
// anonymous; it does not abort, so public routes (health, metrics, docs)
// keep working.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(userIDHeader)); uid != "" {
			c.Set(userIDKey, uid)
		}
		c.Next()
	}
}

// CurrentUser returns the acting user id, or "" when the request is
// anonymous.
func CurrentUser(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
