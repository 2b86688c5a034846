package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fdweb/pkg/utils"
)

const AdminQueryParam = "admin"

// IsAdmin reports whether the request carries ?admin=true. Any other value,
// including "1" or "TRUE", does not count.
func IsAdmin(c *gin.Context) bool {
	return c.Query(AdminQueryParam) == "true"
}

// AdminFlagMiddleware hides the admin routes behind the query flag. There is
// no authentication; without the flag the routes simply do not exist.
func AdminFlagMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.RespondError(c, http.StatusNotFound, "Not found")
			c.Abort()
			return
		}
		c.Next()
	}
}
