package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole bloque la requête si le rôle porté par le token n'est pas dans
// la liste. Le contrôle côté client (boutons désactivés) ne suffit pas.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		roleStr, ok := role.(string)
		if !ok || !allowed[roleStr] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role_insuffisant"})
			return
		}
		c.Next()
	}
}
