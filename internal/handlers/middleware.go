package handlers

import (
	"net/http"

	"project_space/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey      = "user"
	msgAuthenticate = "Please authenticate"
)

// authMiddleware resolves the access token cookie into an identity. Every
// failure produces the same 401 body.
func (h *Handler) authMiddleware(c *gin.Context) {
	token, err := c.Cookie(h.cfg.CookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgAuthenticate})
		return
	}

	id, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgAuthenticate})
		return
	}

	// store in Gin context
	c.Set(ctxUserKey, id)
	c.Next()
}

// currentUser returns the identity stored by authMiddleware.
func currentUser(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// setAuthCookie writes the access token cookie. Outside production it is
// neither Secure nor cross-site.
func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	if h.cfg.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.CookieName, token, maxAge, "/", "", h.cfg.Production, true)
}

func (h *Handler) clearAuthCookie(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
}
