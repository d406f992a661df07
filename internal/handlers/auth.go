package handlers

import (
	"net/http"

	"project_space/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Register
// @Description  Creates an account. The password is stored as a bcrypt hash.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      service.RegisterInput  true  "Account"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/register [post]
func (h *Handler) register(c *gin.Context) {
	var input service.RegisterInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, msgRegisterFailed, "auth_register_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Log in
// @Description  Sets the access token cookie and returns the identity it carries.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      service.LoginInput  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "user"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var input service.LoginInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, id, err := h.services.Login(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, msgLoginFailed, "auth_login_failed", "email", input.Email)
		return
	}

	h.setAuthCookie(c, token, 0)
	c.JSON(http.StatusOK, gin.H{"user": id})
}

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user"
// @Failure      401  {object}  map[string]string
// @Router       /users/auth [get]
// @Security     CookieAuth
func (h *Handler) currentIdentity(c *gin.Context) {
	id, _ := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": id})
}

// @Summary      Log out
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /users/logout [post]
func (h *Handler) logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
