package handlers

import (
	"net/http"

	_ "project_space/docs"
	"project_space/internal/logger"
	"project_space/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultCookieName    = "accessToken"
	defaultMaxUploadSize = 5 << 20 // 5 MiB
)

// Config holds the HTTP-level settings of the handler.
type Config struct {
	// CookieName is the name of the cookie carrying the access token.
	CookieName string
	// Production switches the cookie to Secure and SameSite=None.
	Production bool
	// MaxUploadSize caps the multipart body of an image upload, in bytes.
	MaxUploadSize int64
	// AllowedOrigins lists the browser origins allowed to call the API with
	// credentials.
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.welcome)
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerProjectRoutes(router)
	h.registerFileRoutes(router)

	// Project list stream over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.GET("/auth", h.authMiddleware, h.currentIdentity)
		users.POST("/logout", h.logout)
	}
}

func (h *Handler) registerProjectRoutes(r *gin.Engine) {
	projects := r.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.POST("", h.authMiddleware, h.createProject)
		projects.PUT("/:id", h.authMiddleware, h.updateProject)
		projects.DELETE("/:id", h.authMiddleware, h.deleteProject)
	}
}

func (h *Handler) registerFileRoutes(r *gin.Engine) {
	files := r.Group("/files", h.authMiddleware)
	{
		files.POST("/upload", h.uploadFile)
	}
}

// @Summary      Welcome
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the project space!")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
