package api

import (
	"github.com/labstack/echo/v4"

	"opsconsole-backend/internal/auth"
	"opsconsole-backend/internal/database"
)

// Handler state shared by the route handlers.
var (
	authService  *auth.Service
	deptRepo     *database.DeptRepo
	menuRepo     *database.MenuRepo
	loginLogRepo *database.LoginLogRepo

	loginRateLimiter = auth.DefaultRateLimiter()
)

// RegisterRoutes sets up all API routes. Paths are fixed; clients depend on
// them verbatim.
func RegisterRoutes(e *echo.Echo, authSvc *auth.Service) {
	authService = authSvc
	deptRepo = database.NewDeptRepo()
	menuRepo = database.NewMenuRepo()
	loginLogRepo = database.NewLoginLogRepo()

	e.GET("/health", healthCheck)

	// Public
	e.POST("/login", loginHandler, loginRateLimiter.Middleware())
	e.POST("/register", registerHandler)
	e.POST("/logout", logoutHandler)

	// Require a live session
	protected := e.Group("", auth.RequireAuth(authSvc))
	protected.GET("/getInfo", getInfoHandler)
	protected.GET("/getRouters", getRoutersHandler)
}
