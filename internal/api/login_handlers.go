package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"opsconsole-backend/internal/auth"
	"opsconsole-backend/internal/database"
	"opsconsole-backend/internal/models"
)

// loginHandler handles POST /login
func loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.UserName == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "username and password are required",
		})
	}

	ctx := c.Request().Context()
	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	user, dept, err := authService.Authenticate(ctx, req)
	if err != nil {
		recordLogin(req.UserName, ipAddress, userAgent, models.LoginStatusFailure, err.Error())
		return loginError(c, err)
	}

	token, err := authService.IssueSession(ctx, user, dept, req.LoginInfo, ipAddress)
	if err != nil {
		recordLogin(req.UserName, ipAddress, userAgent, models.LoginStatusFailure, err.Error())
		return loginError(c, err)
	}

	recordLogin(req.UserName, ipAddress, userAgent, models.LoginStatusSuccess, models.LoginMsgSuccess)
	loginRateLimiter.RecordSuccess(ipAddress)

	// API-doc UIs expect the OAuth2 password-grant response shape.
	if referer := c.Request().Referer(); strings.HasSuffix(referer, "docs") || strings.HasSuffix(referer, "redoc") {
		return c.JSON(http.StatusOK, map[string]string{
			"access_token": token,
			"token_type":   "Bearer",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
	})
}

// loginError maps authentication failures onto HTTP statuses. Credential
// failures share one message so callers cannot probe for valid usernames.
func loginError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "invalid username or password",
		})
	case errors.Is(err, auth.ErrCaptchaRequired), errors.Is(err, auth.ErrCaptchaMismatch):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	case errors.Is(err, auth.ErrAccountDisabled):
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "user account is disabled",
		})
	case errors.Is(err, auth.ErrAccountLocked):
		return c.JSON(http.StatusLocked, map[string]string{
			"error": "user account is locked",
		})
	case errors.Is(err, auth.ErrStoreUnavailable):
		c.Logger().Error("session store error: ", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "authentication service unavailable",
		})
	default:
		c.Logger().Error("login error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "authentication failed",
		})
	}
}

// logoutHandler handles POST /logout. Logout always succeeds: revoking an
// expired, revoked or never-issued token is a no-op, and even store failures
// only get logged.
func logoutHandler(c echo.Context) error {
	token := auth.TokenFromRequest(c)
	if token != "" {
		if claims, err := authService.Codec().Decode(token, false); err == nil {
			recordLogin(claims.UserName, c.RealIP(), c.Request().UserAgent(),
				models.LoginStatusSuccess, models.LoginMsgLogout)
		}
		if err := authService.Revoke(c.Request().Context(), token); err != nil {
			c.Logger().Error("logout error: ", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// getInfoHandler handles GET /getInfo
func getInfoHandler(c echo.Context) error {
	user := auth.UserFromContext(c)

	var dept *models.Dept
	if user.DeptID != 0 {
		dept, _ = deptRepo.GetByID(user.DeptID)
	}

	perms, err := menuRepo.ListPermsByUserID(user.ID)
	if err != nil {
		c.Logger().Error("get permissions error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to load user info",
		})
	}
	if perms == nil {
		perms = []string{}
	}

	return c.JSON(http.StatusOK, models.CurrentUser{
		User:        user,
		Dept:        dept,
		Permissions: perms,
	})
}

// getRoutersHandler handles GET /getRouters
func getRoutersHandler(c echo.Context) error {
	user := auth.UserFromContext(c)

	menus, err := menuRepo.ListByUserID(user.ID)
	if err != nil {
		c.Logger().Error("get routers error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to load routes",
		})
	}

	routers := database.BuildRouterTree(menus)
	if routers == nil {
		routers = []*models.Router{}
	}

	return c.JSON(http.StatusOK, routers)
}

// registerHandler handles POST /register
func registerHandler(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	user, err := authService.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRegistrationDisabled):
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "registration is disabled",
			})
		case errors.Is(err, auth.ErrUserNameTaken):
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "username already exists",
			})
		case errors.Is(err, auth.ErrStoreUnavailable):
			c.Logger().Error("register store error: ", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "registration service unavailable",
			})
		default:
			c.Logger().Error("register error: ", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "failed to register user",
			})
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "registration successful",
		"userId":  user.ID,
	})
}

// recordLogin appends a login log row; failures never block the login path.
func recordLogin(userName, ip, userAgent string, status int, message string) {
	if err := loginLogRepo.Record(userName, ip, userAgent, status, message); err != nil {
		log.Printf("failed to record login log for %s: %v", userName, err)
	}
}
