package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"opsconsole-backend/internal/api"
	"opsconsole-backend/internal/auth"
	"opsconsole-backend/internal/cache"
	"opsconsole-backend/internal/config"
	"opsconsole-backend/internal/database"
	"opsconsole-backend/internal/models"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Initialize database
	log.Printf("Initializing database at %s", cfg.DBPath)
	if err := database.Open(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := createDefaultAdminIfNeeded(); err != nil {
		log.Printf("Warning: failed to create default admin: %v", err)
	}

	// Connect redis and warm the config cache from the database
	rdb, err := cache.Connect(ctx, cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	configCache := cache.NewConfigCache(rdb)
	entries, err := database.NewSysConfigRepo().GetAll()
	if err != nil {
		log.Fatalf("Failed to load system config: %v", err)
	}
	if err := configCache.Warm(ctx, entries); err != nil {
		log.Fatalf("Failed to warm config cache: %v", err)
	}

	// Initialize auth service
	authSvc := auth.NewService(auth.ServiceConfig{
		Users:    database.NewUserRepo(),
		Depts:    database.NewDeptRepo(),
		Store:    cache.NewSessionStore(rdb),
		Flags:    configCache,
		Captcha:  cache.NewCaptchaStore(rdb),
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
		StoreTTL: cfg.StoreTTL,
		Policy:   auth.SessionPolicy{MultiLogin: cfg.MultiLogin},
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api.RegisterRoutes(e, authSvc)

	log.Printf("Starting opsconsole backend on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// createDefaultAdminIfNeeded seeds a department and admin account on an
// empty database
func createDefaultAdminIfNeeded() error {
	userRepo := database.NewUserRepo()

	count, err := userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Users already exist
	}

	log.Println("Creating default admin user (admin/admin123) - CHANGE THIS PASSWORD!")

	dept := &models.Dept{DeptName: "Headquarters"}
	if err := database.NewDeptRepo().Create(dept); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		UserName:     "admin",
		NickName:     "Administrator",
		PasswordHash: passwordHash,
		DeptID:       dept.ID,
		Status:       models.StatusNormal,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	return seedAdminMenus(admin.ID)
}

// seedAdminMenus grants the stock system-management menu tree to a user
func seedAdminMenus(userID int64) error {
	menuRepo := database.NewMenuRepo()

	menus := []*models.Menu{
		{
			MenuName: "System",
			Path:     "/system",
			MenuType: models.MenuTypeDir,
			Icon:     "system",
			Visible:  true,
		},
		{
			MenuName:  "Users",
			Path:      "user",
			Component: "system/user/index",
			MenuType:  models.MenuTypePage,
			Perms:     "system:user:list",
			OrderNum:  1,
			Visible:   true,
		},
		{
			MenuName:  "Menus",
			Path:      "menu",
			Component: "system/menu/index",
			MenuType:  models.MenuTypePage,
			Perms:     "system:menu:list",
			OrderNum:  2,
			Visible:   true,
		},
	}

	for i, m := range menus {
		if i > 0 {
			m.ParentID = menus[0].ID
		}
		if err := menuRepo.Create(m); err != nil {
			return err
		}
		if err := menuRepo.Grant(userID, m.ID); err != nil {
			return err
		}
	}

	return nil
}
