package router

import (
	"database/sql"

	"medstaff_backend/internal/handlers"
	"medstaff_backend/internal/middleware"
	"medstaff_backend/internal/repositories"
	"medstaff_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, uploadDir string) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	facilityRepo := repositories.NewFacilityRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	timeClockRepo := repositories.NewTimeClockRepository(db)
	postRepo := repositories.NewPostRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	staffService := services.NewStaffService(staffRepo, facilityRepo, postRepo, db)
	facilityService := services.NewFacilityService(facilityRepo, db)
	shiftService := services.NewShiftService(shiftRepo, facilityRepo, db)
	timeClockService := services.NewTimeClockService(timeClockRepo, staffRepo, db)
	settingsService := services.NewSettingsService(settingsRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService, uploadDir)
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	timeClockHandler := handlers.NewTimeClockHandler(timeClockService)
	settingHandler := handlers.NewSettingHandler(settingsService)

	api := engine.Group("/api")

	// Public authentication routes plus the authenticated /auth/me.
	SetupAuthRoutes(api, authHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupStaffRoutes(authenticated, staffHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupFacilityRoutes(authenticated, facilityHandler)
		SetupTimeClockRoutes(authenticated, timeClockHandler)
		SetupUserRoutes(authenticated, authHandler)
		SetupSettingsRoutes(authenticated, settingHandler)
	}
}
