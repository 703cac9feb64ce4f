package router

import (
	"medstaff_backend/internal/handlers"
	"medstaff_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)
		authRoutes.POST("/refresh-token", authHandler.RefreshToken)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupStaffRoutes sets up the staff directory routes. Directory writes,
// facility assignment, and bulk edits are restricted to coordinators and
// admins; the directory and the staff feed are readable by any authenticated
// user.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffWriteRoutes := authenticatedGroup.Group("/staff")
	staffWriteRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Coordinator"))
	{
		staffWriteRoutes.POST("", staffHandler.CreateStaffMember)
		staffWriteRoutes.PATCH("/:id", staffHandler.UpdateStaffMember)
		staffWriteRoutes.POST("/:id/profile-image", staffHandler.UploadProfileImage)
		staffWriteRoutes.POST("/:id/facilities", staffHandler.AssignFacility)
		staffWriteRoutes.DELETE("/:id/facilities/:facilityId", staffHandler.UnassignFacility)
		staffWriteRoutes.POST("/bulk-edit", staffHandler.BulkEditStaff)
	}

	authenticatedGroup.GET("/staff", staffHandler.GetStaffMembers)
	authenticatedGroup.GET("/staff/:id", staffHandler.GetStaffMemberByID)

	// Staff feed: everyone reads, everyone posts and likes.
	authenticatedGroup.GET("/staff/posts", staffHandler.GetPosts)
	authenticatedGroup.POST("/staff/posts", staffHandler.CreatePost)
	authenticatedGroup.POST("/staff/posts/:id/like", staffHandler.LikePost)
}

// SetupShiftRoutes sets up the shift board and calendar routes.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, shiftHandler *handlers.ShiftHandler) {
	shiftWriteRoutes := authenticatedGroup.Group("/shifts")
	shiftWriteRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Coordinator"))
	{
		shiftWriteRoutes.POST("", shiftHandler.CreateShift)
		shiftWriteRoutes.PATCH("/:id", shiftHandler.UpdateShift)
		shiftWriteRoutes.DELETE("/:id", shiftHandler.DeleteShift)
	}

	authenticatedGroup.GET("/shifts", shiftHandler.GetShifts)
	authenticatedGroup.GET("/shifts/calendar", shiftHandler.GetCalendar)
	authenticatedGroup.GET("/shifts/:id", shiftHandler.GetShiftByID)

	authenticatedGroup.GET("/block-shifts", shiftHandler.GetBlockShifts)
	authenticatedGroup.GET("/block-shifts/:id", shiftHandler.GetBlockShiftByID)
	authenticatedGroup.POST("/block-shifts", middleware.RoleAuthMiddleware("Admin", "Coordinator"), shiftHandler.CreateBlockShift)

	authenticatedGroup.GET("/facility-shifts", shiftHandler.GetFacilityShifts)
}

// SetupFacilityRoutes sets up the facility routes.
func SetupFacilityRoutes(authenticatedGroup *gin.RouterGroup, facilityHandler *handlers.FacilityHandler) {
	facilityWriteRoutes := authenticatedGroup.Group("/facilities")
	facilityWriteRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Coordinator"))
	{
		facilityWriteRoutes.POST("", facilityHandler.CreateFacility)
		facilityWriteRoutes.PATCH("/:id", facilityHandler.UpdateFacility)
	}

	authenticatedGroup.GET("/facilities", facilityHandler.GetFacilities)
	authenticatedGroup.GET("/facilities/:id", facilityHandler.GetFacilityByID)
}

// SetupTimeClockRoutes sets up the time clock routes. These always act on the
// authenticated user's own sessions.
func SetupTimeClockRoutes(authenticatedGroup *gin.RouterGroup, timeClockHandler *handlers.TimeClockHandler) {
	timeClockRoutes := authenticatedGroup.Group("/time-clock")
	{
		timeClockRoutes.POST("/clock-in", timeClockHandler.ClockIn)
		timeClockRoutes.GET("/active", timeClockHandler.GetActiveEntry)
		timeClockRoutes.POST("/clock-out", timeClockHandler.ClockOutDraft)
		timeClockRoutes.POST("/entries", timeClockHandler.SubmitEntry)
		timeClockRoutes.GET("/entries", timeClockHandler.GetEntries)
		timeClockRoutes.GET("/entries/:id", timeClockHandler.GetEntry)
	}
}

// SetupUserRoutes sets up the user administration routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Coordinator"))
	{
		userRoutes.GET("", authHandler.GetUsers)
	}
}

// SetupSettingsRoutes sets up the system settings routes. Reads are open to
// any authenticated user; only admins change them.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	authenticatedGroup.GET("/system-settings", settingHandler.GetSettings)
	authenticatedGroup.PATCH("/system-settings", middleware.RoleAuthMiddleware("Admin"), settingHandler.UpdateSettings)
}
