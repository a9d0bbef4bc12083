package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/logging"
	"github.com/rs/zerolog"
)

// Router holds every handler the admin serves.
type Router struct {
	Jobs         *JobHandler
	Companies    *CompanyHandler
	Users        *UserHandler
	Categories   *CategoryHandler
	Applications *ApplicationHandler
	Dashboard    *DashboardHandler
	Auth         *AuthHandler

	// RequireAdmin guards everything below /admin.
	RequireAdmin gin.HandlerFunc
	UploadDir    string
	Origins      []string
	Log          zerolog.Logger
}

func (r *Router) Engine() *gin.Engine {
	e := gin.New()
	e.Use(logging.Middleware(r.Log), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = r.Origins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:8080"}
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.MaxAge = 12 * time.Hour
	e.Use(cors.New(config))

	e.GET("/health", HealthCheck)

	e.GET(auth.LoginPath, r.Auth.LoginOptions)
	e.POST(auth.LoginPath, r.Auth.Login)
	e.GET("/logout", r.Auth.Logout)
	e.GET("/auth/:provider/login", r.Auth.ProviderLogin)
	e.GET("/auth/:provider/callback", r.Auth.ProviderCallback)

	admin := e.Group("/admin", r.RequireAdmin)
	{
		admin.GET("/dashboard", r.Dashboard.Summary)
		admin.GET("/reports", r.Dashboard.Report)
		if r.UploadDir != "" {
			admin.Static("/uploads", r.UploadDir)
		}

		jobs := admin.Group("/jobs")
		jobs.GET("", r.Jobs.List)
		jobs.POST("", r.Jobs.Create)
		jobs.POST("/extract", r.Jobs.ParseJob)
		jobs.GET("/:id", r.Jobs.Get)
		jobs.POST("/:id", r.Jobs.Update)
		jobs.GET("/:id/approve", r.Jobs.Approve)
		jobs.GET("/:id/reject", r.Jobs.Reject)
		jobs.GET("/:id/feature", r.Jobs.Feature)
		jobs.GET("/:id/delete", r.Jobs.Delete)

		companies := admin.Group("/companies")
		companies.GET("", r.Companies.List)
		companies.POST("", r.Companies.Create)
		companies.GET("/:id", r.Companies.Get)
		companies.POST("/:id", r.Companies.Update)
		companies.GET("/:id/verify", r.Companies.Verify)
		companies.GET("/:id/delete", r.Companies.Delete)

		users := admin.Group("/users")
		users.GET("", r.Users.List)
		users.POST("", r.Users.Create)
		users.GET("/:id", r.Users.Get)
		users.POST("/:id", r.Users.Update)
		users.GET("/:id/suspend", r.Users.Suspend)
		users.GET("/:id/activate", r.Users.Activate)
		users.GET("/:id/delete", r.Users.Delete)

		categories := admin.Group("/categories")
		categories.GET("", r.Categories.List)
		categories.GET("/options", r.Categories.Options)
		categories.POST("", r.Categories.Create)
		categories.POST("/:id", r.Categories.Update)
		categories.GET("/:id/delete", r.Categories.Delete)

		applications := admin.Group("/applications")
		applications.GET("", r.Applications.List)
		applications.GET("/:id", r.Applications.Get)
		applications.POST("/:id/status", r.Applications.ChangeStatus)
		applications.GET("/:id/delete", r.Applications.Delete)
	}
	return e
}
