package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Profile  *ProfileHandler
	Catalog  *CatalogHandler
	Material *MaterialHandler
	Roster   *RosterHandler
	Upload   *UploadHandler
	File     *FileHandler
	Metrics  *MetricsHandler
}

// AuthMiddleware bundles the route guards the router applies.
type AuthMiddleware struct {
	Authenticate gin.HandlerFunc
	TeacherOnly  gin.HandlerFunc
	StudentOnly  gin.HandlerFunc
}

// RegisterRoutes mounts the API surface on the engine. Auth routes and
// the signed file endpoint stay public; everything else sits behind the
// session guard, with teacher and student sub-trees role-gated.
func RegisterRoutes(r *gin.Engine, h Handlers, guards AuthMiddleware) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	auth := r.Group("/auth")
	{
		auth.POST("/register/student", h.Auth.RegisterStudent)
		auth.POST("/register/teacher", h.Auth.RegisterTeacher)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", guards.Authenticate, h.Auth.Logout)
	}

	r.GET("/files/download", h.File.Download)

	api := r.Group("/", guards.Authenticate)
	{
		api.GET("/profile", h.Profile.Get)
		api.PUT("/profile", h.Profile.Update)

		api.GET("/subjects", h.Catalog.ListSubjects)
		api.GET("/classes", h.Catalog.ListClasses)
		api.GET("/enrollments", guards.StudentOnly, h.Catalog.ListEnrollments)

		materials := api.Group("/materials")
		{
			materials.GET("", h.Material.List)
			materials.GET("/:id", h.Material.Get)
			materials.GET("/:id/download", h.Material.Download)
			materials.POST("", guards.TeacherOnly, h.Material.Create)
			materials.PUT("/:id", guards.TeacherOnly, h.Material.Update)
			materials.DELETE("/:id", guards.TeacherOnly, h.Material.Delete)
			materials.POST("/:id/complete", guards.StudentOnly, h.Material.Complete)
			materials.GET("/:id/completion", guards.StudentOnly, h.Material.CompletionStatus)
		}

		teacher := api.Group("/teacher", guards.TeacherOnly)
		{
			teacher.GET("/students", h.Roster.ListStudents)
			teacher.GET("/students/active", h.Roster.ListActiveStudents)
			teacher.GET("/students/export", h.Roster.ExportStudents)
			teacher.GET("/completions", h.Roster.ListCompletions)
		}

		uploads := api.Group("/uploads", guards.TeacherOnly)
		{
			uploads.POST("", h.Upload.Upload)
			uploads.GET("", h.Upload.ListFolders)
			uploads.GET("/:folder", h.Upload.ListFiles)
			uploads.GET("/:folder/:file", h.Upload.DownloadFile)
			uploads.DELETE("/:folder", h.Upload.DeleteFolder)
			uploads.DELETE("/:folder/:file", h.Upload.DeleteFile)
		}
	}
}
