package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/models"
	authmw "github.com/Skotchmaster/job_board/pkg/middleware/auth"
)

type Deps struct {
	Auth          *AuthHTTP
	Companies     *CompanyHTTP
	Jobs          *JobHTTP
	Applications  *ApplicationHTTP
	SavedJobs     *SavedJobHTTP
	Notifications *NotificationHTTP
	Alerts        *JobAlertHTTP

	JWTSecret []byte
	// Now overrides the clock used to check access-token expiry.
	Now func() time.Time
	// AuthLimiter guards the public auth endpoints. Nil disables limiting.
	AuthLimiter echo.MiddlewareFunc
	// Ready reports whether dependencies answer. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return OK(c, "alive", nil) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return OK(c, "ready", nil)
	})

	session := authmw.NewSessionValidator(d.JWTSecret, d.Now)
	employers := authmw.RequireRole(models.RoleEmployer, models.RoleAdmin)
	jobseekers := authmw.RequireRole(models.RoleJobseeker)

	api := e.Group("/api")

	var limited []echo.MiddlewareFunc
	if d.AuthLimiter != nil {
		limited = append(limited, d.AuthLimiter)
	}

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register, limited...)
	auth.POST("/login", d.Auth.Login, limited...)
	auth.POST("/refresh", d.Auth.Refresh, limited...)
	auth.POST("/logout", d.Auth.Logout, limited...)
	auth.GET("/me", d.Auth.Me, session)
	auth.PATCH("/me", d.Auth.UpdateMe, session)
	auth.POST("/change-password", d.Auth.ChangePassword, session)

	companies := api.Group("/companies")
	companies.GET("", d.Companies.List)
	companies.GET("/:id", d.Companies.Get)
	companies.POST("", d.Companies.Create, session, employers)
	companies.PATCH("/:id", d.Companies.Update, session)
	companies.DELETE("/:id", d.Companies.Delete, session)

	jobs := api.Group("/jobs")
	jobs.GET("", d.Jobs.List)
	jobs.GET("/search", d.Jobs.Search)
	jobs.GET("/:id", d.Jobs.Get)
	jobs.POST("", d.Jobs.Create, session, employers)
	jobs.PATCH("/:id", d.Jobs.Update, session)
	jobs.DELETE("/:id", d.Jobs.Delete, session)
	jobs.POST("/:id/apply", d.Applications.Apply, session, jobseekers)
	jobs.GET("/:id/applications", d.Applications.ListForJob, session)

	apps := api.Group("/applications", session)
	apps.GET("", d.Applications.ListMine)
	apps.PATCH("/:id/status", d.Applications.UpdateStatus)
	apps.POST("/:id/withdraw", d.Applications.Withdraw)

	saved := api.Group("/saved-jobs", session)
	saved.GET("", d.SavedJobs.List)
	saved.POST("/:jobId", d.SavedJobs.Save)
	saved.DELETE("/:jobId", d.SavedJobs.Remove)

	notes := api.Group("/notifications", session)
	notes.GET("", d.Notifications.List)
	notes.GET("/unread-count", d.Notifications.UnreadCount)
	notes.PATCH("/:id/read", d.Notifications.MarkRead)
	notes.POST("/read-all", d.Notifications.MarkAllRead)

	alerts := api.Group("/job-alerts", session)
	alerts.GET("", d.Alerts.List)
	alerts.POST("", d.Alerts.Create)
	alerts.PATCH("/:id", d.Alerts.Update)
	alerts.DELETE("/:id", d.Alerts.Delete)
}
