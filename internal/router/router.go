package router

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"studentportal/internal/config"
	"studentportal/internal/handler"
	"studentportal/internal/metrics"
	"studentportal/internal/validation"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	System  *handler.SystemHandler
	User    *handler.UserHandler
	Project *handler.ProjectHandler
	Payment *handler.PaymentHandler
	Message *handler.MessageHandler
	Upload  *handler.UploadHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, m *metrics.Metrics, v *validation.Validator, h Handlers) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(m.Middleware())

	e.Validator = v

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", h.System.Root)
	e.GET("/test", h.System.Diagnostics)
	e.GET("/uploads/:name", h.Upload.Serve)

	api := e.Group("/api")

	api.POST("/register", h.User.Register)
	api.POST("/login", h.User.Login)
	api.GET("/user/:id", h.User.GetUser)
	api.GET("/users", h.User.ListUsers)

	api.POST("/projects", h.Project.CreateProject)
	api.GET("/projects", h.Project.ListProjects)
	api.GET("/projects/:id", h.Project.GetProject)
	api.PATCH("/projects/:id", h.Project.UpdateProject)
	api.POST("/projects/:id/deliverables", h.Project.AttachDeliverable)

	api.POST("/payments", h.Payment.CreatePayment)
	api.GET("/payments", h.Payment.ListPayments)
	api.PATCH("/payments/:id", h.Payment.UpdatePayment)

	api.POST("/messages", h.Message.SendMessage)
	api.GET("/messages", h.Message.ListMessages)

	upload := api.Group("/upload", middleware.BodyLimit(bodyLimit(cfg.MaxUploadBytes)))
	upload.POST("", h.Upload.Upload)
}

// bodyLimit renders a byte count in the unit syntax middleware.BodyLimit
// expects, leaving headroom for multipart framing.
func bodyLimit(maxBytes int64) string {
	const slack = 1 << 20
	return strconv.FormatInt(maxBytes+slack, 10) + "B"
}
