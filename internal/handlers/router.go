package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/middleware"
)

// RouterConfig carries what the feed router needs besides the handler.
type RouterConfig struct {
	Auth          middleware.Authenticator
	DefaultUserID uint64
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	Logger   *logger.Logger
}

func NewRouter(h *TaskHandler, cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(cfg.Logger.WithComponent("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task tracker feed is running",
		})
	})
	r.GET("/calendar.ics", h.Calendar)

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.Use(middleware.RequireActingUser(cfg.Auth, cfg.DefaultUserID))
	{
		api.GET("/users", h.ListUsers)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.GET("/:id", h.GetTask)
		}
	}

	return r
}
