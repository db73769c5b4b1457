// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geotrack-backend/internal/catalog"
	"geotrack-backend/internal/common/config"
	"geotrack-backend/internal/common/database"
	"geotrack-backend/internal/common/logger"
	"geotrack-backend/internal/contact"
)

// Server wires the HTTP surface: middleware, status pages, the catalog
// and contact routes, and graceful shutdown.
type Server struct {
	config     *config.Config
	logger     logger.Logger
	db         *database.MySQLClient
	httpServer *http.Server
}

type Dependencies struct {
	Config   *config.Config
	Logger   logger.Logger
	DB       *database.MySQLClient
	Catalogs *catalog.Handler
	Contact  *contact.Handler
}

func New(deps Dependencies) *Server {
	s := &Server{
		config: deps.Config,
		logger: deps.Logger,
		db:     deps.DB,
	}

	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestIDMiddleware())
	engine.Use(LoggerMiddleware(deps.Logger))
	engine.Use(SecurityHeadersMiddleware())
	engine.Use(CORSMiddleware(deps.Config.Server.CORSOrigin))

	s.registerStatusRoutes(engine)

	api := engine.Group("/api")
	deps.Catalogs.Register(api)
	deps.Contact.Register(api)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", deps.Config.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	return s
}

func (s *Server) registerStatusRoutes(engine *gin.Engine) {
	statusPage := func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=UTF-8")
		c.String(http.StatusOK, `<!doctype html>
<html><head><meta charset="utf-8"><title>API</title></head>
<body>
<h1>%s</h1>
<p>Status: online</p>
<p>Environment: %s</p>
<p>Timestamp: %s</p>
</body></html>`,
			s.config.App.Name, s.config.App.Environment, time.Now().UTC().Format(time.RFC3339))
	}

	health := func(c *gin.Context) {
		dbState := "up"
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(pingCtx); err != nil {
			dbState = "down"
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":       dbState == "up",
			"env":      s.config.App.Environment,
			"database": dbState,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}

	engine.GET("/", statusPage)
	engine.GET("/api", statusPage)
	engine.GET("/health", health)
	engine.GET("/api/health", health)

	engine.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	engine.GET("/robots.txt", func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; charset=UTF-8")
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured timeout. The database pool is closed by the
// caller after Run returns, so in-flight requests keep their connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Server ready", map[string]interface{}{
			"addr": s.httpServer.Addr,
			"env":  s.config.App.Environment,
		})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down gracefully...", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		config.GetDuration(s.config.Server.ShutdownTimeout),
	)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
