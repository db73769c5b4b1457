// cmd/api-server/main.go
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"geotrack-backend/internal/catalog"
	"geotrack-backend/internal/common/config"
	"geotrack-backend/internal/common/database"
	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
	"geotrack-backend/internal/common/mail"
	"geotrack-backend/internal/contact"
	"geotrack-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logger.New("info", "console")
		bootstrapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting api-server...", map[string]interface{}{
		"name":    cfg.App.Name,
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
	})

	// --- Init MySQL pool (shared across all requests) ---
	db, err := database.NewMySQL(cfg.Database.MySQL)
	if err != nil {
		zapLog.Fatal("mysql open failed", zap.Error(err))
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.Ping(pingCtx); err != nil {
		cancel()
		zapLog.Fatal("mysql ping failed", zap.Error(err))
	}
	if name, err := db.CurrentDatabase(pingCtx); err == nil {
		log.Info("MySQL pool initialized", map[string]interface{}{
			"database": name,
		})
	}
	cancel()

	// --- Init SMTP mailer (shared, like the pool) ---
	mailer := mail.NewSMTPMailer(cfg.Mail, log)

	// --- Wire handlers ---
	errHandler := apperrors.NewErrorHandler(log)

	catalogRepo := catalog.NewRepository(db.GetDB(), log)
	catalogHandler := catalog.NewHandler(catalogRepo, errHandler)

	contactRepo := contact.NewRepository(db.GetDB(), log)
	dispatcher := contact.NewDispatcher(mailer, cfg.Mail, log)
	contactService := contact.NewService(contact.ServiceDependencies{
		Repository: contactRepo,
		Dispatcher: dispatcher,
		Logger:     log,
	})
	contactHandler := contact.NewHandler(contactService, errHandler)

	srv := server.New(server.Dependencies{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Catalogs: catalogHandler,
		Contact:  contactHandler,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}

	log.Info("Server stopped", nil)
}
