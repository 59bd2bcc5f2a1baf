package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portgasdyamato/Pocket-Fund-sub000/config"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/database"
	"github.com/portgasdyamato/Pocket-Fund-sub000/internal/router"
	"github.com/portgasdyamato/Pocket-Fund-sub000/pkg/cloudinary"
	"github.com/portgasdyamato/Pocket-Fund-sub000/pkg/genai"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	database.SeedContent(db)

	gen := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey, cfg.GenAI.Model, cfg.GenAI.Timeout)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.WithError(err).Warn("cloudinary disabled")
		}
	}

	engine := router.Setup(cfg, db, gen, cloud)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown")
	}
	log.Info("server stopped")
}
