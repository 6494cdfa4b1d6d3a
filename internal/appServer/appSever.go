// launching the server, spool storage, kafka producer
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/georaster/config"
	"github.com/ds124wfegd/georaster/internal/pkg/kafka"
	"github.com/ds124wfegd/georaster/internal/pkg/loader"
	"github.com/ds124wfegd/georaster/internal/pkg/storage"
	"github.com/ds124wfegd/georaster/internal/service"
	"github.com/ds124wfegd/georaster/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func setupLogger(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logrus.WithField("level", cfg.Logger.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func newProducer(cfg *config.Config) kafka.Producer {
	if !cfg.Kafka.Enabled {
		logrus.Info("Kafka disabled, processing events are only logged")
		return kafka.NewMockProducer()
	}
	return kafka.NewProducer(kafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
}

func buildRouter(cfg *config.Config, producer kafka.Producer) *gin.Engine {
	spool := storage.NewFileStorage(cfg.Raster.SpoolDir)
	rasterLoader := loader.NewLoader(spool)
	rasterService := service.NewRasterService(rasterLoader, producer, cfg.Kafka.Topic)
	rasterHandler := transport.NewRasterHandler(rasterService, transport.HandlerConfig{
		MaxAdjustment: cfg.Raster.MaxAdjustment,
		PreviewMaxDim: cfg.Raster.PreviewMaxDim,
		DefaultFormat: cfg.Raster.DefaultFormat,
	})

	return transport.InitRoutes(rasterHandler, cfg.Raster.MaxUploadMB<<20)
}

func NewServer(cfg *config.Config) {
	setupLogger(cfg)

	producer := newProducer(cfg)
	defer producer.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, buildRouter(cfg, producer)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"version": cfg.Server.AppVersion,
	}).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
