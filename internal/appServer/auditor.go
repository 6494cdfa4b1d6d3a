package appServer

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ds124wfegd/georaster/config"
	"github.com/ds124wfegd/georaster/internal/pkg/kafka"
	"github.com/ds124wfegd/georaster/internal/service"
	"github.com/sirupsen/logrus"
)

// NewAuditor consumes the processing event topic and logs every event until
// SIGINT or SIGTERM.
func NewAuditor(cfg *config.Config) {
	setupLogger(cfg)

	if len(cfg.Kafka.Brokers) == 0 {
		logrus.Fatal("Kafka brokers not configured")
	}

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	defer stop()

	audit := service.NewEventAudit()
	logrus.WithFields(logrus.Fields{
		"brokers":  cfg.Kafka.Brokers,
		"group_id": cfg.Kafka.GroupID,
	}).Print("Auditor Started")

	if err := consumer.Run(ctx, audit.Handle); err != nil {
		logrus.Errorf("consumer stopped: %s", err.Error())
	}

	logrus.WithField("totals", audit.Totals()).Print("Auditor Shutting Down")
}
