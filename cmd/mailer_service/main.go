package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event_management_service/internal/mailer/app"
	"event_management_service/pkg/config"
	"event_management_service/pkg/database"
	"event_management_service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MailerService, config.EnvConfig.MailerServiceLogPath)
	cfg := config.LoadConfig[config.Mailer](config.EnvConfig.MailerService, config.EnvConfig.MailerServiceYAMLPath)

	reader := database.NewKafkaReader(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		GroupID:       cfg.Kafka.GroupID,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval) * time.Second,
	})
	defer reader.Close()

	sender := app.NewSMTPSender(cfg.SMTP)
	mailer := app.NewMailerUseCase(reader, sender)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Log.Info("shutdown signal received")
		cancel()
	}()

	logger.Log.Info("Mailer Service consuming", zap.String("topic", cfg.Kafka.Topic))
	if err := mailer.Run(ctx); err != nil && err != context.Canceled {
		logger.Log.Fatal("mailer stopped", zap.Error(err))
	}
	logger.Log.Sync()
}
