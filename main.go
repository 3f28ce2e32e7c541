package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"summercamp-backend/config"
	"summercamp-backend/events"
	"summercamp-backend/handler"
	"summercamp-backend/jwt"
	"summercamp-backend/log"
	"summercamp-backend/mail"
	"summercamp-backend/payment"
	"summercamp-backend/store"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Parse()
	log.EnsureLogger()
	defer log.Sync()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Logger.Fatal("database not reachable", zap.Error(err))
	}
	log.Logger.Info("Pinged your deployment. You successfully connected to MongoDB!")

	db := store.New(client.Database(cfg.DBName))
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Logger.Fatal("unable to create index", zap.Error(err))
	}

	deps := handler.Deps{
		Store:    db,
		Tokens:   jwt.New([]byte(cfg.JWTSecret), jwt.DefaultTTL),
		Payments: payment.NewStripe(cfg.PaymentSecretKey, ""),
	}
	if cfg.EventsEnabled() {
		ev, err := events.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Logger.Fatal("failed connecting to rabbitmq", zap.Error(err))
		}
		defer ev.Close()
		deps.Events = ev
	}
	if cfg.MailEnabled() {
		deps.Mailer = mail.New(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailSender, "")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler.New(deps).Router(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Logger.Info(fmt.Sprintf("Champ is running at: %s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Fatal("couldn't serve http", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Logger.Error("disconnect failed", zap.Error(err))
	}
}
