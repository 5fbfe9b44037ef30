package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/config"
	"github.com/Skotchmaster/user_service/internal/es"
	"github.com/Skotchmaster/user_service/internal/httpserver"
	"github.com/Skotchmaster/user_service/internal/middleware"
	"github.com/Skotchmaster/user_service/internal/mykafka"
	"github.com/Skotchmaster/user_service/internal/repo"
	"github.com/Skotchmaster/user_service/internal/search"
	"github.com/Skotchmaster/user_service/internal/service"
	"github.com/Skotchmaster/user_service/pkg/logging"
	loggingmw "github.com/Skotchmaster/user_service/pkg/middleware/logging"
	"github.com/Skotchmaster/user_service/pkg/tokens"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var index *search.Index
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		index = search.NewIndex(esClient, cfg.ESIndex)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	gormRepo := &repo.GormRepo{DB: db}
	tokenHandler := &tokens.Handler{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}

	authSvc := &service.AuthService{Repo: gormRepo, Tokens: tokenHandler}
	userSvc := &service.UserService{Repo: gormRepo}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		UserHandler: httpserver.NewUserHTTP(userSvc, index, producer),
		AuthMW:      middleware.NewAuth(tokenHandler, gormRepo),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
