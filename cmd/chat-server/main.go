package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"parley/internal/boot"
	"parley/internal/chatstore"
	"parley/internal/handlers"
	"parley/internal/service/chat"
	"parley/internal/service/user"
	"parley/internal/session"
)

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	store, err := chatstore.New(&config)
	if err != nil {
		log.Fatalf("store: %+v", err)
	}
	defer store.Close()

	if err := store.DeleteExpiredSessions(); err != nil {
		log.Fatalf("pruning sessions: %+v", err)
	}

	users := user.New(store)
	chats := chat.New(store, &config)
	sessions := session.NewManager(store, &config)

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("Parley"))
	server.Use(middleware.Recover())
	server.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup: "form:_csrf",
		Skipper: func(c echo.Context) bool {
			// the JSON API flow authenticates by session cookie and
			// never carries a form token
			return strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
		},
	}))

	server.Logger.SetLevel(log.INFO)
	server.Validator = handlers.NewValidator()

	server.Static("/static", "ui/static")

	t, err := handlers.NewTemplate("ui/views")
	if err != nil {
		log.Fatalf("templates: %+v", err)
	}
	defer t.Close()
	if config.IsDevelopment() {
		t.Watch()
	}
	server.Renderer = t

	handlers.Register(server, users, chats, sessions)

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(config.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(config.Addr); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
