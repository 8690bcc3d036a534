package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"animedb.org/internal/auth"
	"animedb.org/internal/docstore"
	"animedb.org/internal/httpapi"
	"animedb.org/internal/obs"
)

var version = "0.1.0"

func main() {
	obs.Init()

	// The signing secret is injected configuration, never a source literal.
	secret := strings.TrimSpace(os.Getenv("ANIMEDB_AUTH_SECRET"))
	if secret == "" {
		log.Fatal("ANIMEDB_AUTH_SECRET is required")
	}

	dsn := os.Getenv("ANIMEDB_PG_DSN")
	if dsn == "" {
		log.Fatal("ANIMEDB_PG_DSN is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Refuse to serve traffic without a reachable store.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	cancelPing()

	tokenOpts := []auth.TokenOption{}
	if raw := os.Getenv("ANIMEDB_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("parse ANIMEDB_TOKEN_TTL: %v", err)
		}
		tokenOpts = append(tokenOpts, auth.WithTokenTTL(ttl))
	}
	tokens, err := auth.NewTokenService([]byte(secret), tokenOpts...)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	authSvc := auth.NewService(auth.NewPGStore(db), tokens)
	docs := docstore.NewPGStore(db)

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, authSvc, tokens, docs)

	addr := os.Getenv("ANIMEDB_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting animedb-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
