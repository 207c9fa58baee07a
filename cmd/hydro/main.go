package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydroapp/hydro/internal/auth"
	"github.com/hydroapp/hydro/internal/database"
	"github.com/hydroapp/hydro/internal/logging"
	"github.com/hydroapp/hydro/internal/notify"
	"github.com/hydroapp/hydro/internal/server"
)

func main() {
	genKeys := flag.Bool("generate-vapid-keys", false, "print a fresh VAPID key pair and exit")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password and exit")
	flag.Parse()

	if *genKeys {
		pub, priv, err := notify.GenerateVAPIDKeys()
		if err != nil {
			log.Fatalf("generate VAPID keys: %v", err)
		}
		fmt.Printf("HYDRO_VAPID_PUBLIC_KEY=%s\nHYDRO_VAPID_PRIVATE_KEY=%s\n", pub, priv)
		return
	}
	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Printf("HYDRO_PASSWORD_HASH=%s\n", hash)
		return
	}

	logger := logging.Setup(os.Getenv("HYDRO_LOG_LEVEL"))

	port := os.Getenv("HYDRO_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("HYDRO_DB_PATH")
	if dbPath == "" {
		dbPath = "hydro.db"
	}

	loc := time.Local
	if tz := os.Getenv("HYDRO_TZ"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("invalid HYDRO_TZ %q: %v", tz, err)
		}
		loc = parsed
	}

	secret := os.Getenv("HYDRO_JWT_SECRET")
	if secret == "" {
		log.Fatal("HYDRO_JWT_SECRET is required")
	}
	passwordHash := os.Getenv("HYDRO_PASSWORD_HASH")
	if passwordHash == "" {
		log.Fatal("HYDRO_PASSWORD_HASH is required (run with -hash-password to create one)")
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{
		Location:        loc,
		JWTSecret:       []byte(secret),
		PasswordHash:    []byte(passwordHash),
		VAPIDPublicKey:  os.Getenv("HYDRO_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("HYDRO_VAPID_PRIVATE_KEY"),
	}
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		logger.Warn("VAPID keys not configured, notifications disabled (run with -generate-vapid-keys)")
	}

	srv, err := server.New(db, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.Start(ctx)
	defer srv.Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("hydro running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
